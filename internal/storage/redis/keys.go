package redis

import (
	"fmt"

	"github.com/mcoot/gomemo/internal/model"
)

// Key prefix for all gomemo data
const keyPrefix = "gomemo"

// recordKey returns the Redis key for a GameRecord
func recordKey(id model.RecordID) string {
	return fmt.Sprintf("%s:record:%s", keyPrefix, id)
}

// recordIndexKey returns the Redis key for the SET of all record IDs
func recordIndexKey() string {
	return fmt.Sprintf("%s:idx:records", keyPrefix)
}

// resultsKey returns the Redis key for the LIST of replay results of a record
func resultsKey(recordID model.RecordID) string {
	return fmt.Sprintf("%s:results:%s", keyPrefix, recordID)
}
