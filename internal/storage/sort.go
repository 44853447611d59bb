package storage

import (
	"cmp"
	"slices"

	"github.com/mcoot/gomemo/internal/model"
)

// SortRecords orders records most recently imported first, breaking ties by ID
// so every backend lists in the same order
func SortRecords(records []*model.GameRecord) {
	slices.SortFunc(records, func(a, b *model.GameRecord) int {
		if c := b.ImportedAt.Compare(a.ImportedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// SortResults orders results most recently completed first
func SortResults(results []*model.ReplayResult) {
	slices.SortStableFunc(results, func(a, b *model.ReplayResult) int {
		return b.CompletedAt.Compare(a.CompletedAt)
	})
}
