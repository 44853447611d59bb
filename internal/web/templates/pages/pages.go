// Package pages holds the full web pages
package pages

import (
	"fmt"

	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
	"github.com/mcoot/gomemo/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
	Records []*model.GameRecord
	Best    map[model.RecordID]*model.ReplayResult // Best replay per record, if any
}

// SessionData holds data for the session page
type SessionData struct {
	layout.PageData
	SessionID  string
	RecordName string
	State      session.Snapshot
	Completion *session.CompletionStats // Set once the replay is complete
	Difficult  []session.DifficultMove
}

func recordPath(id model.RecordID, action string) string {
	return "/records/" + string(id) + action
}

func boardSize(r *model.GameRecord) string {
	return fmt.Sprintf("%dx%d", r.BoardSize, r.BoardSize)
}

func bestAccuracy(best map[model.RecordID]*model.ReplayResult, id model.RecordID) string {
	if res, ok := best[id]; ok && res != nil {
		return fmt.Sprintf("%d%%", res.Accuracy)
	}
	return "-"
}

func players(r *model.GameRecord) string {
	if r.PlayerBlack == "" && r.PlayerWhite == "" {
		return ""
	}
	return orUnknown(r.PlayerBlack) + " vs " + orUnknown(r.PlayerWhite)
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
