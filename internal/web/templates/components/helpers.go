// Package components holds the building blocks of the session page
package components

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/mcoot/gomemo/internal/hint"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
)

// isClickable is true while the user owes the next replay move
func isClickable(state session.Snapshot) bool {
	return state.Phase == session.PhaseReplay && state.IsUserTurn
}

func boardStyle(size int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("grid-template-columns: repeat(%d, 28px);", size))
}

func pointValue(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

func inHintRegion(h *hint.Hint, x, y int) bool {
	return h != nil && h.Type == hint.TypeQuadrant && h.Region != nil && h.Region.Contains(x, y)
}

func isExactHint(h *hint.Hint, x, y int) bool {
	return h != nil && h.Type == hint.TypeExact && h.Position != nil && h.Position.X == x && h.Position.Y == y
}

func isLast(m *model.Move, x, y int) bool {
	return m != nil && !m.IsPass && m.X == x && m.Y == y
}

func stoneColor(c model.Color) string {
	if c == model.White {
		return "white"
	}
	return "black"
}

func colorName(c model.Color) string {
	switch c {
	case model.Black:
		return "Black"
	case model.White:
		return "White"
	default:
		return "Either"
	}
}

func hintCounts(s session.Stats) string {
	return fmt.Sprintf("%d / %d / %d", s.QuadrantHintsUsed, s.SubdivisionHintsUsed, s.ExactHintsUsed)
}

func percent(n int) string {
	return fmt.Sprintf("%d%%", n)
}

func seconds(ms int64) string {
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
