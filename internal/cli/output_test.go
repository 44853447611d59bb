package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gomemo/internal/api/response"
	"github.com/mcoot/gomemo/internal/hint"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
)

func smallBoard() [][]int {
	return [][]int{
		{1, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
}

func TestOutput_BoardMarksHintRegion(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("text", &buf)

	region := hint.Region{MinX: 2, MaxX: 3, MinY: 2, MaxY: 3}
	out.printBoard(smallBoard(), hint.NewRegionHint(region), &model.Move{X: 1, Y: 1, Color: model.White})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "    a  b  c  d ", lines[0])
	assert.Equal(t, " a  X  .  .  . ", lines[1])
	assert.Equal(t, " b  . (O) .  . ", lines[2])
	assert.Equal(t, " c  .  .  +  + ", lines[3])
	assert.Equal(t, " d  .  .  +  + ", lines[4])
}

func TestOutput_BoardMarksExactHint(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("text", &buf)

	out.printBoard(smallBoard(), hint.NewExactHint(model.Position{X: 3, Y: 0}), nil)

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, " a  X  .  .  * ", lines[1])
	assert.NotContains(t, buf.String(), "+")
}

func TestOutput_MoveResult(t *testing.T) {
	tests := []struct {
		name     string
		result   session.MoveResult
		contains string
	}{
		{name: "correct", result: session.MoveResult{Correct: true}, contains: "Correct!"},
		{name: "complete", result: session.MoveResult{Correct: true, GameComplete: true}, contains: "Replay complete"},
		{name: "expected pass", result: session.MoveResult{ExpectedPass: true}, contains: "passed here"},
		{
			name: "wrong with hint",
			result: session.MoveResult{
				Attempts: 2,
				Hint:     hint.NewRegionHint(hint.Region{MinX: 0, MaxX: 4, MinY: 0, MaxY: 4}),
			},
			contains: "Hint: between aa (0,0) and ee (4,4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewOutput("text", &buf).Print(response.MoveResponse{
				Result: tt.result,
				State:  session.Snapshot{Phase: session.PhaseReplay, Board: smallBoard()},
			})
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf).Print(HealthResult{Status: "ok"})

	var decoded HealthResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ok", decoded.Status)
}

func TestOutput_EmptyLists(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("text", &buf)

	out.Print(response.RecordList{})
	out.Print(response.ResultList{})
	out.Print(response.DifficultMovesResponse{})

	assert.Equal(t, "No records\nNo completed replays\nNo difficult moves\n", buf.String())
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		x, y    int
		wantErr bool
	}{
		{name: "numbers", args: []string{"3", "15"}, x: 3, y: 15},
		{name: "sgf letters", args: []string{"dp"}, x: 3, y: 15},
		{name: "origin", args: []string{"aa"}, x: 0, y: 0},
		{name: "not numbers", args: []string{"a", "b"}, wantErr: true},
		{name: "too long", args: []string{"abc"}, wantErr: true},
		{name: "upper case", args: []string{"DP"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, err := parsePoint(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}
