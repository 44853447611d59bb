package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mcoot/gomemo/internal/api/response"
	"github.com/mcoot/gomemo/internal/hint"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
	"github.com/mcoot/gomemo/internal/sgf"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case model.GameRecord:
		o.printRecord(v)
	case response.RecordList:
		o.printRecordList(v)
	case response.ResultList:
		o.printResults(v)
	case response.Session:
		o.printSession(v)
	case response.StudyResponse:
		o.printStudy(v)
	case response.MoveResponse:
		o.printMove(v)
	case response.BoardResponse:
		fmt.Fprintf(o.w, "After move %d (captures: black %d, white %d)\n", v.Position, v.Captures.Black, v.Captures.White)
		o.printBoard(v.Board, nil, nil)
	case response.HintResponse:
		o.printHint(v.Hint, v.Attempts)
	case response.DifficultMovesResponse:
		o.printDifficult(v)
	case session.CompletionStats:
		o.printStats(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printRecord(r model.GameRecord) {
	fmt.Fprintf(o.w, "Record: %s (%s)\n", r.Name, r.ID)
	if r.PlayerBlack != "" || r.PlayerWhite != "" {
		fmt.Fprintf(o.w, "Players: %s (B) vs %s (W)\n", r.PlayerBlack, r.PlayerWhite)
	}
	fmt.Fprintf(o.w, "Board: %dx%d\n", r.BoardSize, r.BoardSize)
	fmt.Fprintf(o.w, "Moves: %d\n", len(r.Moves))
	if len(r.Setup) > 0 {
		fmt.Fprintf(o.w, "Setup stones: %d\n", len(r.Setup))
	}
	if r.Result != "" {
		fmt.Fprintf(o.w, "Result: %s\n", r.Result)
	}
}

func (o *Output) printRecordList(l response.RecordList) {
	if len(l.Records) == 0 {
		fmt.Fprintln(o.w, "No records")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tMOVES\tIMPORTED")
	for _, r := range l.Records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.Name, r.BoardSize, r.TotalMoves, r.ImportedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func (o *Output) printResults(l response.ResultList) {
	if len(l.Results) == 0 {
		fmt.Fprintln(o.w, "No completed replays")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPLETED\tMOVES\tSIDE\tACCURACY\tWRONG\tTIME")
	for _, r := range l.Results {
		fmt.Fprintf(tw, "%s\t%d-%d\t%s\t%d%%\t%d\t%.1fs\n",
			r.CompletedAt.Format("2006-01-02 15:04"), r.StartMove+1, r.EndMove+1, sideName(r.Side),
			r.Accuracy, r.WrongMoveCount, float64(r.TotalTimeMs)/1000)
	}
	_ = tw.Flush()
	if l.Best != nil {
		fmt.Fprintf(o.w, "Best: %d%%\n", l.Best.Accuracy)
	}
}

func (o *Output) printSession(s response.Session) {
	fmt.Fprintf(o.w, "Session: %s\n", s.ID)
	fmt.Fprintf(o.w, "Record: %s (%s)\n", s.Name, s.RecordID)
	o.printState(s.State)
}

func (o *Output) printState(st session.Snapshot) {
	fmt.Fprintf(o.w, "Phase: %s\n", st.Phase)
	switch st.Phase {
	case session.PhaseStudy:
		fmt.Fprintf(o.w, "Position: %d/%d\n", st.StudyPosition, st.TotalMoves)
	case session.PhaseReplay:
		fmt.Fprintf(o.w, "Replaying: move %d (range %d-%d, side %s)\n",
			st.ReplayPosition+1, st.ReplayStartMove+1, st.ReplayEndMove+1, sideName(st.ReplaySide))
		if st.IsUserTurn {
			fmt.Fprintf(o.w, "To play: %s\n", sideName(st.CurrentTurn))
		} else {
			fmt.Fprintln(o.w, "Waiting for opponent")
		}
	}
	if st.LastMove != nil {
		fmt.Fprintf(o.w, "Last move: %s\n", moveString(*st.LastMove))
	}
	o.printBoard(st.Board, st.Hint, st.LastMove)
}

func (o *Output) printStudy(s response.StudyResponse) {
	switch {
	case s.Result.AtEnd:
		fmt.Fprintln(o.w, "Already at the last move")
	case s.Result.AtStart:
		fmt.Fprintln(o.w, "Already at the start")
	}
	o.printState(s.State)
}

func (o *Output) printMove(m response.MoveResponse) {
	switch {
	case m.Result.GameComplete:
		fmt.Fprintln(o.w, "Correct! Replay complete")
	case m.Result.Correct:
		fmt.Fprintln(o.w, "Correct!")
	case m.Result.ExpectedPass:
		fmt.Fprintln(o.w, "Wrong: the player passed here")
	default:
		fmt.Fprintf(o.w, "Wrong (attempt %d)\n", m.Result.Attempts)
	}
	if m.Result.Hint != nil {
		o.printHint(m.Result.Hint, m.Result.Attempts)
	}
	o.printState(m.State)
}

func (o *Output) printHint(h *hint.Hint, attempts int) {
	switch {
	case h == nil:
		fmt.Fprintln(o.w, "No hint yet")
	case h.Type == hint.TypeExact && h.Position != nil:
		fmt.Fprintf(o.w, "Hint: the move is at %s\n", pointString(h.Position.X, h.Position.Y))
	case h.Region != nil:
		fmt.Fprintf(o.w, "Hint: between %s and %s\n",
			pointString(h.Region.MinX, h.Region.MinY), pointString(h.Region.MaxX, h.Region.MaxY))
	}
	if attempts > 0 {
		fmt.Fprintf(o.w, "Wrong attempts on this move: %d\n", attempts)
	}
}

func (o *Output) printDifficult(d response.DifficultMovesResponse) {
	if len(d.Moves) == 0 {
		fmt.Fprintln(o.w, "No difficult moves")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MOVE\tCORRECT\tATTEMPTS\tTRIED")
	for _, m := range d.Moves {
		tried := make([]string, len(m.WrongAttempts))
		for i, p := range m.WrongAttempts {
			tried[i] = pointString(p.X, p.Y)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", m.Move.MoveNumber, moveString(m.Move), m.AttemptCount, strings.Join(tried, " "))
	}
	_ = tw.Flush()
}

func (o *Output) printStats(s session.CompletionStats) {
	fmt.Fprintf(o.w, "Moves replayed: %d\n", s.ReplayedMoves)
	fmt.Fprintf(o.w, "Accuracy: %d%%\n", s.Accuracy)
	fmt.Fprintf(o.w, "Correct first try: %d\n", s.CorrectFirstTry)
	fmt.Fprintf(o.w, "Wrong moves: %d\n", s.WrongMoveCount)
	fmt.Fprintf(o.w, "Hints: %d quadrant, %d narrowed, %d exact\n",
		s.QuadrantHintsUsed, s.SubdivisionHintsUsed, s.ExactHintsUsed)
	fmt.Fprintf(o.w, "Time: %.1fs total, %.1fs per move\n", float64(s.TotalTimeMs)/1000, float64(s.AvgTimeMs)/1000)
}

// printBoard draws the board with SGF letters on both axes. Black is X,
// white is O, the last move is bracketed and hinted empty points are
// marked with + (region) or * (exact).
func (o *Output) printBoard(grid [][]int, h *hint.Hint, last *model.Move) {
	size := len(grid)
	if size == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("   ")
	for x := range size {
		b.WriteString(" " + axisLabel(x) + " ")
	}
	b.WriteString("\n")

	for y, row := range grid {
		b.WriteString(" " + axisLabel(y) + " ")
		for x, v := range row {
			mark := pointMark(model.Color(v), h, x, y)
			if last != nil && !last.IsPass && last.X == x && last.Y == y {
				b.WriteString("(" + mark + ")")
			} else {
				b.WriteString(" " + mark + " ")
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprint(o.w, b.String())
}

func pointMark(c model.Color, h *hint.Hint, x, y int) string {
	switch c {
	case model.Black:
		return "X"
	case model.White:
		return "O"
	}
	if h != nil {
		if h.Type == hint.TypeExact && h.Position != nil && h.Position.X == x && h.Position.Y == y {
			return "*"
		}
		if h.Type == hint.TypeQuadrant && h.Region != nil && h.Region.Contains(x, y) {
			return "+"
		}
	}
	return "."
}

func axisLabel(n int) string {
	return sgf.EncodePoint(n, n)[:1]
}

func pointString(x, y int) string {
	return fmt.Sprintf("%s (%d,%d)", sgf.EncodePoint(x, y), x, y)
}

func moveString(m model.Move) string {
	if m.IsPass {
		return sideName(m.Color) + " pass"
	}
	return sideName(m.Color) + " " + pointString(m.X, m.Y)
}

func sideName(c model.Color) string {
	switch c {
	case model.Black:
		return "Black"
	case model.White:
		return "White"
	default:
		return "both"
	}
}
