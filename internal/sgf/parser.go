// Package sgf reads game records in Smart Game Format (FF[4]) into the
// move script used for study and replay. Only the main line is read:
// at every branch the first variation is followed.
package sgf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/gomemo/internal/model"
)

// DefaultBoardSize is used when the record has no SZ property
const DefaultBoardSize = 19

// Record is the result of parsing an SGF file
type Record struct {
	BoardSize   int
	Moves       []model.Move
	Setup       []model.SetupStone
	Komi        float64
	PlayerBlack string
	PlayerWhite string
	Result      string
	Date        string
	GameName    string
}

// node is a single SGF node: property identifier to its values
type node map[string][]string

func (n node) first(key string) string {
	if vals := n[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Parse reads the main line of the first game in data
func Parse(data []byte) (*Record, error) {
	p := &parser{src: string(data)}
	nodes, err := p.mainLine()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSGF, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no root node", model.ErrInvalidSGF)
	}

	root := nodes[0]
	rec := &Record{
		BoardSize:   DefaultBoardSize,
		Moves:       []model.Move{},
		PlayerBlack: root.first("PB"),
		PlayerWhite: root.first("PW"),
		Result:      root.first("RE"),
		Date:        root.first("DT"),
		GameName:    root.first("GN"),
	}

	if sz := root.first("SZ"); sz != "" {
		// Rectangular boards are written "w:h"; only square boards are supported
		n, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(sz, ":", 2)[0]))
		if err != nil || n < 1 || n > 52 {
			return nil, fmt.Errorf("%w: bad board size %q", model.ErrInvalidSGF, sz)
		}
		rec.BoardSize = n
	}
	if km := root.first("KM"); km != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(km), 64); err == nil {
			rec.Komi = f
		}
	}

	for _, n := range nodes {
		// Setup stones after the first move would rewrite a position the
		// script has already committed to; they are ignored
		if len(rec.Moves) == 0 {
			if err := rec.addSetup(n); err != nil {
				return nil, err
			}
		}
		for _, key := range []string{"B", "W"} {
			vals, ok := n[key]
			if !ok {
				continue
			}
			color, _ := model.ParseColor(key)
			move := model.Move{Color: color, MoveNumber: len(rec.Moves) + 1}
			x, y, isPass, err := decodePoint(vals[0], rec.BoardSize)
			if err != nil {
				return nil, fmt.Errorf("%w: move %d: %v", model.ErrInvalidSGF, move.MoveNumber, err)
			}
			move.X, move.Y, move.IsPass = x, y, isPass
			rec.Moves = append(rec.Moves, move)
		}
	}

	return rec, nil
}

func (r *Record) addSetup(n node) error {
	for _, key := range []string{"AB", "AW"} {
		color, _ := model.ParseColor(key[1:])
		for _, v := range n[key] {
			points, err := expandPoints(v, r.BoardSize)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", model.ErrInvalidSGF, key, err)
			}
			for _, p := range points {
				r.Setup = append(r.Setup, model.SetupStone{X: p.X, Y: p.Y, Color: color})
			}
		}
	}
	return nil
}

// decodePoint converts an SGF point such as "pd" to coordinates.
// An empty value, or "tt" on boards up to 19, is a pass.
func decodePoint(v string, size int) (x, y int, isPass bool, err error) {
	v = strings.TrimSpace(v)
	if v == "" || (v == "tt" && size <= 19) {
		return 0, 0, true, nil
	}
	if len(v) != 2 {
		return 0, 0, false, fmt.Errorf("bad point %q", v)
	}
	x, okX := coord(v[0])
	y, okY := coord(v[1])
	if !okX || !okY || x >= size || y >= size {
		return 0, 0, false, fmt.Errorf("point %q is off the board", v)
	}
	return x, y, false, nil
}

// expandPoints decodes a point or a compressed rectangle "aa:cc"
func expandPoints(v string, size int) ([]model.Position, error) {
	parts := strings.SplitN(v, ":", 2)
	x1, y1, pass, err := decodePoint(parts[0], size)
	if err != nil || pass {
		return nil, fmt.Errorf("bad setup point %q", v)
	}
	if len(parts) == 1 {
		return []model.Position{{X: x1, Y: y1}}, nil
	}
	x2, y2, pass, err := decodePoint(parts[1], size)
	if err != nil || pass {
		return nil, fmt.Errorf("bad setup point %q", v)
	}

	var out []model.Position
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		for x := min(x1, x2); x <= max(x1, x2); x++ {
			out = append(out, model.Position{X: x, Y: y})
		}
	}
	return out, nil
}

// coord maps 'a'-'z' to 0-25 and 'A'-'Z' to 26-51
func coord(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26, true
	default:
		return 0, false
	}
}

// EncodePoint is the inverse of decodePoint for on-board points
func EncodePoint(x, y int) string {
	enc := func(n int) byte {
		if n < 26 {
			return byte('a' + n)
		}
		return byte('A' + n - 26)
	}
	return string([]byte{enc(x), enc(y)})
}
