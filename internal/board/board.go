// Package board is an immutable Go board: every placement returns a new
// State with captures applied, leaving the original untouched.
package board

import "github.com/mcoot/gomemo/internal/model"

// State is an immutable board position.
// The zero value is an unusable board of size 0; use Empty.
type State struct {
	size     int
	cells    []model.Color // Row-major: cells[y*size+x]
	captures [3]int        // Stones captured by Black (index 1) and White (index 2)
}

// Empty returns an empty board of the given size
func Empty(size int) State {
	if size < 0 {
		size = 0
	}
	return State{
		size:  size,
		cells: make([]model.Color, size*size),
	}
}

// WithSetup returns a copy of the board with the given stones placed
// directly, without capture processing
func (s State) WithSetup(stones []model.SetupStone) State {
	next := s.clone()
	for _, st := range stones {
		if next.contains(st.X, st.Y) && st.Color.IsStone() {
			next.cells[next.index(st.X, st.Y)] = st.Color
		}
	}
	return next
}

// Size returns the board dimension
func (s State) Size() int {
	return s.size
}

// At returns the stone at (x, y), or Empty for empty or off-board points
func (s State) At(x, y int) model.Color {
	if !s.contains(x, y) {
		return model.Empty
	}
	return s.cells[s.index(x, y)]
}

// IsEmpty returns true if (x, y) is on the board and has no stone
func (s State) IsEmpty(x, y int) bool {
	return s.contains(x, y) && s.cells[s.index(x, y)] == model.Empty
}

// Contains returns true if (x, y) is on the board
func (s State) Contains(x, y int) bool {
	return s.contains(x, y)
}

// Captures returns the number of stones the given color has captured
func (s State) Captures(color model.Color) int {
	if !color.IsStone() {
		return 0
	}
	return s.captures[color]
}

// Place returns the board after color plays at (x, y).
// Opponent groups left without liberties are removed, then the played
// group itself if it has none (suicide). Off-board or occupied points and
// non-stone colors return the board unchanged; legality is the caller's concern.
func (s State) Place(color model.Color, x, y int) State {
	if !color.IsStone() || !s.IsEmpty(x, y) {
		return s
	}

	next := s.clone()
	next.cells[next.index(x, y)] = color

	opponent := color.Opposite()
	for _, n := range next.neighbors(x, y) {
		if next.At(n.X, n.Y) != opponent {
			continue
		}
		group, libs := next.group(n.X, n.Y)
		if libs == 0 {
			next.captures[color] += len(group)
			next.remove(group)
		}
	}

	if group, libs := next.group(x, y); libs == 0 {
		next.captures[opponent] += len(group)
		next.remove(group)
	}

	return next
}

// Grid returns a dense row-major view: grid[y][x] is 0 empty, 1 black, 2 white
func (s State) Grid() [][]int {
	grid := make([][]int, s.size)
	for y := 0; y < s.size; y++ {
		row := make([]int, s.size)
		for x := 0; x < s.size; x++ {
			row[x] = int(s.cells[s.index(x, y)])
		}
		grid[y] = row
	}
	return grid
}

// StoneCount returns the number of stones of the given color on the board
func (s State) StoneCount(color model.Color) int {
	count := 0
	for _, c := range s.cells {
		if c == color {
			count++
		}
	}
	return count
}

func (s State) contains(x, y int) bool {
	return x >= 0 && x < s.size && y >= 0 && y < s.size
}

func (s State) index(x, y int) int {
	return y*s.size + x
}

func (s State) clone() State {
	cells := make([]model.Color, len(s.cells))
	copy(cells, s.cells)
	return State{size: s.size, cells: cells, captures: s.captures}
}

func (s State) neighbors(x, y int) []model.Position {
	out := make([]model.Position, 0, 4)
	for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		nx, ny := x+d[0], y+d[1]
		if s.contains(nx, ny) {
			out = append(out, model.Position{X: nx, Y: ny})
		}
	}
	return out
}

// group flood-fills the chain containing (x, y) and counts its distinct liberties
func (s State) group(x, y int) ([]model.Position, int) {
	color := s.At(x, y)
	if color == model.Empty {
		return nil, 0
	}

	visited := make([]bool, len(s.cells))
	liberties := make(map[int]struct{})
	stack := []model.Position{{X: x, Y: y}}
	visited[s.index(x, y)] = true
	var chain []model.Position

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		chain = append(chain, p)

		for _, n := range s.neighbors(p.X, p.Y) {
			idx := s.index(n.X, n.Y)
			switch s.cells[idx] {
			case model.Empty:
				liberties[idx] = struct{}{}
			case color:
				if !visited[idx] {
					visited[idx] = true
					stack = append(stack, n)
				}
			}
		}
	}

	return chain, len(liberties)
}

func (s State) remove(stones []model.Position) {
	for _, p := range stones {
		s.cells[s.index(p.X, p.Y)] = model.Empty
	}
}
