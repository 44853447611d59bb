package model

// Position identifies an intersection on the board
type Position struct {
	X int `json:"x"` // column, 0-indexed from the left
	Y int `json:"y"` // row, 0-indexed from the top
}

// Move is a single entry of a recorded game
type Move struct {
	X          int   `json:"x"`
	Y          int   `json:"y"`
	Color      Color `json:"color"`
	MoveNumber int   `json:"move_number"`
	IsPass     bool  `json:"is_pass,omitempty"`
}

// Position returns the move's coordinate. Meaningless for passes.
func (m Move) Position() Position {
	return Position{X: m.X, Y: m.Y}
}

// SetupStone is a stone placed before the first move (handicap or setup)
type SetupStone struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Color Color `json:"color"`
}
