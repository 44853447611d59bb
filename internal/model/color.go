package model

import (
	"encoding/json"
	"fmt"
)

// Color is the color of a stone or of the side to move
type Color int8

const (
	Empty Color = iota
	Black
	White
)

// Opposite returns the other player's color, or Empty for Empty
func (c Color) Opposite() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// String returns the SGF letter for the color ("B", "W"), or "" for Empty
func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return ""
	}
}

// IsStone returns true for Black and White
func (c Color) IsStone() bool {
	return c == Black || c == White
}

// ParseColor converts "B"/"W" (case-insensitive) to a Color.
// The empty string parses to Empty.
func ParseColor(s string) (Color, error) {
	switch s {
	case "":
		return Empty, nil
	case "B", "b":
		return Black, nil
	case "W", "w":
		return White, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

// MarshalJSON encodes the color as "B", "W" or ""
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes "B", "W" or ""
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
