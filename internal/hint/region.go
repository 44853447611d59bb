// Package hint computes the spatial hints shown after wrong replay attempts.
//
// The first hint is the board quadrant containing the target. Each further
// wrong attempt halves the current region on both axes, keeping the half
// that contains the target, until the region is at most ExactThreshold
// points wide or tall; from then on the exact point is revealed.
package hint

import "github.com/mcoot/gomemo/internal/model"

// ExactThreshold is the region width/height at or below which the hint
// switches from a region to the exact point
const ExactThreshold = 3

// Type distinguishes region hints from exact-point hints
type Type string

const (
	TypeQuadrant Type = "quadrant"
	TypeExact    Type = "exact"
)

// Region is an axis-aligned rectangle of board points with inclusive bounds
type Region struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	MinY int `json:"min_y"`
	MaxY int `json:"max_y"`
}

// Width returns the number of columns in the region
func (r Region) Width() int {
	return r.MaxX - r.MinX + 1
}

// Height returns the number of rows in the region
func (r Region) Height() int {
	return r.MaxY - r.MinY + 1
}

// Area returns the number of points in the region
func (r Region) Area() int {
	return r.Width() * r.Height()
}

// Contains returns true if (x, y) lies inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// CanBisect returns true if both dimensions exceed ExactThreshold
func (r Region) CanBisect() bool {
	return r.Width() > ExactThreshold && r.Height() > ExactThreshold
}

// Quadrant returns the quarter of a size×size board that contains target.
// Each axis splits at size/2: [0, mid-1] and [mid, size-1].
func Quadrant(size int, target model.Position) Region {
	mid := size / 2
	r := Region{MinX: 0, MaxX: mid - 1, MinY: 0, MaxY: mid - 1}
	if target.X >= mid {
		r.MinX, r.MaxX = mid, size-1
	}
	if target.Y >= mid {
		r.MinY, r.MaxY = mid, size-1
	}
	return r
}

// Bisect halves r on both axes and returns the half containing target.
// Each axis splits at (min+max)/2: [min, mid] and [mid+1, max].
func Bisect(r Region, target model.Position) Region {
	midX := (r.MinX + r.MaxX) / 2
	midY := (r.MinY + r.MaxY) / 2

	next := r
	if target.X <= midX {
		next.MaxX = midX
	} else {
		next.MinX = midX + 1
	}
	if target.Y <= midY {
		next.MaxY = midY
	} else {
		next.MinY = midY + 1
	}
	return next
}

// Hint is what the user is shown after a wrong attempt
type Hint struct {
	Type     Type            `json:"type"`
	Region   *Region         `json:"region,omitempty"`
	Position *model.Position `json:"position,omitempty"`
}

// NewRegionHint returns a quadrant-type hint for r
func NewRegionHint(r Region) *Hint {
	return &Hint{Type: TypeQuadrant, Region: &r}
}

// NewExactHint returns an exact-type hint for p
func NewExactHint(p model.Position) *Hint {
	return &Hint{Type: TypeExact, Position: &p}
}
