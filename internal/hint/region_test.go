package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/gomemo/internal/model"
)

func TestQuadrant(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		target model.Position
		want   Region
	}{
		{"upper left on 19", 19, model.Position{X: 3, Y: 3}, Region{0, 8, 0, 8}},
		{"upper right on 19", 19, model.Position{X: 15, Y: 3}, Region{9, 18, 0, 8}},
		{"lower left on 19", 19, model.Position{X: 3, Y: 15}, Region{0, 8, 9, 18}},
		{"center point on 19", 19, model.Position{X: 9, Y: 9}, Region{9, 18, 9, 18}},
		{"edge of lower half on 9", 9, model.Position{X: 4, Y: 4}, Region{4, 8, 4, 8}},
		{"last upper row on 9", 9, model.Position{X: 3, Y: 3}, Region{0, 3, 0, 3}},
		{"even size", 8, model.Position{X: 4, Y: 3}, Region{4, 7, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quadrant(tt.size, tt.target)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Contains(tt.target.X, tt.target.Y))
		})
	}
}

func TestBisect(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		target model.Position
		want   Region
	}{
		{"keeps lower halves", Region{0, 8, 0, 8}, model.Position{X: 3, Y: 3}, Region{0, 4, 0, 4}},
		{"keeps upper halves", Region{0, 8, 0, 8}, model.Position{X: 7, Y: 5}, Region{5, 8, 5, 8}},
		{"mixed", Region{9, 18, 0, 8}, model.Position{X: 10, Y: 8}, Region{9, 13, 5, 8}},
		{"five wide", Region{0, 4, 0, 4}, model.Position{X: 1, Y: 1}, Region{0, 2, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bisect(tt.region, tt.target)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Contains(tt.target.X, tt.target.Y))
			assert.Less(t, got.Area(), tt.region.Area())
		})
	}
}

func TestBisectConvergesForEveryPoint(t *testing.T) {
	const size = 19
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			target := model.Position{X: x, Y: y}
			r := Quadrant(size, target)
			steps := 0
			for r.CanBisect() {
				next := Bisect(r, target)
				assert.Less(t, next.Area(), r.Area())
				r = next
				steps++
			}
			assert.True(t, r.Contains(x, y))
			assert.LessOrEqual(t, steps, 3)
		}
	}
}

func TestRegionDimensions(t *testing.T) {
	r := Region{MinX: 2, MaxX: 6, MinY: 1, MaxY: 3}

	assert.Equal(t, 5, r.Width())
	assert.Equal(t, 3, r.Height())
	assert.Equal(t, 15, r.Area())
	assert.False(t, r.CanBisect())
	assert.True(t, Region{0, 3, 0, 3}.CanBisect())
}
