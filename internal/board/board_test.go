package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/gomemo/internal/model"
)

func TestEmptyBoard(t *testing.T) {
	b := Empty(9)

	assert.Equal(t, 9, b.Size())
	assert.Equal(t, 0, b.StoneCount(model.Black))
	assert.True(t, b.IsEmpty(0, 0))
	assert.False(t, b.IsEmpty(9, 0))
	assert.Equal(t, model.Empty, b.At(-1, 3))
}

func TestPlaceReturnsNewState(t *testing.T) {
	before := Empty(9)
	after := before.Place(model.Black, 2, 3)

	assert.Equal(t, model.Black, after.At(2, 3))
	assert.Equal(t, model.Empty, before.At(2, 3), "original board must not change")
}

func TestPlaceOnOccupiedPointIsNoOp(t *testing.T) {
	b := Empty(9).Place(model.Black, 4, 4)
	same := b.Place(model.White, 4, 4)

	assert.Equal(t, model.Black, same.At(4, 4))
}

func TestPlaceOffBoardIsNoOp(t *testing.T) {
	b := Empty(5).Place(model.Black, 5, 5)
	assert.Equal(t, 0, b.StoneCount(model.Black))
}

func TestSingleStoneCapture(t *testing.T) {
	b := Empty(9).
		Place(model.White, 4, 4).
		Place(model.Black, 4, 3).
		Place(model.Black, 4, 5).
		Place(model.Black, 3, 4)

	assert.Equal(t, model.White, b.At(4, 4))

	b = b.Place(model.Black, 5, 4)

	assert.Equal(t, model.Empty, b.At(4, 4))
	assert.Equal(t, 1, b.Captures(model.Black))
	assert.Equal(t, 0, b.Captures(model.White))
}

func TestCornerGroupCapture(t *testing.T) {
	b := Empty(9).
		Place(model.White, 0, 0).
		Place(model.White, 1, 0).
		Place(model.Black, 0, 1).
		Place(model.Black, 1, 1)

	b = b.Place(model.Black, 2, 0)

	assert.Equal(t, model.Empty, b.At(0, 0))
	assert.Equal(t, model.Empty, b.At(1, 0))
	assert.Equal(t, 2, b.Captures(model.Black))
}

func TestCaptureTakesPrecedenceOverSuicide(t *testing.T) {
	b := Empty(5).
		Place(model.Black, 1, 0).
		Place(model.Black, 0, 1).
		Place(model.White, 2, 0).
		Place(model.White, 1, 1).
		Place(model.White, 0, 2)

	// White at (0,0) has no liberties of its own but captures both black stones
	b = b.Place(model.White, 0, 0)

	assert.Equal(t, model.White, b.At(0, 0))
	assert.Equal(t, model.Empty, b.At(1, 0))
	assert.Equal(t, model.Empty, b.At(0, 1))
	assert.Equal(t, 2, b.Captures(model.White))
}

func TestSuicideRemovesOwnStone(t *testing.T) {
	b := Empty(5).
		Place(model.White, 1, 0).
		Place(model.White, 0, 1)

	b = b.Place(model.Black, 0, 0)

	assert.Equal(t, model.Empty, b.At(0, 0))
	assert.Equal(t, 1, b.Captures(model.White))
}

func TestWithSetup(t *testing.T) {
	b := Empty(9).WithSetup([]model.SetupStone{
		{X: 2, Y: 2, Color: model.Black},
		{X: 6, Y: 6, Color: model.Black},
		{X: 20, Y: 20, Color: model.White},
	})

	assert.Equal(t, model.Black, b.At(2, 2))
	assert.Equal(t, model.Black, b.At(6, 6))
	assert.Equal(t, 2, b.StoneCount(model.Black))
	assert.Equal(t, 0, b.StoneCount(model.White))
}

func TestGrid(t *testing.T) {
	b := Empty(3).Place(model.Black, 0, 1).Place(model.White, 2, 0)

	assert.Equal(t, [][]int{
		{0, 0, 2},
		{1, 0, 0},
		{0, 0, 0},
	}, b.Grid())
}
