package sgf

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gomemo/internal/model"
)

type ParserSuite struct {
	suite.Suite
}

func TestParserSuite(t *testing.T) {
	suite.Run(t, new(ParserSuite))
}

func (s *ParserSuite) TestRootProperties() {
	rec, err := Parse([]byte(`(;GM[1]FF[4]SZ[9]KM[6.5]PB[Honinbo Shusaku]PW[Gennan Inseki]RE[B+2]DT[1846-09-11]GN[Ear-reddening game])`))
	s.Require().NoError(err)

	s.Equal(9, rec.BoardSize)
	s.InDelta(6.5, rec.Komi, 0.001)
	s.Equal("Honinbo Shusaku", rec.PlayerBlack)
	s.Equal("Gennan Inseki", rec.PlayerWhite)
	s.Equal("B+2", rec.Result)
	s.Equal("1846-09-11", rec.Date)
	s.Equal("Ear-reddening game", rec.GameName)
	s.Empty(rec.Moves)
	s.NotNil(rec.Moves)
}

func (s *ParserSuite) TestDefaultBoardSize() {
	rec, err := Parse([]byte(`(;FF[4];B[pd])`))
	s.Require().NoError(err)
	s.Equal(DefaultBoardSize, rec.BoardSize)
}

func (s *ParserSuite) TestMoves() {
	rec, err := Parse([]byte(`(;SZ[19];B[pd];W[dp]
		;B[pp];W[dd])`))
	s.Require().NoError(err)

	s.Require().Len(rec.Moves, 4)
	s.Equal(model.Move{X: 15, Y: 3, Color: model.Black, MoveNumber: 1}, rec.Moves[0])
	s.Equal(model.Move{X: 3, Y: 15, Color: model.White, MoveNumber: 2}, rec.Moves[1])
	s.Equal(model.Move{X: 15, Y: 15, Color: model.Black, MoveNumber: 3}, rec.Moves[2])
	s.Equal(model.Move{X: 3, Y: 3, Color: model.White, MoveNumber: 4}, rec.Moves[3])
}

func (s *ParserSuite) TestPasses() {
	rec, err := Parse([]byte(`(;SZ[19];B[pd];W[];B[tt])`))
	s.Require().NoError(err)

	s.Require().Len(rec.Moves, 3)
	s.False(rec.Moves[0].IsPass)
	s.True(rec.Moves[1].IsPass)
	s.Equal(model.White, rec.Moves[1].Color)
	s.True(rec.Moves[2].IsPass)
	s.Equal(3, rec.Moves[2].MoveNumber)
}

func (s *ParserSuite) TestTTIsAPointOnLargeBoards() {
	rec, err := Parse([]byte(`(;SZ[21];B[tt])`))
	s.Require().NoError(err)

	s.Require().Len(rec.Moves, 1)
	s.False(rec.Moves[0].IsPass)
	s.Equal(19, rec.Moves[0].X)
	s.Equal(19, rec.Moves[0].Y)
}

func (s *ParserSuite) TestFollowsMainLine() {
	rec, err := Parse([]byte(`(;SZ[9];B[cc](;W[gg];B[cg])(;W[gc];B[gg]))`))
	s.Require().NoError(err)

	s.Require().Len(rec.Moves, 3)
	s.Equal(model.Position{X: 6, Y: 6}, rec.Moves[1].Position())
	s.Equal(model.Position{X: 2, Y: 6}, rec.Moves[2].Position())
}

func (s *ParserSuite) TestNestedVariationsAreSkipped() {
	rec, err := Parse([]byte(`(;SZ[9];B[cc](;W[gg](;B[cg])(;B[gc];W[ee]))(;W[gc]))`))
	s.Require().NoError(err)

	s.Require().Len(rec.Moves, 3)
	s.Equal(model.Position{X: 2, Y: 6}, rec.Moves[2].Position())
}

func (s *ParserSuite) TestSetupStones() {
	rec, err := Parse([]byte(`(;SZ[19]HA[2]AB[dp][pd]AW[aa:ab];W[qp])`))
	s.Require().NoError(err)

	s.Equal([]model.SetupStone{
		{X: 3, Y: 15, Color: model.Black},
		{X: 15, Y: 3, Color: model.Black},
		{X: 0, Y: 0, Color: model.White},
		{X: 0, Y: 1, Color: model.White},
	}, rec.Setup)
	s.Require().Len(rec.Moves, 1)
	s.Equal(model.White, rec.Moves[0].Color)
}

func (s *ParserSuite) TestEscapedValues() {
	rec, err := Parse([]byte(`(;GN[A \] tricky\\ name]C[line\
continued];B[aa])`))
	s.Require().NoError(err)
	s.Equal(`A ] tricky\ name`, rec.GameName)
	s.Len(rec.Moves, 1)
}

func (s *ParserSuite) TestLowercaseIdentifierLetters() {
	rec, err := Parse([]byte(`(;SiZe[9];B[aa])`))
	s.Require().NoError(err)
	s.Equal(9, rec.BoardSize)
}

func (s *ParserSuite) TestInvalidInput() {
	cases := map[string]string{
		"empty":              ``,
		"no tree":            `;B[aa]`,
		"unterminated value": `(;GN[oops`,
		"unterminated tree":  `(;B[aa]`,
		"off board move":     `(;SZ[9];B[jj])`,
		"bad point":          `(;B[abc])`,
		"bad size":           `(;SZ[x])`,
		"oversized board":    `(;SZ[60])`,
		"property no value":  `(;B)`,
		"pass as setup":      `(;AB[])`,
	}
	for name, input := range cases {
		s.Run(name, func() {
			_, err := Parse([]byte(input))
			s.ErrorIs(err, model.ErrInvalidSGF)
		})
	}
}

func (s *ParserSuite) TestEncodePoint() {
	s.Equal("pd", EncodePoint(15, 3))
	s.Equal("aA", EncodePoint(0, 26))

	x, y, pass, err := decodePoint(EncodePoint(30, 4), 52)
	s.Require().NoError(err)
	s.False(pass)
	s.Equal(30, x)
	s.Equal(4, y)
}
