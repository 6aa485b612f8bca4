package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zugzwang/core"
)

func TestFENRoundTrip(t *testing.T) {
	cases := []string{
		core.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range cases {
		b, err := core.ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, b.FEN())
	}
}

func TestParseFENRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", // missing field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",        // wrong rank count
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ZZZZ - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
	}
	for _, fen := range cases {
		_, err := core.ParseFEN(fen)
		assert.Error(t, err, fen)
	}
}

func TestStartingPositionHasThirtyTwoPieces(t *testing.T) {
	b := core.NewBoard()
	count := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if b.Squares[row][col].Present {
				count++
			}
		}
	}
	assert.Equal(t, 32, count)
	assert.Equal(t, core.ChessField{Row: 0, Col: 4}, b.KingSquare(core.White))
	assert.Equal(t, core.ChessField{Row: 7, Col: 4}, b.KingSquare(core.Black))
}
