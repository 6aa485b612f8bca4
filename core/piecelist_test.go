package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zugzwang/core"
)

func TestPieceListMatchesSquaresAfterMoves(t *testing.T) {
	b, err := core.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	var walk func(board *core.Board, depth int)
	walk = func(board *core.Board, depth int) {
		assertPieceListConsistent(t, board)
		if depth == 0 {
			return
		}
		for _, sm := range core.GenerateLegalMoves(board) {
			child := board.Clone()
			child.MakeMove(sm.Move)
			walk(child, depth-1)
		}
	}
	walk(b, 2)
}

func assertPieceListConsistent(t *testing.T, b *core.Board) {
	t.Helper()
	seen := map[core.ChessField]core.Piece{}
	for row := int8(0); row < 8; row++ {
		for col := int8(0); col < 8; col++ {
			sq := core.ChessField{Row: row, Col: col}
			if p := b.At(sq); p.Present {
				seen[sq] = p
			}
		}
	}
	for _, color := range []core.Color{core.White, core.Black} {
		for _, sq := range b.Pieces[color].All() {
			p, ok := seen[sq]
			assert.True(t, ok, "piece list entry at %v has no matching square", sq)
			assert.Equal(t, color, p.Color)
			delete(seen, sq)
		}
	}
	assert.Empty(t, seen, "squares occupied but missing from piece lists")
}
