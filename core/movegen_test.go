package core_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zugzwang/core"
)

func algebraicSet(moves []core.ScoredMove) []string {
	out := make([]string, len(moves))
	for i, sm := range moves {
		out[i] = sm.Move.Algebraic()
	}
	sort.Strings(out)
	return out
}

func TestScenarioLonePawnPush(t *testing.T) {
	b, err := core.ParseFEN("8/8/8/8/4P3/8/8/8 w - - 0 1")
	require.NoError(t, err)

	moves := fromSquare(t, b, "e4")
	assert.Equal(t, []string{"e4e5"}, algebraicSet(moves))
}

func TestScenarioEnPassantCapture(t *testing.T) {
	b, err := core.ParseFEN("8/8/3p4/4Pp2/8/8/8/8 w - f6 0 1")
	require.NoError(t, err)

	moves := fromSquare(t, b, "e5")
	assert.Equal(t, []string{"e5d6", "e5e6", "e5f6"}, algebraicSet(moves))
}

func TestScenarioPromotionGeneratesFourMoves(t *testing.T) {
	b, err := core.ParseFEN("8/6P1/8/8/8/8/8/8 w - - 0 1")
	require.NoError(t, err)

	moves := fromSquare(t, b, "g7")
	assert.Equal(t, []string{"g7g8b", "g7g8n", "g7g8q", "g7g8r"}, algebraicSet(moves))
}

func TestScenarioCheckmate(t *testing.T) {
	b, err := core.ParseFEN("1k6/8/8/8/8/8/PPn5/KN6 w - - 0 1")
	require.NoError(t, err)

	assert.True(t, b.IsCheckmate())
	assert.False(t, b.IsStalemate())
}

func TestScenarioStalemate(t *testing.T) {
	b, err := core.ParseFEN("1k6/8/8/8/8/1r6/7r/K7 w - - 0 1")
	require.NoError(t, err)

	assert.True(t, b.IsStalemate())
	assert.False(t, b.IsCheckmate())
}

func TestCastlingBlockedByAttack(t *testing.T) {
	b, err := core.ParseFEN(core.StartFEN)
	require.NoError(t, err)
	// Clear the squares between king and rook but leave f1 attacked by a
	// black rook, so castling must not be generated.
	b2, err := core.ParseFEN("rnbqkbnr/pppppppp/8/8/8/5r2/PPPPP1PP/RNBQK2R w KQkq - 0 1")
	require.NoError(t, err)

	for _, b := range []*core.Board{b, b2} {
		moves := fromSquare(t, b, "e1")
		for _, sm := range moves {
			assert.NotEqual(t, "e1g1", sm.Move.Algebraic())
		}
	}
}

func TestLegalMovesAreSubsetOfPseudoMoves(t *testing.T) {
	b, err := core.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	pseudo := map[core.Move]bool{}
	for _, sm := range core.GeneratePseudoMoves(b, core.Move{}) {
		pseudo[sm.Move] = true
	}
	for _, sm := range core.GenerateLegalMoves(b) {
		assert.True(t, pseudo[sm.Move], "legal move %v not found among pseudo-legal moves", sm.Move.Algebraic())
	}
}

func fromSquare(t *testing.T, b *core.Board, sq string) []core.ScoredMove {
	t.Helper()
	from, err := core.FieldFromCoordinate(sq)
	require.NoError(t, err)

	var out []core.ScoredMove
	for _, sm := range core.GenerateLegalMoves(b) {
		if sm.Move.From == from {
			out = append(out, sm)
		}
	}
	return out
}
