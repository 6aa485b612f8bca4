package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"zugzwang/core"
)

func TestPerftReferencePositions(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		depth int
		nodes uint64
		long  bool
	}{
		{"startpos d3", core.StartFEN, 3, 8902, false},
		{"startpos d4", core.StartFEN, 4, 197281, false},
		{"startpos d5", core.StartFEN, 5, 4865609, true},
		{"kiwipete d4", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, 4085603, true},
		{"endgame d6", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 6, 11030083, true},
		{"position4 d4", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 4, 2103487, true},
		{"position5 d4", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 4, 3894594, true},
		{"position6 d5", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 5, 15833292, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if tc.long && testing.Short() {
				t.Skip("skipping large perft node count in -short mode")
			}
			b, err := core.ParseFEN(tc.fen)
			require.NoError(t, err)
			require.Equal(t, tc.nodes, core.Perft(b, tc.depth))
		})
	}
}

func TestDividePerftSumsToPerft(t *testing.T) {
	b, err := core.ParseFEN(core.StartFEN)
	require.NoError(t, err)

	const depth = 3
	var total uint64
	for _, r := range core.DividePerft(b, depth) {
		total += r.Nodes
	}
	require.Equal(t, core.Perft(b, depth), total)
}
