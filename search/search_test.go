package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zugzwang/core"
	"zugzwang/search"
)

func TestFindBestMoveIterativeFindsMateInOne(t *testing.T) {
	// White to move: a clean back-rank mate, Ra8, with the white king on g6
	// covering f7, g7 and h7.
	b, err := core.ParseFEN("6k1/8/6K1/8/8/8/8/R7 w - - 0 1")
	require.NoError(t, err)

	s := search.NewSearcher(core.DefaultEngineConfig())
	pv, score, _, depth := s.FindBestMoveIterative(b, 500*time.Millisecond)
	require.NotEmpty(t, pv)
	require.GreaterOrEqual(t, depth, 1)
	assert.Equal(t, "a1a8", pv[0].Algebraic())
	assert.Greater(t, score, int32(search.Win)-100)
}

func TestFindBestMoveIterativeRespectsDeadline(t *testing.T) {
	b := core.NewBoard()
	s := search.NewSearcher(core.DefaultEngineConfig())

	start := time.Now()
	pv, _, _, depth := s.FindBestMoveIterative(b, 100*time.Millisecond)
	elapsed := time.Since(start)

	require.NotEmpty(t, pv)
	assert.GreaterOrEqual(t, depth, 1)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestFindBestMoveIterativeStopsImmediatelyWhenAborted(t *testing.T) {
	b := core.NewBoard()
	s := search.NewSearcher(core.DefaultEngineConfig())
	s.Abort.Store(true)

	pv, _, _, depth := s.FindBestMoveIterative(b, 5*time.Second)
	assert.Empty(t, pv)
	assert.Equal(t, 0, depth)
}

func TestFindBestMoveIterativeRespectsMaxDepth(t *testing.T) {
	b := core.NewBoard()
	cfg := core.DefaultEngineConfig()
	cfg.MaxDepth = 2
	s := search.NewSearcher(cfg)

	_, _, _, depth := s.FindBestMoveIterative(b, 5*time.Second)
	assert.LessOrEqual(t, depth, 2)
}
