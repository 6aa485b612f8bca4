package search

import (
	"fmt"
	"sync/atomic"
	"time"

	"zugzwang/core"
)

// MaxPly is the hard upper bound on the PV buffer and on any configured ply
// ceiling: EngineConfig.MaxPly may tighten this but never loosen it.
const MaxPly = 20

// InfoFunc is invoked after each iterative-deepening depth completes.
type InfoFunc func(depth int, score int32, nodes uint64, elapsed time.Duration, pv []core.Move)

// Searcher owns everything exclusive to one search: the repetition map
// (game history plus current path; this state lives on the engine rather
// than the board, since the board itself is cloned freely during search),
// the PV buffer, and the node counter. The Abort flag is the only state
// shared with the UCI driver's main thread.
type Searcher struct {
	Abort *atomic.Bool

	repetition map[uint64]uint8
	pv         [MaxPly][MaxPly]core.Move
	pvLen      [MaxPly]int
	nodes      uint64

	maxDepth      int
	plyCeiling    int
	drawDetection bool
	pstScale      int32

	Info InfoFunc
}

// NewSearcher returns a Searcher configured from cfg, with a fresh
// repetition map and abort flag. cfg.MaxPly outside [1, MaxPly] falls back
// to MaxPly;
// cfg.MaxDepth <= 0 means iterative deepening is bounded only by its time
// budget. cfg.PieceSquareScale <= 0 falls back to the unscaled default of 1.
func NewSearcher(cfg core.EngineConfig) *Searcher {
	plyCeiling := cfg.MaxPly
	if plyCeiling <= 0 || plyCeiling > MaxPly {
		plyCeiling = MaxPly
	}
	pstScale := int32(cfg.PieceSquareScale)
	if pstScale <= 0 {
		pstScale = 1
	}
	return &Searcher{
		Abort:         new(atomic.Bool),
		repetition:    make(map[uint64]uint8),
		maxDepth:      cfg.MaxDepth,
		plyCeiling:    plyCeiling,
		drawDetection: cfg.DrawDetection,
		pstScale:      pstScale,
	}
}

// ResetHistory clears the repetition map. Called on "ucinewgame" so stale
// hashes from a previous game cannot corrupt draw detection in the next one.
func (s *Searcher) ResetHistory() {
	s.repetition = make(map[uint64]uint8)
}

// RecordHistory adds a position played in the real game (not the search
// path) to the repetition map, e.g. every position visited while replaying
// "position ... moves ...".
func (s *Searcher) RecordHistory(hash uint64) {
	s.repetition[hash]++
}

// FindBestMoveIterative runs iterative deepening from depth 1 under
// timeLimit, completing each depth fully or stopping and keeping the
// previous depth's result. It returns the deepest completed iteration's
// principal variation, score, total nodes searched up to the end of that
// iteration (nodes spent in an abandoned partial depth are not counted),
// and the completed depth.
func (s *Searcher) FindBestMoveIterative(board *core.Board, timeLimit time.Duration) (pv []core.Move, score int32, nodes uint64, depth int) {
	deadline := time.Now().Add(timeLimit)
	start := time.Now()
	s.nodes = 0

	rootHash := board.Hash
	s.RecordHistory(rootHash)
	defer s.forgetHistory(rootHash)

	for d := 1; s.maxDepth <= 0 || d <= s.maxDepth; d++ {
		if time.Now().After(deadline) {
			break
		}
		s.pvLen = [MaxPly]int{}

		val, ok := s.negamax(board, d, MinEvaluation, MaxEvaluation, 0, deadline)
		if !ok {
			break
		}

		score = val
		depth = d
		pv = append(pv[:0:0], s.pv[0][:s.pvLen[0]]...)
		nodes = s.nodes

		if s.Info != nil {
			s.Info(depth, score, nodes, time.Since(start), pv)
		}
	}
	return pv, score, nodes, depth
}

func (s *Searcher) forgetHistory(hash uint64) {
	if s.repetition[hash] <= 1 {
		delete(s.repetition, hash)
	} else {
		s.repetition[hash]--
	}
}

func (s *Searcher) aborted(deadline time.Time) bool {
	if time.Now().After(deadline) {
		return true
	}
	return s.Abort != nil && s.Abort.Load()
}

// negamax is fail-soft alpha-beta with a fixed-size PV buffer. A false
// second return means the deadline passed or the abort flag was set; the
// caller must propagate that upward without touching its own best-so-far.
func (s *Searcher) negamax(board *core.Board, depth int, alpha, beta int32, ply int, deadline time.Time) (int32, bool) {
	if s.aborted(deadline) {
		return 0, false
	}
	s.pvLen[ply] = 0

	if ply > 0 && s.drawDetection {
		hash := board.Hash
		if s.repetition[hash] >= 2 || board.IsDrawByFiftyMoveRule() {
			return Draw, true
		}
		s.repetition[hash]++
		defer s.forgetHistory(hash)
	}

	if depth <= 0 || ply > s.plyCeiling {
		return s.quiescence(board, alpha, beta, ply, deadline)
	}

	legal := core.GenerateLegalMoves(board)
	if len(legal) == 0 {
		if board.InCheck() {
			return Loss - int32(depth), true
		}
		return Draw, true
	}

	best := MinEvaluation
	for _, sm := range legal {
		child := board.Clone()
		child.MakeMove(sm.Move)
		s.nodes++

		childScore, ok := s.negamax(child, depth-1, -beta, -alpha, ply+1, deadline)
		if !ok {
			return 0, false
		}
		score := -childScore

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			s.pv[ply][0] = sm.Move
			copy(s.pv[ply][1:], s.pv[ply+1][:s.pvLen[ply+1]])
			s.pvLen[ply] = s.pvLen[ply+1] + 1
		}
		if alpha >= beta {
			break
		}
	}
	return best, true
}

// quiescence extends the search past the nominal horizon along capture
// lines only, bounded by the same alpha-beta window-flip as negamax.
func (s *Searcher) quiescence(board *core.Board, alpha, beta int32, ply int, deadline time.Time) (int32, bool) {
	if s.aborted(deadline) {
		return 0, false
	}

	standPat := evaluateSigned(board, s.pstScale)
	if standPat > alpha {
		alpha = standPat
	}
	if alpha >= beta {
		return alpha, true
	}

	best := alpha
	for _, sm := range core.GenerateLegalCaptures(board) {
		child := board.Clone()
		child.MakeMove(sm.Move)
		s.nodes++

		childScore, ok := s.quiescence(child, -beta, -alpha, ply+1, deadline)
		if !ok {
			return 0, false
		}
		score := -childScore

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best, true
}

// FormatInfo renders a completed depth as a UCI "info" line; the internal
// score is divided by 10 to report centipawns.
func FormatInfo(depth int, score int32, nodes uint64, elapsed time.Duration, pv []core.Move) string {
	ms := elapsed.Milliseconds()
	nps := uint64(0)
	if ms > 0 {
		nps = nodes * 1000 / uint64(ms)
	}
	line := fmt.Sprintf("info depth %d score cp %d time %d nodes %d nps %d pv", depth, score/10, ms, nodes, nps)
	for _, m := range pv {
		line += " " + m.Algebraic()
	}
	return line
}
