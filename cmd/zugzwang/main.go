// Command zugzwang is the engine's entrypoint, offering three
// flag-selected modes: the default UCI loop, a perft counter, and a
// time-limited bench search.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"zugzwang/core"
	"zugzwang/internal/cpuinfo"
	"zugzwang/search"
	"zugzwang/uci"
)

func main() {
	mode := flag.String("mode", "uci", "one of: uci, perft, bench")
	fen := flag.String("fen", core.StartFEN, "starting position for perft/bench modes")
	depth := flag.Int("depth", 5, "perft depth, or bench search time budget in seconds")
	divide := flag.Bool("divide", false, "perft mode: print a per-root-move node breakdown")
	configPath := flag.String("config", "zugzwang.toml", "optional engine config file")
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()

	cfg, err := core.LoadEngineConfig(*configPath)
	if err != nil {
		logger.Fatalw("failed to load engine config", "error", err)
	}
	probe := cpuinfo.Probe()
	logger.Infow("starting zugzwang",
		"mode", *mode, "cpu", probe.BrandName, "cores", probe.Cores,
		"avx2", probe.AVX2, "max_ply", cfg.MaxPly)

	switch *mode {
	case "uci":
		uci.NewDriver(os.Stdout, logger, cfg).Run(os.Stdin)
	case "perft":
		runPerft(*fen, *depth, *divide, logger)
	case "bench":
		runBench(*fen, time.Duration(*depth)*time.Second, cfg, logger)
	default:
		logger.Fatalw("unknown mode", "mode", *mode)
	}
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		// Logging itself failed to initialize; fall back to a no-op logger
		// rather than crash before any diagnostics can reach the user.
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

func runPerft(fen string, depth int, divide bool, logger *zap.SugaredLogger) {
	board, err := core.ParseFEN(fen)
	if err != nil {
		logger.Fatalw("invalid fen", "fen", fen, "error", err)
	}

	start := time.Now()
	if divide {
		var total uint64
		for _, r := range core.DividePerft(board, depth) {
			fmt.Printf("%s: %d\n", r.Move.Algebraic(), r.Nodes)
			total += r.Nodes
		}
		fmt.Printf("\ntotal: %d\n", total)
	} else {
		nodes := core.Perft(board, depth)
		fmt.Printf("perft(%d) = %d\n", depth, nodes)
	}
	logger.Infow("perft complete", "depth", depth, "elapsed", time.Since(start))
}

func runBench(fen string, timeLimit time.Duration, cfg core.EngineConfig, logger *zap.SugaredLogger) {
	board, err := core.ParseFEN(fen)
	if err != nil {
		logger.Fatalw("invalid fen", "fen", fen, "error", err)
	}

	s := search.NewSearcher(cfg)
	s.Info = func(depth int, score int32, nodes uint64, elapsed time.Duration, pv []core.Move) {
		fmt.Println(search.FormatInfo(depth, score, nodes, elapsed, pv))
	}
	pv, score, nodes, depth := s.FindBestMoveIterative(board, timeLimit)
	if len(pv) == 0 {
		fmt.Println("bench: no move found")
		return
	}
	fmt.Printf("bestmove %s score %d depth %d nodes %d\n", pv[0].Algebraic(), score/10, depth, nodes)
}
