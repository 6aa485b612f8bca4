// Package uci implements the engine's external command loop: parsing lines
// from standard input per the UCI protocol and driving core/search in
// response.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"zugzwang/core"
	"zugzwang/search"
)

const (
	EngineName   = "zugzwang"
	EngineAuthor = "zugzwang contributors"

	// DefaultTimeLimit is used when a "go" command carries no time control
	// and EngineConfig.DefaultTimeMS is unset.
	DefaultTimeLimit = 5 * time.Second
)

// Driver owns the board, the searcher, and the I/O streams for one UCI
// session. It is not safe for concurrent use from more than one goroutine
// reading stdin; the search itself runs on its own goroutine per "go",
// cancelled via Searcher.Abort when "stop" or "quit" arrives. outMu
// serializes every write to out, since the in-flight search goroutine and
// the command loop (via "uci", which does not wait for the search) can both
// write concurrently.
type Driver struct {
	out              io.Writer
	outMu            sync.Mutex
	log              *zap.SugaredLogger
	board            *core.Board
	searcher         *search.Searcher
	running          chan struct{}
	defaultTimeLimit time.Duration
}

// NewDriver constructs a Driver writing protocol lines to out and
// diagnostics through log, tuned by cfg.
func NewDriver(out io.Writer, log *zap.SugaredLogger, cfg core.EngineConfig) *Driver {
	defaultTimeLimit := DefaultTimeLimit
	if cfg.DefaultTimeMS > 0 {
		defaultTimeLimit = time.Duration(cfg.DefaultTimeMS) * time.Millisecond
	}
	return &Driver{
		out:              out,
		log:              log,
		board:            core.NewBoard(),
		searcher:         search.NewSearcher(cfg),
		defaultTimeLimit: defaultTimeLimit,
	}
}

// writeOut writes a formatted protocol line to out under outMu.
func (d *Driver) writeOut(format string, args ...any) {
	d.outMu.Lock()
	defer d.outMu.Unlock()
	fmt.Fprintf(d.out, format, args...)
}

// Run reads UCI commands line-by-line from in until "quit" or EOF.
func (d *Driver) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if d.handle(line) {
			return
		}
	}
}

// handle dispatches a single command line; it returns true when the driver
// should stop reading (i.e. "quit" was received).
func (d *Driver) handle(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd := fields[0]

	switch cmd {
	case "uci":
		d.writeOut("id name %s\n", EngineName)
		d.writeOut("id author %s\n", EngineAuthor)
		d.writeOut("uciok\n")
	case "isready":
		d.awaitSearch()
		d.writeOut("readyok\n")
	case "ucinewgame":
		d.awaitSearch()
		d.board = core.NewBoard()
		d.searcher.ResetHistory()
	case "position":
		d.awaitSearch()
		if err := d.handlePosition(fields[1:]); err != nil {
			d.log.Warnw("malformed position command", "line", line, "error", err)
		}
	case "go":
		d.handleGo(fields[1:])
	case "stop":
		d.searcher.Abort.Store(true)
	case "d":
		d.awaitSearch()
		d.writeOut("%s\n", d.board.String())
	case "quit":
		d.searcher.Abort.Store(true)
		d.awaitSearch()
		return true
	default:
		d.log.Debugw("ignoring unrecognized command", "line", line)
	}
	return false
}

// awaitSearch blocks until any in-flight "go" has returned, so that commands
// which mutate board/searcher state never race the search goroutine.
func (d *Driver) awaitSearch() {
	if d.running == nil {
		return
	}
	<-d.running
	d.running = nil
}

func (d *Driver) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("position: missing startpos/fen")
	}

	var b *core.Board
	var rest []string

	switch args[0] {
	case "startpos":
		b = core.NewBoard()
		rest = args[1:]
	case "fen":
		if len(args) < 7 {
			return fmt.Errorf("position fen: expected 6 fen fields, got %d", len(args)-1)
		}
		fen := strings.Join(args[1:7], " ")
		parsed, err := core.ParseFEN(fen)
		if err != nil {
			return err
		}
		b = parsed
		rest = args[7:]
	default:
		return fmt.Errorf("position: unknown subcommand %q", args[0])
	}

	if len(rest) > 0 && rest[0] == "moves" {
		rest = rest[1:]
	}
	for _, alg := range rest {
		m, err := core.ParseAlgebraic(alg)
		if err != nil {
			return fmt.Errorf("position moves: %w", err)
		}
		b.MakeMove(m)
		d.searcher.RecordHistory(b.Hash)
	}

	d.board = b
	return nil
}

func (d *Driver) handleGo(args []string) {
	timeLimit := d.parseTimeLimit(d.board.ActiveColor, args)
	d.searcher.Abort.Store(false)

	done := make(chan struct{})
	d.running = done

	go func() {
		defer close(done)
		d.searcher.Info = func(depth int, score int32, nodes uint64, elapsed time.Duration, pv []core.Move) {
			d.writeOut("%s\n", search.FormatInfo(depth, score, nodes, elapsed, pv))
		}
		pv, _, _, _ := d.searcher.FindBestMoveIterative(d.board, timeLimit)
		if len(pv) == 0 {
			d.log.Errorw("search returned no move", "fen", d.board.FEN())
			d.writeOut("bestmove 0000\n")
			return
		}
		d.writeOut("bestmove %s\n", pv[0].Algebraic())
	}()
}

// parseTimeLimit computes the search budget from UCI "go" parameters: it
// uses the mover's remaining clock and increment when present, else
// d.defaultTimeLimit.
func (d *Driver) parseTimeLimit(mover core.Color, args []string) time.Duration {
	values := map[string]int{}
	for i := 0; i+1 < len(args); i += 2 {
		if n, err := strconv.Atoi(args[i+1]); err == nil {
			values[args[i]] = n
		}
	}

	timeKey, incKey := "wtime", "winc"
	if mover == core.Black {
		timeKey, incKey = "btime", "binc"
	}

	remaining, haveRemaining := values[timeKey]
	if !haveRemaining {
		return d.defaultTimeLimit
	}
	inc := values[incKey]
	movesToGo := values["movestogo"]
	if movesToGo <= 0 {
		movesToGo = 30
	}

	budget := remaining/movesToGo + inc
	if budget <= 0 {
		budget = int(d.defaultTimeLimit.Milliseconds())
	}
	return time.Duration(budget) * time.Millisecond
}
