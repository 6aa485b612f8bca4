package core

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// EngineConfig holds the search knobs that may be overridden by an optional
// zugzwang.toml file. None of these fields change move-generation or
// make-move semantics; they only tune the search's depth, time, drawing,
// and evaluation budget.
type EngineConfig struct {
	MaxDepth         int  `toml:"max_depth"`
	DefaultTimeMS    int  `toml:"default_time_ms"`
	MaxPly           int  `toml:"max_ply"`
	PieceSquareScale int  `toml:"piece_square_scale"`
	DrawDetection    bool `toml:"draw_detection"`
}

// DefaultEngineConfig returns the engine's out-of-the-box tuning: depth is
// otherwise unbounded (iterative deepening stops on its own deadline), a
// 5 second fallback search budget, a 20-ply hard ceiling, an unscaled (1x)
// piece-square table, and fifty-move/repetition draw detection enabled.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxDepth:         0,
		DefaultTimeMS:    5000,
		MaxPly:           20,
		PieceSquareScale: 1,
		DrawDetection:    true,
	}
}

// LoadEngineConfig reads path as TOML and overlays it onto
// DefaultEngineConfig. A missing file is not an error: the engine simply
// runs with the defaults.
func LoadEngineConfig(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load engine config %q: %w", path, err)
	}
	return cfg, nil
}
