// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessrules/internal/config"
)

var (
	// Server options
	addr    = flag.String("addr", ":8080", "Listen address")
	origins = flag.String("origins", "*", "Allowed CORS origins (comma-separated)")

	// Storage options
	dbPath     = flag.String("db", "", "SQLite database file (default: in-memory, games are lost on exit)")
	noAutosave = flag.Bool("no-autosave", false, "Don't save games after each move")

	// Rules options
	strictPawn = flag.Bool("strict-pawn", false, "Require the square passed over by a two-square pawn advance to be empty")

	// Analysis options
	workers      = flag.Int("workers", 0, "Number of analysis workers (0 = auto-detect based on CPU cores)")
	maxPositions = flag.Int("max-positions", 256, "Maximum positions per analysis request")
	noCache      = flag.Bool("no-cache", false, "Don't cache analysis results")

	// Offline modes
	replayFile   = flag.String("replay", "", "Replay a move list file (- for stdin) and print the final game")
	classifyFEN  = flag.String("classify", "", "Print the status of a FEN position and exit")
	outputFile   = flag.String("o", "", "Output file for -replay and -classify (default: stdout)")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	lineLength   = flag.Int("w", 80, "Maximum line length for move lists")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	quiet     = flag.Bool("s", false, "Silent mode (errors only)")
	debug     = flag.Bool("debug", false, "Log every request and move")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyServerFlags(cfg)
	applyStoreFlags(cfg)
	applyAnalysisFlags(cfg)
	cfg.Rules.StrictPawnAdvance = *strictPawn

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *debug:
		cfg.Verbosity = 2
	}
}

// applyServerFlags configures the HTTP listener.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.Addr = *addr
	cfg.Server.AllowOrigins = *origins
}

// applyStoreFlags configures persistence.
func applyStoreFlags(cfg *config.Config) {
	cfg.Store.DBPath = *dbPath
	cfg.Store.Autosave = !*noAutosave
}

// applyAnalysisFlags configures the analysis worker pool.
func applyAnalysisFlags(cfg *config.Config) {
	if *workers > 0 {
		cfg.Analysis.Workers = *workers
	}
	cfg.Analysis.MaxPositions = *maxPositions
	cfg.Analysis.CacheResults = !*noCache
}
