// chess-server serves chess games over HTTP and websockets, enforcing the
// rules of movement, check, checkmate and stalemate.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chessrules/internal/analysis"
	"github.com/lgbarn/chessrules/internal/config"
	"github.com/lgbarn/chessrules/internal/server"
	"github.com/lgbarn/chessrules/internal/service"
	"github.com/lgbarn/chessrules/internal/store"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	setupLogFile(cfg)
	setupOutputFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch {
	case *classifyFEN != "":
		err = runClassify(cfg, *classifyFEN)
	case *replayFile != "":
		err = runReplay(cfg, *replayFile)
	default:
		err = runServer(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

// openStore opens the SQLite database when one is configured and an
// in-memory store otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if !cfg.Store.Persistent() {
		return store.NewMemoryStore(), nil
	}
	return store.OpenSQLite(ctx, cfg.Store.DBPath)
}

// runServer serves until SIGINT or SIGTERM, then shuts down gracefully.
func runServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cfg.Logger()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Errorf("closing store: %v", err)
		}
	}()
	if cfg.Store.Persistent() {
		logger.Infof("games stored in %s", cfg.Store.DBPath)
	}

	games := service.NewGameService(cfg, st)
	srv := server.New(cfg, games, analysis.NewAnalyzer(cfg.Rules.Engine(), cfg.Analysis))

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	return srv.Shutdown(context.Background())
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves chess games with full move validation over HTTP and websockets.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEndpoints:\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games                      Create a game\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games                      List games\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id                  Game state\n")
	fmt.Fprintf(os.Stderr, "  DELETE /api/games/:id                  Delete a game\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/moves            Play {\"from\":\"e2\",\"to\":\"e4\"}\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id/destinations     Legal targets, ?square=e2\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/undo             Take back the last move\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/reset            Restart the game\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/analyze                    Classify positions\n")
	fmt.Fprintf(os.Stderr, "  GET    /ws/games/:id                   Live updates and commands\n")
}
