package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	fen        = flag.String("fen", board.StartFEN, "position for -perft")
	perftDepth = flag.Int("perft", 0, "count leaf nodes to this depth and exit")
	divide     = flag.Bool("divide", false, "with -perft, print the count below each root move")
	stats      = flag.Bool("stats", false, "with -perft, also count captures, castles, checks and mates")
	workers    = flag.Int("workers", -1, "perft worker goroutines (default from CHESSRULES_PERFT_WORKERS)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("%v", err)
	}
	if *workers >= 0 {
		cfg.PerftWorkers = *workers
	}
	log := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.NoColor)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			config.Exitf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			config.Exitf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *perftDepth > 0 {
		if err := runPerft(ctx, log, *fen, *perftDepth, cfg.PerftWorkers, *divide, *stats); err != nil {
			log.Error().Err(err).Msg("perft failed")
			stop()
			pprof.StopCPUProfile()
			os.Exit(1)
		}
		return
	}

	store, err := openStore(cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("storage unavailable, save and load are disabled")
	}
	if store != nil {
		defer store.Close()
	}

	shell := uci.New(uci.Options{
		Logger:       log,
		Store:        store,
		PerftWorkers: cfg.PerftWorkers,
		NoColor:      cfg.NoColor,
	})
	if err := shell.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("shell stopped")
	}
}

// openStore opens the backend selected by cfg. It returns nil when storage
// is turned off.
func openStore(cfg config.Config, log zerolog.Logger) (*storage.Store, error) {
	switch strings.ToLower(cfg.Storage) {
	case config.StorageOff:
		return nil, nil
	case config.StorageMemory:
		return storage.Open(storage.Config{InMemory: true, Logger: log})
	}

	dir, err := storage.DatabaseDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return storage.Open(storage.Config{Dir: dir, Logger: log})
}
