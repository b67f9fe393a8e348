package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/perft"
)

func runPerft(ctx context.Context, log zerolog.Logger, fen string, depth, workers int, divide, withStats bool) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	printer := message.NewPrinter(language.English)
	log.Info().Str("fen", pos.FEN()).Int("depth", depth).Int("workers", workers).Msg("perft")

	start := time.Now()
	var st perft.Stats
	switch {
	case withStats:
		if st, err = perft.DivideStats(ctx, pos, depth, workers); err != nil {
			return err
		}
	case divide:
		entries, total, err := perft.Divide(ctx, pos, depth, workers)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(os.Stdout, "%s: %d\n", e.Move, e.Nodes)
		}
		st.Nodes = total
	default:
		_, total, err := perft.Divide(ctx, pos, depth, workers)
		if err != nil {
			return err
		}
		st.Nodes = total
	}
	elapsed := time.Since(start)

	rate := 0
	if s := elapsed.Seconds(); s > 0 {
		rate = int(float64(st.Nodes) / s)
	}
	if withStats {
		printer.Fprintf(os.Stdout, "d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d mate=%d (%.3fs elapsed)\n",
			depth, st.Nodes, rate, st.Captures, st.EnPassant, st.Castles, st.Promotions, st.Checks, st.Checkmates, elapsed.Seconds())
		return nil
	}
	printer.Fprintf(os.Stdout, "d=%d nodes=%d rate=%dn/s (%.3fs elapsed)\n", depth, st.Nodes, rate, elapsed.Seconds())
	return nil
}
