// Package uci implements a line-oriented text shell over the rules core. It
// speaks the position/move subset of the Universal Chess Interface plus
// debugging and persistence commands.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/perft"
	"github.com/hailam/chessrules/internal/storage"
)

// ErrNoStore is reported by save, load and games when storage is disabled.
var ErrNoStore = errors.New("storage is disabled")

// Options configures a Shell.
type Options struct {
	Logger zerolog.Logger
	// Store backs save/load/games/delete. Nil disables them.
	Store *storage.Store
	// PerftWorkers bounds divide's parallelism; 0 means GOMAXPROCS.
	PerftWorkers int
	NoColor      bool
}

// Shell holds one game and executes commands against it. A Shell is not
// safe for concurrent use.
type Shell struct {
	opts     Options
	log      zerolog.Logger
	pos      *board.Position
	startFEN string

	errColor  *color.Color
	infoColor *color.Color
}

// New creates a shell at the standard starting position.
func New(opts Options) *Shell {
	s := &Shell{
		opts:      opts,
		log:       opts.Logger.With().Str("component", "uci").Logger(),
		pos:       board.NewPosition(),
		startFEN:  board.StartFEN,
		errColor:  color.New(color.FgRed),
		infoColor: color.New(color.FgCyan),
	}
	if opts.NoColor {
		s.errColor.DisableColor()
		s.infoColor.DisableColor()
	}
	return s
}

// Position returns the current position. Callers must not mutate it while
// the shell runs.
func (s *Shell) Position() *board.Position {
	return s.pos
}

// Run reads commands from r until EOF, quit, or ctx is done. Lines are read
// on a separate goroutine so that cancelling ctx also stops a Run that is
// waiting for input; that goroutine exits after its pending read returns.
func (s *Shell) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case line := <-lines:
			if err := ctx.Err(); err != nil {
				return err
			}
			if quit := s.Execute(ctx, line, w); quit {
				return nil
			}
		}
	}
}

// Execute runs a single command line and reports whether it was quit.
func (s *Shell) Execute(ctx context.Context, line string, w io.Writer) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := parts[0], parts[1:]
	s.log.Debug().Str("cmd", cmd).Strs("args", args).Msg("command")

	var err error
	switch cmd {
	case "uci":
		fmt.Fprintln(w, "id name chessrules")
		fmt.Fprintln(w, "id author hailam")
		fmt.Fprintln(w, "uciok")
	case "isready":
		fmt.Fprintln(w, "readyok")
	case "ucinewgame", "reset":
		s.pos.Reset()
		s.startFEN = board.StartFEN
	case "position":
		err = s.handlePosition(args)
	case "moves":
		s.handleMoves(args, w)
	case "move":
		err = s.handleMove(args, w)
	case "undo":
		err = s.pos.Undo()
	case "d":
		fmt.Fprint(w, s.pos.String())
		fmt.Fprintf(w, "FEN: %s\n", s.pos.FEN())
	case "fen":
		fmt.Fprintln(w, s.pos.FEN())
	case "status":
		st := s.pos.Status()
		fmt.Fprintf(w, "%s %s\n", st, st.Result(s.pos.SideToMove()))
	case "history":
		s.handleHistory(w)
	case "perft":
		err = s.handlePerft(ctx, args, w)
	case "divide":
		err = s.handleDivide(ctx, args, w)
	case "save":
		err = s.handleSave(args, w)
	case "load":
		err = s.handleLoad(args, w)
	case "delete":
		err = s.handleDelete(args)
	case "games":
		err = s.handleGames(w)
	case "quit":
		return true
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		s.log.Debug().Err(err).Str("cmd", cmd).Msg("command failed")
		s.errColor.Fprintf(w, "error: %v\n", err)
	}
	return false
}

// handlePosition parses and sets up a position. The current game is only
// replaced once the FEN and every move have been accepted.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (s *Shell) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position: want startpos or fen")
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var fen string
	switch args[0] {
	case "startpos":
		if movesAt != 1 {
			return fmt.Errorf("position: unexpected %q after startpos", args[1])
		}
		fen = board.StartFEN
	case "fen":
		fen = strings.Join(args[1:movesAt], " ")
	default:
		return fmt.Errorf("position: want startpos or fen, got %q", args[0])
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	if movesAt < len(args) {
		for _, m := range args[movesAt+1:] {
			if err := pos.Apply(m); err != nil {
				return err
			}
		}
	}

	s.pos = pos
	s.startFEN = pos.FEN()
	if h := pos.History(); len(h) > 0 {
		// the game starts where the FEN did, before the listed moves
		start := pos.Clone()
		for range h {
			_ = start.Undo()
		}
		s.startFEN = start.FEN()
	}
	return nil
}

func (s *Shell) handleMoves(args []string, w io.Writer) {
	if len(args) > 0 && args[0] == "san" {
		moves := s.pos.LegalMoves().Slice()
		san := make([]string, len(moves))
		for i, m := range moves {
			san[i] = m.ToSAN(s.pos)
		}
		fmt.Fprintln(w, strings.Join(san, " "))
		return
	}
	fmt.Fprintln(w, strings.Join(s.pos.LegalMoveStrings(), " "))
}

func (s *Shell) handleMove(args []string, w io.Writer) error {
	if len(args) != 1 {
		return errors.New("move: want one move in UCI notation")
	}
	if err := s.pos.Apply(args[0]); err != nil {
		return err
	}
	if st := s.pos.Status(); st.IsOver() {
		s.infoColor.Fprintf(w, "game over: %s %s\n", st, st.Result(s.pos.SideToMove()))
	}
	return nil
}

func (s *Shell) handleHistory(w io.Writer) {
	start, err := board.ParseFEN(s.startFEN)
	if err != nil {
		return
	}
	history := s.pos.History()
	moves := make([]board.Move, len(history))
	for i, u := range history {
		moves[i] = u.Move
	}

	var sb strings.Builder
	for i, san := range board.MovesToSAN(start, moves) {
		ply := i
		if start.SideToMove() == board.Black {
			ply++
		}
		switch {
		case ply%2 == 0:
			fmt.Fprintf(&sb, "%d. %s ", start.FullMoveNumber()+ply/2, san)
		case i == 0:
			fmt.Fprintf(&sb, "%d... %s ", start.FullMoveNumber(), san)
		default:
			fmt.Fprintf(&sb, "%s ", san)
		}
	}
	fmt.Fprintln(w, strings.TrimSpace(sb.String()))
}

func parseDepth(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("want a depth")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		return 0, fmt.Errorf("depth %q: want a positive integer", args[0])
	}
	return depth, nil
}

func (s *Shell) handlePerft(ctx context.Context, args []string, w io.Writer) error {
	depth, err := parseDepth(args)
	if err != nil {
		return fmt.Errorf("perft: %w", err)
	}

	start := time.Now()
	nodes, err := perft.CountContext(ctx, s.pos, depth)
	if err != nil {
		return fmt.Errorf("perft: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Fprintf(w, "nodes %s\n", humanize.Comma(int64(nodes)))
	fmt.Fprintf(w, "time %s\n", elapsed.Round(time.Millisecond))
	s.log.Debug().Int("depth", depth).Uint64("nodes", nodes).Dur("elapsed", elapsed).Msg("perft")
	return nil
}

func (s *Shell) handleDivide(ctx context.Context, args []string, w io.Writer) error {
	depth, err := parseDepth(args)
	if err != nil {
		return fmt.Errorf("divide: %w", err)
	}

	entries, total, err := perft.Divide(ctx, s.pos, depth, s.opts.PerftWorkers)
	if err != nil {
		return fmt.Errorf("divide: %w", err)
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s: %d\n", e.Move, e.Nodes)
	}
	fmt.Fprintf(w, "total %s\n", humanize.Comma(int64(total)))
	return nil
}

func (s *Shell) store() (*storage.Store, error) {
	if s.opts.Store == nil {
		return nil, ErrNoStore
	}
	return s.opts.Store, nil
}

func wantID(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: want one game id", cmd)
	}
	return args[0], nil
}

func (s *Shell) handleSave(args []string, w io.Writer) error {
	st, err := s.store()
	if err != nil {
		return err
	}
	id, err := wantID("save", args)
	if err != nil {
		return err
	}

	rec, err := storage.RecordFromPosition(id, s.startFEN, s.pos)
	if err != nil {
		return err
	}
	if err := st.SaveGame(rec); err != nil {
		return err
	}
	fmt.Fprintf(w, "saved %s (%d moves)\n", id, len(rec.Moves))
	return nil
}

func (s *Shell) handleLoad(args []string, w io.Writer) error {
	st, err := s.store()
	if err != nil {
		return err
	}
	id, err := wantID("load", args)
	if err != nil {
		return err
	}

	rec, err := st.LoadGame(id)
	if err != nil {
		return err
	}
	pos, err := storage.Replay(rec)
	if err != nil {
		return err
	}
	s.pos = pos
	s.startFEN = rec.StartFEN
	s.log.Info().Str("id", id).Int("moves", len(rec.Moves)).Msg("game loaded")
	fmt.Fprintf(w, "loaded %s (%d moves) %s\n", id, len(rec.Moves), rec.Status)
	return nil
}

func (s *Shell) handleDelete(args []string) error {
	st, err := s.store()
	if err != nil {
		return err
	}
	id, err := wantID("delete", args)
	if err != nil {
		return err
	}
	return st.DeleteGame(id)
}

func (s *Shell) handleGames(w io.Writer) error {
	st, err := s.store()
	if err != nil {
		return err
	}
	recs, err := st.ListGames()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%d moves\t%s\t%s\t%s\n",
			rec.ID, len(rec.Moves), rec.Status, rec.Result, humanize.Time(rec.UpdatedAt))
	}
	stats, err := st.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d games, %d finished (+%d -%d =%d)\n",
		stats.Games, stats.Finished, stats.WhiteWins, stats.BlackWins, stats.Draws)
	return nil
}
