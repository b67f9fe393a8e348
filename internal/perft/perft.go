// Package perft counts the leaf nodes of the legal move tree, the standard
// check that move generation matches published results.
package perft

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessrules/internal/board"
)

// Count returns the number of leaf nodes depth plies below pos. pos is left
// as it was.
func Count(pos *board.Position, depth int) uint64 {
	n, _ := count(context.Background(), pos.Clone(), depth)
	return n
}

// CountContext is Count that gives up with ctx's error once ctx is done.
func CountContext(ctx context.Context, pos *board.Position, depth int) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return count(ctx, pos.Clone(), depth)
}

func count(ctx context.Context, p *board.Position, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(moves.Len()), nil
	}
	// ctx is polled only above the last two plies
	if depth > 2 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}

	var nodes uint64
	for _, m := range moves.Slice() {
		if err := p.ApplyMove(m); err != nil {
			continue
		}
		n, err := count(ctx, p, depth-1)
		_ = p.Undo()
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// Stats breaks the leaf count down by move kind. Every counter refers to the
// moves played on the last ply.
type Stats struct {
	Nodes      uint64 `json:"nodes"`
	Captures   uint64 `json:"captures"`
	EnPassant  uint64 `json:"en_passant"`
	Castles    uint64 `json:"castles"`
	Promotions uint64 `json:"promotions"`
	Checks     uint64 `json:"checks"`
	Checkmates uint64 `json:"checkmates"`
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Captures += o.Captures
	s.EnPassant += o.EnPassant
	s.Castles += o.Castles
	s.Promotions += o.Promotions
	s.Checks += o.Checks
	s.Checkmates += o.Checkmates
}

// CountStats walks the tree like Count and classifies every leaf move.
func CountStats(pos *board.Position, depth int) Stats {
	var s Stats
	if depth <= 0 {
		s.Nodes = 1
		return s
	}
	countStats(pos.Clone(), depth, &s)
	return s
}

func countStats(p *board.Position, depth int, s *Stats) {
	for _, m := range p.LegalMoves().Slice() {
		if depth == 1 {
			s.Nodes++
			if m.IsCapture(p) {
				s.Captures++
			}
			if m.IsEnPassant(p) {
				s.EnPassant++
			}
			if m.IsCastling(p) {
				s.Castles++
			}
			if m.HasPromotion() {
				s.Promotions++
			}
		}
		if err := p.ApplyMove(m); err != nil {
			continue
		}
		if depth == 1 {
			if p.InCheck() {
				s.Checks++
				if !p.HasLegalMoves() {
					s.Checkmates++
				}
			}
		} else {
			countStats(p, depth-1, s)
		}
		_ = p.Undo()
	}
}

// Entry is the subtree size below one root move.
type Entry struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

// Divide counts the subtree below every root move, running up to workers
// subtrees at once on independent clones. workers <= 0 uses GOMAXPROCS.
// Entries keep the root move order of LegalMoves.
func Divide(ctx context.Context, pos *board.Position, depth, workers int) ([]Entry, uint64, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if depth < 1 {
		depth = 1
	}

	moves := pos.LegalMoves().Slice()
	entries := make([]Entry, len(moves))
	var total atomic.Uint64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range moves {
		i, m := i, m
		entries[i].Move = m.String()
		child := pos.Clone()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := child.ApplyMove(m); err != nil {
				return err
			}
			n, err := count(ctx, child, depth-1)
			if err != nil {
				return err
			}
			entries[i].Nodes = n
			total.Add(n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return entries, total.Load(), nil
}

// DivideStats is Divide with a Stats breakdown for the whole tree.
func DivideStats(ctx context.Context, pos *board.Position, depth, workers int) (Stats, error) {
	if depth <= 1 {
		return CountStats(pos, depth), nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	moves := pos.LegalMoves().Slice()
	parts := make([]Stats, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range moves {
		i, m := i, m
		child := pos.Clone()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := child.ApplyMove(m); err != nil {
				return err
			}
			countStats(child, depth-1, &parts[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, p := range parts {
		s.add(p)
	}
	return s, nil
}
