package board

import "testing"

// perft counts the leaf nodes at the given depth.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.LegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for _, m := range moves.Slice() {
		p.makeMove(m)
		nodes += perft(p, depth-1)
		p.unmakeMove()
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []int64 // by depth, starting at 1
	}{
		{
			name:  "start",
			fen:   StartFEN,
			nodes: []int64{20, 400, 8902, 197281},
		},
		{
			// castling through attacked squares, promotions, en passant
			name:  "kiwipete",
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			nodes: []int64{48, 2039, 97862},
		},
		{
			// horizontal en passant pins
			name:  "position 3",
			fen:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			nodes: []int64{14, 191, 2812, 43238},
		},
		{
			name:  "position 4",
			fen:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			nodes: []int64{6, 264, 9467},
		},
		{
			name:  "position 5",
			fen:   "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			nodes: []int64{44, 1486, 62379},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			before := pos.FEN()
			for i, want := range tc.nodes {
				if got := perft(pos, i+1); got != want {
					t.Errorf("perft(%d) = %d, want %d", i+1, got, want)
				}
			}
			if after := pos.FEN(); after != before {
				t.Errorf("position changed by perft: %s -> %s", before, after)
			}
		})
	}
}

// Black's e4 pawn may not take on d3: both pawns would leave the fourth rank
// and expose the black king on a4 to the rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatal(err)
	}

	for _, m := range pos.LegalMoveStrings() {
		if m == "e4d3" {
			t.Fatal("en passant capture exposing the king was generated")
		}
	}
	if got := perft(pos, 1); got != 6 {
		t.Errorf("perft(1) = %d, want 6", got)
	}
	if got := perft(pos, 2); got != 94 {
		t.Errorf("perft(2) = %d, want 94", got)
	}
}

func BenchmarkPerftStart(b *testing.B) {
	pos := NewPosition()
	for i := 0; i < b.N; i++ {
		perft(pos, 3)
	}
}
