package board

import (
	"errors"
	"slices"
	"testing"
)

func mustParse(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func applyAll(t *testing.T, pos *Position, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if err := pos.Apply(m); err != nil {
			t.Fatalf("Apply(%s): %v", m, err)
		}
	}
}

func TestApplyRejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
	}{
		{"malformed", StartFEN, "e2"},
		{"garbage", StartFEN, "zzzz"},
		{"uppercase promotion", "8/4P3/8/8/8/8/k7/4K3 w - - 0 1", "e7e8Q"},
		{"empty origin", StartFEN, "e3e4"},
		{"wrong side", StartFEN, "e7e5"},
		{"blocked", StartFEN, "a1a3"},
		{"missing promotion", "8/4P3/8/8/8/8/k7/4K3 w - - 0 1", "e7e8"},
		{"extraneous promotion", StartFEN, "e2e4q"},
		{"into check", "4k3/8/8/8/8/8/4r3/3K4 w - - 0 1", "d1d2"},
		{"pinned piece", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", "e2d3"},
		{"castle through check", "4k3/8/8/8/8/8/5r2/4K2R w K - 0 1", "e1g1"},
		{"castle without right", "4k3/8/8/8/8/8/8/4K2R w - - 0 1", "e1g1"},
		{"stale en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - - 0 1", "e5d6"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			before := pos.FEN()

			err := pos.Apply(tc.move)
			if err == nil {
				t.Fatalf("Apply(%s) succeeded", tc.move)
			}
			if !errors.Is(err, ErrIllegalMove) {
				t.Errorf("error %v does not match ErrIllegalMove", err)
			}
			var ime *IllegalMoveError
			if !errors.As(err, &ime) || ime.Move != tc.move {
				t.Errorf("error %v is not an IllegalMoveError for %q", err, tc.move)
			}
			if after := pos.FEN(); after != before {
				t.Errorf("position changed: %s -> %s", before, after)
			}
			if pos.Ply() != 0 {
				t.Errorf("Ply() = %d after rejected move", pos.Ply())
			}
		})
	}
}

func TestFoolsMate(t *testing.T) {
	pos := NewPosition()
	applyAll(t, pos, "f2f3", "e7e5", "g2g4", "d8h4")

	if !pos.IsCheckmate() {
		t.Fatal("IsCheckmate() = false")
	}
	if pos.IsStalemate() {
		t.Error("IsStalemate() = true")
	}
	if got := pos.Status(); got != StatusCheckmate {
		t.Errorf("Status() = %v, want checkmate", got)
	}
	if got := pos.Status().Result(pos.SideToMove()); got != "0-1" {
		t.Errorf("Result = %q, want 0-1", got)
	}
	if got := pos.FEN(); got != "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3" {
		t.Errorf("FEN() = %s", got)
	}
}

func TestEnPassantWindow(t *testing.T) {
	pos := NewPosition()
	applyAll(t, pos, "e2e4", "a7a6", "e4e5", "d7d5")

	if pos.EnPassant() != D6 {
		t.Fatalf("EnPassant() = %s, want d6", pos.EnPassant())
	}
	if !slices.Contains(pos.LegalMoveStrings(), "e5d6") {
		t.Fatal("e5d6 not offered right after d7d5")
	}

	// Capturing removes the pawn behind the target square.
	capture := pos.Clone()
	applyAll(t, capture, "e5d6")
	if capture.PieceAt(D5) != NoPiece || capture.PieceAt(D6) != WhitePawn {
		t.Errorf("after e5d6: d5=%s d6=%s", capture.PieceAt(D5), capture.PieceAt(D6))
	}
	if capture.HalfMoveClock() != 0 {
		t.Errorf("HalfMoveClock() = %d after en passant", capture.HalfMoveClock())
	}

	// One ply later the right is gone.
	applyAll(t, pos, "b1c3", "a6a5")
	if pos.EnPassant() != NoSquare {
		t.Errorf("EnPassant() = %s, want -", pos.EnPassant())
	}
	if err := pos.Apply("e5d6"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Apply(e5d6) = %v, want illegal", err)
	}
}

func TestUndoRestoresPosition(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
	}{
		{"opening", StartFEN, []string{"e2e4", "d7d5", "e4d5", "d8d5", "b1c3"}},
		{"castling", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 3 20", []string{"e1g1", "e8c8", "f1f8"}},
		{"en passant", "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1", []string{"e2e4", "d4e3"}},
		{"promotion capture", "1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1", []string{"a7b8n", "e8e7", "b8c6"}},
		{"rook capture on corner", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"a1a8", "e8e7", "h1h8"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			var fens []string
			for _, m := range tc.moves {
				fens = append(fens, pos.FEN())
				applyAll(t, pos, m)
			}
			for i := len(tc.moves) - 1; i >= 0; i-- {
				if err := pos.Undo(); err != nil {
					t.Fatalf("Undo: %v", err)
				}
				if got := pos.FEN(); got != fens[i] {
					t.Errorf("after undoing %s: %s, want %s", tc.moves[i], got, fens[i])
				}
			}
			if err := pos.Undo(); !errors.Is(err, ErrNoHistory) {
				t.Errorf("Undo on empty history = %v, want ErrNoHistory", err)
			}
		})
	}
}

func TestCastlingRights(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		want  string
	}{
		{"king move", []string{"e1e2"}, "kq"},
		{"kingside rook", []string{"h1h2"}, "Qkq"},
		{"queenside rook", []string{"a1a2"}, "Kkq"},
		{"capture corner rook", []string{"a1a8"}, "Kk"},
		{"castle kingside", []string{"e1g1"}, "kq"},
		{"black castles queenside", []string{"a1b1", "e8c8"}, "K"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			applyAll(t, pos, tc.moves...)
			if got := pos.CastlingRights().String(); got != tc.want {
				t.Errorf("CastlingRights() = %s, want %s", got, tc.want)
			}
		})
	}

	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	applyAll(t, pos, "e1g1")
	if pos.PieceAt(F1) != WhiteRook || pos.PieceAt(H1) != NoPiece || pos.PieceAt(G1) != WhiteKing {
		t.Errorf("castling left\n%s", pos.Dump())
	}
}

func TestClocks(t *testing.T) {
	pos := NewPosition()
	applyAll(t, pos, "g1f3")
	if pos.HalfMoveClock() != 1 || pos.FullMoveNumber() != 1 {
		t.Errorf("after g1f3: clocks %d %d, want 1 1", pos.HalfMoveClock(), pos.FullMoveNumber())
	}
	applyAll(t, pos, "g8f6")
	if pos.HalfMoveClock() != 2 || pos.FullMoveNumber() != 2 {
		t.Errorf("after g8f6: clocks %d %d, want 2 2", pos.HalfMoveClock(), pos.FullMoveNumber())
	}
	applyAll(t, pos, "e2e4")
	if pos.HalfMoveClock() != 0 {
		t.Errorf("pawn move left HalfMoveClock = %d", pos.HalfMoveClock())
	}
	if pos.EnPassant() != E3 {
		t.Errorf("EnPassant() = %s, want e3", pos.EnPassant())
	}
}

func TestPieceCaptureResetsClock(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
	}{
		{"knight", "4k3/8/8/3p4/8/4N3/8/4K3 w - - 7 20", "e3d5"},
		{"rook", "4k3/8/8/3p4/8/8/8/3RK3 w - - 7 20", "d1d5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			applyAll(t, pos, tc.move)
			if pos.HalfMoveClock() != 0 {
				t.Errorf("HalfMoveClock() = %d after %s, want 0", pos.HalfMoveClock(), tc.move)
			}
			if pos.FullMoveNumber() != 20 {
				t.Errorf("FullMoveNumber() = %d, want 20", pos.FullMoveNumber())
			}
			if err := pos.Undo(); err != nil {
				t.Fatal(err)
			}
			if pos.HalfMoveClock() != 7 || pos.FEN() != tc.fen {
				t.Errorf("Undo restored %s", pos.FEN())
			}
		})
	}
}

func TestApplyMove(t *testing.T) {
	pos := NewPosition()
	if err := pos.ApplyMove(NewMove(E2, E4)); err != nil {
		t.Fatal(err)
	}
	if err := pos.ApplyMove(NewMove(E4, E5)); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("ApplyMove out of turn = %v", err)
	}
	h := pos.History()
	if len(h) != 1 || h[0].Moved != WhitePawn || h[0].Captured != NoPiece {
		t.Errorf("History() = %+v", h)
	}
	h[0].Moved = NoPiece
	if pos.History()[0].Moved != WhitePawn {
		t.Error("History() exposes internal storage")
	}
}

func TestReset(t *testing.T) {
	pos := NewPosition()
	applyAll(t, pos, "e2e4", "e7e5")
	pos.Reset()
	if pos.FEN() != StartFEN || pos.Ply() != 0 {
		t.Errorf("after Reset: %s ply %d", pos.FEN(), pos.Ply())
	}
}
