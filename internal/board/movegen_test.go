package board

import (
	"slices"
	"strings"
	"testing"
)

func TestInitialMoves(t *testing.T) {
	want := []string{
		"a2a3", "a2a4", "b2b3", "b2b4", "c2c3", "c2c4", "d2d3", "d2d4",
		"e2e3", "e2e4", "f2f3", "f2f4", "g2g3", "g2g4", "h2h3", "h2h4",
		"b1a3", "b1c3", "g1f3", "g1h3",
	}
	got := NewPosition().LegalMoveStrings()
	if !slices.Equal(got, want) {
		t.Errorf("LegalMoveStrings() =\n%v\nwant\n%v", got, want)
	}
}

func TestLegalMovesDeterministic(t *testing.T) {
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	first := pos.LegalMoveStrings()
	for i := 0; i < 5; i++ {
		if got := pos.LegalMoveStrings(); !slices.Equal(got, first) {
			t.Fatalf("order changed between calls:\n%v\n%v", first, got)
		}
	}
}

func TestPromotionOrder(t *testing.T) {
	pos := mustParse(t, "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	var promos []string
	for _, m := range pos.LegalMoveStrings() {
		if strings.HasPrefix(m, "a7") {
			promos = append(promos, m)
		}
	}
	want := []string{"a7a8n", "a7a8b", "a7a8r", "a7a8q", "a7b8n", "a7b8b", "a7b8r", "a7b8q"}
	if !slices.Equal(promos, want) {
		t.Errorf("promotions = %v, want %v", promos, want)
	}
}

func TestCastlingGeneration(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
		not  []string
	}{
		{
			name: "both sides",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			want: []string{"e1g1", "e1c1"},
		},
		{
			name: "black both sides",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			want: []string{"e8g8", "e8c8"},
		},
		{
			name: "in check",
			fen:  "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			not:  []string{"e1g1", "e1c1"},
		},
		{
			name: "destination attacked",
			fen:  "2r1k1r1/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			not:  []string{"e1g1", "e1c1"},
		},
		{
			name: "b1 attacked is fine",
			fen:  "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1",
			want: []string{"e1c1"},
		},
		{
			name: "b1 occupied",
			fen:  "4k3/8/8/8/8/8/8/RN2K3 w Q - 0 1",
			not:  []string{"e1c1"},
		},
		{
			name: "rook missing",
			fen:  "4k3/8/8/8/8/8/8/4K3 w KQ - 0 1",
			not:  []string{"e1g1", "e1c1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			moves := pos.LegalMoveStrings()
			for _, m := range tc.want {
				if !slices.Contains(moves, m) {
					t.Errorf("%s missing from %v", m, moves)
				}
			}
			for _, m := range tc.not {
				if slices.Contains(moves, m) {
					t.Errorf("%s generated", m)
				}
			}
		})
	}
}

func TestIsLegal(t *testing.T) {
	pos := NewPosition()
	for _, m := range pos.LegalMoves().Slice() {
		if !pos.IsLegal(m) {
			t.Errorf("IsLegal(%s) = false for a generated move", m)
		}
	}
	for _, s := range []string{"e2e5", "e7e5", "g1g3", "e1e2"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		if pos.IsLegal(m) {
			t.Errorf("IsLegal(%s) = true", s)
		}
	}
	if pos.IsLegal(NoMove) {
		t.Error("IsLegal(NoMove) = true")
	}
}

func TestHasLegalMoves(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{StartFEN, true},
		{"R6k/6pp/8/8/8/8/8/K7 b - - 0 1", false},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false},
		{"7k/8/6K1/8/8/8/8/8 b - - 0 1", true},
	}
	for _, tc := range tests {
		pos := mustParse(t, tc.fen)
		if got := pos.HasLegalMoves(); got != tc.want {
			t.Errorf("HasLegalMoves(%s) = %v, want %v", tc.fen, got, tc.want)
		}
	}
}

func TestParseMove(t *testing.T) {
	valid := []string{"e2e4", "a7a8q", "h2h1n", "e1g1"}
	for _, s := range valid {
		m, err := ParseMove(s)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", s, err)
			continue
		}
		if m.String() != s {
			t.Errorf("ParseMove(%q).String() = %q", s, m.String())
		}
	}

	invalid := []string{"", "e2", "e2e4e", "e2e4k", "e2e4Q", "i2e4", "e9e4", "e2e2", "e2e4qq"}
	for _, s := range invalid {
		if _, err := ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q) accepted", s)
		}
	}

	if NoMove.String() != "0000" {
		t.Errorf("NoMove.String() = %q", NoMove.String())
	}
}

func TestToSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"pawn push", StartFEN, "e2e4", "e4"},
		{"knight", StartFEN, "g1f3", "Nf3"},
		{"castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/R4RK1 w - - 0 1", "a1d1", "Rad1"},
		{"rank disambiguation", "4k3/R7/8/8/8/8/8/R3K3 w - - 0 1", "a1a4", "R1a4"},
		{"pawn capture", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2", "e4d5", "exd5"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2", "e5d6", "exd6"},
		{"promotion check", "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8q", "b8=Q+"},
		{"mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2", "d8h4", "Qh4#"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			m, err := ParseMove(tc.move)
			if err != nil {
				t.Fatal(err)
			}
			if got := m.ToSAN(pos); got != tc.want {
				t.Errorf("ToSAN(%s) = %q, want %q", tc.move, got, tc.want)
			}
		})
	}
}

func TestMovesToSAN(t *testing.T) {
	var moves []Move
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, _ := ParseMove(s)
		moves = append(moves, m)
	}
	pos := NewPosition()
	got := MovesToSAN(pos, moves)
	want := []string{"f3", "e5", "g4", "Qh4#"}
	if !slices.Equal(got, want) {
		t.Errorf("MovesToSAN = %v, want %v", got, want)
	}
	if pos.FEN() != StartFEN {
		t.Error("MovesToSAN modified its input")
	}
}
