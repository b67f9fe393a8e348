package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-14: promotion piece type + 1 (0 = no promotion)
//
// Captures, en passant, castling and double pushes are not stored; they
// follow from the position the move is played in.
type Move uint16

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move without promotion.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a pawn move that promotes to promo.
func NewPromotion(from, to Square, promo PieceType) Move {
	return NewMove(from, to) | Move(promo+1)<<12
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	v := (m >> 12) & 7
	if v == 0 {
		return NoPieceType
	}
	return PieceType(v - 1)
}

// HasPromotion returns true if the move carries a promotion piece.
func (m Move) HasPromotion() bool {
	return (m>>12)&7 != 0
}

// IsCapture returns true if the move takes a piece in pos, en passant included.
func (m Move) IsCapture(pos *Position) bool {
	mover := pos.PieceAt(m.From())
	if mover == NoPiece {
		return false
	}
	return pos.occupied[mover.Color().Other()]&SquareBB(m.To()) != 0 || m.IsEnPassant(pos)
}

// IsEnPassant returns true if the move is an en passant capture in pos.
func (m Move) IsEnPassant(pos *Position) bool {
	return pos.enPassant != NoSquare &&
		m.To() == pos.enPassant &&
		pos.PieceAt(m.From()).Type() == Pawn &&
		m.From().File() != m.To().File()
}

// IsCastling returns true if the move is a king's two-square castling step.
func (m Move) IsCastling(pos *Position) bool {
	return pos.PieceAt(m.From()).Type() == King && abs(m.To().File()-m.From().File()) == 2
}

// IsDoublePush returns true if the move is a pawn's two-square advance.
func (m Move) IsDoublePush(pos *Position) bool {
	return pos.PieceAt(m.From()).Type() == Pawn && abs(int(m.To())-int(m.From())) == 16
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.HasPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses UCI move text: four characters naming two squares,
// optionally followed by a lowercase promotion letter (n, b, r or q).
// It checks syntax only; legality is decided against a position.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("move %q: want 4 or 5 characters", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("move %q: %w", s, err)
	}
	if from == to {
		return NoMove, fmt.Errorf("move %q: origin equals destination", s)
	}

	if len(s) == 5 {
		promo := pieceTypeFromChar(s[4])
		if promo == NoPieceType {
			return NoMove, fmt.Errorf("move %q: invalid promotion piece %q", s, s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	return NewMove(from, to), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Strings returns the UCI text of every move, in list order.
func (ml *MoveList) Strings() []string {
	out := make([]string, ml.count)
	for i := 0; i < ml.count; i++ {
		out[i] = ml.moves[i].String()
	}
	return out
}
