package board

// VBoard is a scratch copy of a position's bitboards used to try a move
// without touching the real Position. It carries no clocks, rights or
// history, only what attack detection needs.
type VBoard struct {
	pieces      [2][6]Bitboard
	occupied    [2]Bitboard
	allOccupied Bitboard
}

// NewVBoard creates a VBoard from a Position.
func NewVBoard(p *Position) VBoard {
	return VBoard{
		pieces:      p.pieces,
		occupied:    p.occupied,
		allOccupied: p.allOccupied,
	}
}

func (v *VBoard) pieceTypeAt(c Color, bb Bitboard) PieceType {
	for t := Pawn; t <= King; t++ {
		if v.pieces[c][t]&bb != 0 {
			return t
		}
	}
	return NoPieceType
}

// ApplyMove plays m for us with no validation. A pawn stepping diagonally onto
// an empty square is en passant; a king stepping two files is castling.
func (v *VBoard) ApplyMove(m Move, us Color) {
	them := us.Other()
	from, to := m.From(), m.To()
	fromBB, toBB := SquareBB(from), SquareBB(to)

	pt := v.pieceTypeAt(us, fromBB)
	if pt == NoPieceType {
		return
	}

	if captured := v.pieceTypeAt(them, toBB); captured != NoPieceType {
		v.pieces[them][captured] &^= toBB
		v.occupied[them] &^= toBB
	} else if pt == Pawn && from.File() != to.File() {
		capBB := SquareBB(NewSquare(to.File(), from.Rank()))
		v.pieces[them][Pawn] &^= capBB
		v.occupied[them] &^= capBB
	}

	moveBB := fromBB | toBB
	v.pieces[us][pt] ^= moveBB
	v.occupied[us] ^= moveBB

	if m.HasPromotion() {
		v.pieces[us][Pawn] &^= toBB
		v.pieces[us][m.Promotion()] |= toBB
	}

	if pt == King && abs(to.File()-from.File()) == 2 {
		rookFrom, rookTo := from+3, from+1
		if to < from {
			rookFrom, rookTo = from-4, from-1
		}
		rookBB := SquareBB(rookFrom) | SquareBB(rookTo)
		v.pieces[us][Rook] ^= rookBB
		v.occupied[us] ^= rookBB
	}

	v.allOccupied = v.occupied[White] | v.occupied[Black]
}

// KingAttacked reports whether c's king is attacked on the scratch board.
func (v *VBoard) KingAttacked(c Color) bool {
	ksq := v.pieces[c][King].LSB()
	if ksq == NoSquare {
		return false
	}
	return attackersByColor(&v.pieces, ksq, c.Other(), v.allOccupied) != 0
}
