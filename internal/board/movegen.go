package board

// LegalMoves generates every legal move for the side to move. Moves are
// ordered by piece type (pawn first, king last), then origin square, then
// destination square, then promotion piece (N, B, R, Q).
func (p *Position) LegalMoves() *MoveList {
	ml := NewMoveList()
	p.generate(ml, false)
	return ml
}

// LegalMoveStrings returns LegalMoves in UCI notation.
func (p *Position) LegalMoveStrings() []string {
	return p.LegalMoves().Strings()
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	ml := NewMoveList()
	p.generate(ml, true)
	return ml.Len() > 0
}

// IsLegal returns true if m is a member of LegalMoves.
func (p *Position) IsLegal(m Move) bool {
	if m == NoMove {
		return false
	}
	from := p.PieceAt(m.From())
	if from == NoPiece || from.Color() != p.sideToMove {
		return false
	}
	ml := NewMoveList()
	p.generatePiece(ml, from.Type(), m.From(), false)
	return ml.Contains(m)
}

// generate fills ml with legal moves, stopping after the first one when
// firstOnly is set.
func (p *Position) generate(ml *MoveList, firstOnly bool) {
	us := p.sideToMove
	for pt := Pawn; pt <= King; pt++ {
		pieces := p.pieces[us][pt]
		for pieces != 0 {
			p.generatePiece(ml, pt, pieces.PopLSB(), firstOnly)
			if firstOnly && ml.Len() > 0 {
				return
			}
		}
	}
}

// generatePiece adds the legal moves of the piece of type pt on from.
func (p *Position) generatePiece(ml *MoveList, pt PieceType, from Square, firstOnly bool) {
	us := p.sideToMove
	own := p.occupied[us]
	occupied := p.allOccupied

	var targets Bitboard
	switch pt {
	case Pawn:
		p.generatePawnMoves(ml, from, firstOnly)
		return
	case Knight:
		targets = KnightAttacks(from)
	case Bishop:
		targets = BishopAttacks(from, occupied)
	case Rook:
		targets = RookAttacks(from, occupied)
	case Queen:
		targets = QueenAttacks(from, occupied)
	case King:
		targets = KingAttacks(from) | p.castlingTargets(from)
	}
	targets &^= own

	for targets != 0 {
		m := NewMove(from, targets.PopLSB())
		if p.leavesKingSafe(m) {
			ml.Add(m)
			if firstOnly {
				return
			}
		}
	}
}

// pawnTargets returns the pushes, captures and en passant squares of the pawn
// on from.
func (p *Position) pawnTargets(from Square) Bitboard {
	us := p.sideToMove
	empty := ^p.allOccupied
	bb := SquareBB(from)

	var push Bitboard
	if us == White {
		push = bb.North() & empty
		push |= (push & Rank3).North() & empty
	} else {
		push = bb.South() & empty
		push |= (push & Rank6).South() & empty
	}

	captures := PawnAttacks(from, us) & p.occupied[us.Other()]
	if p.enPassant != NoSquare {
		captures |= PawnAttacks(from, us) & SquareBB(p.enPassant)
	}
	return push | captures
}

func (p *Position) generatePawnMoves(ml *MoveList, from Square, firstOnly bool) {
	targets := p.pawnTargets(from)
	for targets != 0 {
		to := targets.PopLSB()
		if SquareBB(to)&(Rank1|Rank8) != 0 {
			// the king's safety does not depend on the promotion piece
			if !p.leavesKingSafe(NewMove(from, to)) {
				continue
			}
			for promo := Knight; promo <= Queen; promo++ {
				ml.Add(NewPromotion(from, to, promo))
			}
		} else if m := NewMove(from, to); p.leavesKingSafe(m) {
			ml.Add(m)
		}
		if firstOnly && ml.Len() > 0 {
			return
		}
	}
}

// castlingTargets returns the king destinations of every castling move whose
// preconditions hold, other than the destination square's own safety, which
// the simulation checks.
func (p *Position) castlingTargets(from Square) Bitboard {
	us := p.sideToMove
	var targets Bitboard
	for _, c := range castles {
		if c.color != us || p.castlingRights&c.right == 0 || from != c.king {
			continue
		}
		if p.squares[c.rook] != NewPiece(Rook, us) {
			continue
		}
		if Between(c.king, c.rook)&p.allOccupied != 0 {
			continue
		}
		them := us.Other()
		if p.IsSquareAttacked(c.king, them) || p.IsSquareAttacked(c.rookTo, them) {
			continue
		}
		targets |= SquareBB(c.kingTo)
	}
	return targets
}

// leavesKingSafe plays m on a scratch board and reports whether the mover's
// king is safe afterwards.
func (p *Position) leavesKingSafe(m Move) bool {
	v := NewVBoard(p)
	v.ApplyMove(m, p.sideToMove)
	return !v.KingAttacked(p.sideToMove)
}

// hasLegalEnPassant returns true if the side to move can legally capture en
// passant right now.
func (p *Position) hasLegalEnPassant() bool {
	if p.enPassant == NoSquare {
		return false
	}
	us := p.sideToMove
	attackers := PawnAttacks(p.enPassant, us.Other()) & p.pieces[us][Pawn]
	for attackers != 0 {
		if p.leavesKingSafe(NewMove(attackers.PopLSB(), p.enPassant)) {
			return true
		}
	}
	return false
}
