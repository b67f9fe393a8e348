package board

// Apply plays a move given in UCI notation. The text must name a member of
// the legal move set; otherwise the position is left untouched and the error
// is an *IllegalMoveError.
func (p *Position) Apply(text string) error {
	m, err := ParseMove(text)
	if err != nil {
		return &IllegalMoveError{Move: text, Reason: "malformed move text"}
	}
	if reason := p.rejectReason(m); reason != "" {
		return &IllegalMoveError{Move: text, Reason: reason}
	}
	p.makeMove(m)
	return nil
}

// ApplyMove plays an already decoded move under the same rules as Apply.
func (p *Position) ApplyMove(m Move) error {
	if reason := p.rejectReason(m); reason != "" {
		return &IllegalMoveError{Move: m.String(), Reason: reason}
	}
	p.makeMove(m)
	return nil
}

// Undo takes back the last applied move.
func (p *Position) Undo() error {
	if len(p.history) == 0 {
		return ErrNoHistory
	}
	p.unmakeMove()
	return nil
}

// rejectReason returns why m is not legal here, or "" if it is.
func (p *Position) rejectReason(m Move) string {
	if p.IsLegal(m) {
		return ""
	}

	piece := p.PieceAt(m.From())
	switch {
	case piece == NoPiece:
		return "no piece on " + m.From().String()
	case piece.Color() != p.sideToMove:
		return "it is " + p.sideToMove.String() + " to move"
	}

	promoting := piece.Type() == Pawn && SquareBB(m.To())&(Rank1|Rank8) != 0
	switch {
	case promoting && !m.HasPromotion():
		if p.IsLegal(NewPromotion(m.From(), m.To(), Queen)) {
			return "promotion piece required"
		}
	case !promoting && m.HasPromotion():
		return "promotion piece not allowed"
	case m.HasPromotion() && m.Promotion() == King:
		return "cannot promote to a king"
	}

	base := NewMove(m.From(), m.To())
	if promoting {
		base = NewPromotion(m.From(), m.To(), Queen)
	}
	v := NewVBoard(p)
	v.ApplyMove(base, p.sideToMove)
	if p.reachable(m) && v.KingAttacked(p.sideToMove) {
		return "leaves the king in check"
	}
	return "not a legal move for " + piece.Type().String()
}

// reachable reports whether m matches the piece's movement pattern, ignoring
// king safety.
func (p *Position) reachable(m Move) bool {
	piece := p.PieceAt(m.From())
	from, to := m.From(), m.To()
	occupied := p.allOccupied

	var targets Bitboard
	switch piece.Type() {
	case Pawn:
		targets = p.pawnTargets(from)
	case Knight:
		targets = KnightAttacks(from)
	case Bishop:
		targets = BishopAttacks(from, occupied)
	case Rook:
		targets = RookAttacks(from, occupied)
	case Queen:
		targets = QueenAttacks(from, occupied)
	case King:
		targets = KingAttacks(from)
	}
	return (targets&^p.occupied[p.sideToMove])&SquareBB(to) != 0
}
