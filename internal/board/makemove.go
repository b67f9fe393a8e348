package board

// Undo records what a move changed that cannot be recomputed from the move
// and the resulting position. Key is the repetition key of the position the
// move was played from.
type Undo struct {
	Move           Move
	Moved          Piece
	Captured       Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Key            uint64
}

// capturedSquare returns where the captured piece stood, which differs from
// the destination only for en passant.
func (u Undo) capturedSquare() Square {
	to := u.Move.To()
	if u.Moved.Type() == Pawn && to == u.EnPassant && u.Captured != NoPiece {
		return NewSquare(to.File(), u.Move.From().Rank())
	}
	return to
}

// makeMove commits a legal move and pushes its undo record.
func (p *Position) makeMove(m Move) {
	us := p.sideToMove
	from, to := m.From(), m.To()
	moved := p.squares[from]

	undo := Undo{
		Move:           m,
		Moved:          moved,
		Captured:       NoPiece,
		CastlingRights: p.castlingRights,
		EnPassant:      p.enPassant,
		HalfMoveClock:  p.halfMoveClock,
		Key:            p.RepetitionKey(),
	}

	isEnPassant := m.IsEnPassant(p)
	isCastling := m.IsCastling(p)
	isDoublePush := m.IsDoublePush(p)

	switch {
	case isEnPassant:
		undo.Captured = p.removePiece(NewSquare(to.File(), from.Rank()))
	case p.squares[to] != NoPiece:
		undo.Captured = p.removePiece(to)
	}

	p.movePiece(from, to)

	if m.HasPromotion() {
		p.removePiece(to)
		p.setPiece(NewPiece(m.Promotion(), us), to)
	}

	if isCastling {
		for _, c := range castles {
			if c.king == from && c.kingTo == to {
				p.movePiece(c.rook, c.rookTo)
				break
			}
		}
	}

	p.castlingRights &^= castlingRightsLost[from] | castlingRightsLost[to]

	p.enPassant = NoSquare
	if isDoublePush {
		p.enPassant = Square((int(from) + int(to)) / 2)
	}

	if moved.Type() == Pawn || undo.Captured != NoPiece {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	if us == Black {
		p.fullMoveNumber++
	}
	p.sideToMove = us.Other()

	p.history = append(p.history, undo)
}

// unmakeMove reverses the last record on the history stack.
func (p *Position) unmakeMove() {
	undo := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]

	p.sideToMove = p.sideToMove.Other()
	us := p.sideToMove
	if us == Black {
		p.fullMoveNumber--
	}

	from, to := undo.Move.From(), undo.Move.To()

	if undo.Move.HasPromotion() {
		p.removePiece(to)
		p.setPiece(undo.Moved, to)
	}
	p.movePiece(to, from)

	if undo.Moved.Type() == King && abs(to.File()-from.File()) == 2 {
		for _, c := range castles {
			if c.king == from && c.kingTo == to {
				p.movePiece(c.rookTo, c.rook)
				break
			}
		}
	}

	if undo.Captured != NoPiece {
		p.setPiece(undo.Captured, undo.capturedSquare())
	}

	p.castlingRights = undo.CastlingRights
	p.enPassant = undo.EnPassant
	p.halfMoveClock = undo.HalfMoveClock
}
