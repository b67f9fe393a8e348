package board

// GameStatus is the outcome of a position.
type GameStatus uint8

const (
	StatusOngoing GameStatus = iota
	StatusCheckmate
	StatusStalemate
	StatusInsufficientMaterial
	StatusRepetition
	StatusFiftyMoves
)

// String returns the status name.
func (s GameStatus) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusInsufficientMaterial:
		return "insufficient material"
	case StatusRepetition:
		return "threefold repetition"
	case StatusFiftyMoves:
		return "fifty-move rule"
	default:
		return "unknown"
	}
}

// IsDraw returns true for every drawn outcome.
func (s GameStatus) IsDraw() bool {
	return s >= StatusStalemate && s <= StatusFiftyMoves
}

// IsOver returns true once the game has a result.
func (s GameStatus) IsOver() bool {
	return s != StatusOngoing
}

// Result returns the PGN result token. toMove is the side to move in the
// final position, which is the side that was mated.
func (s GameStatus) Result(toMove Color) string {
	switch {
	case s == StatusCheckmate && toMove == White:
		return "0-1"
	case s == StatusCheckmate:
		return "1-0"
	case s.IsDraw():
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Status classifies the position. Checkmate and stalemate take precedence
// over the draw rules, which are checked in the order insufficient material,
// repetition, fifty moves.
func (p *Position) Status() GameStatus {
	if !p.HasLegalMoves() {
		if p.InCheck() {
			return StatusCheckmate
		}
		return StatusStalemate
	}
	switch {
	case p.IsInsufficientMaterial():
		return StatusInsufficientMaterial
	case p.IsDrawByRepetition():
		return StatusRepetition
	case p.IsDrawByFiftyMoves():
		return StatusFiftyMoves
	}
	return StatusOngoing
}

// IsCheckmate returns true if the side to move is in check with no legal move.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check and has no
// legal move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsInsufficientMaterial returns true if neither side can ever deliver mate:
// no pawns, rooks or queens remain, and either there is at most one minor
// piece on the board or every minor piece is a bishop on the same colour.
func (p *Position) IsInsufficientMaterial() bool {
	for c := White; c <= Black; c++ {
		if p.pieces[c][Pawn]|p.pieces[c][Rook]|p.pieces[c][Queen] != 0 {
			return false
		}
	}

	knights := p.pieces[White][Knight] | p.pieces[Black][Knight]
	bishops := p.pieces[White][Bishop] | p.pieces[Black][Bishop]

	if (knights | bishops).PopCount() <= 1 {
		return true
	}
	if knights != 0 {
		return false
	}
	return bishops&LightSquares == 0 || bishops&DarkSquares == 0
}

// IsDrawByRepetition returns true if the current position has occurred at
// least three times. Only positions since the last pawn move or capture can
// match, so the search stops there.
func (p *Position) IsDrawByRepetition() bool {
	return p.repetitions() >= 3
}

// repetitions counts occurrences of the current position, itself included.
func (p *Position) repetitions() int {
	key := p.RepetitionKey()
	count := 1
	n := len(p.history)
	limit := min(p.halfMoveClock, n)
	for i := n - 1; i >= n-limit; i-- {
		if p.history[i].Key == key {
			count++
		}
	}
	return count
}

// IsDrawByFiftyMoves returns true once 100 plies have passed without a pawn
// move or capture.
func (p *Position) IsDrawByFiftyMoves() bool {
	return p.halfMoveClock >= 100
}
