package board

import "strings"

// ToSAN renders a legal move of pos in Standard Algebraic Notation,
// including the check (+) or mate (#) suffix.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.From(), m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder
	pt := piece.Type()

	switch {
	case m.IsCastling(pos):
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	default:
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(pos, m, pt))
		}
		if m.IsCapture(pos) {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.HasPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	next := pos.Clone()
	next.makeMove(m)
	switch {
	case next.IsCheckmate():
		sb.WriteByte('#')
	case next.InCheck():
		sb.WriteByte('+')
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed when another
// piece of the same type can reach the same destination.
func disambiguation(pos *Position, m Move, pt PieceType) string {
	from, to := m.From(), m.To()
	pieces := pos.pieces[pos.sideToMove][pt]

	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range pos.LegalMoves().Slice() {
		of := other.From()
		if other.To() != to || of == from || !pieces.IsSet(of) {
			continue
		}
		ambiguous = true
		if of.File() == from.File() {
			sameFile = true
		}
		if of.Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}

// MovesToSAN renders a sequence of moves played from pos. pos is not
// modified. Rendering stops at the first illegal move.
func MovesToSAN(pos *Position, moves []Move) []string {
	p := pos.Clone()
	result := make([]string, 0, len(moves))
	for _, m := range moves {
		if !p.IsLegal(m) {
			break
		}
		result = append(result, m.ToSAN(p))
		p.makeMove(m)
	}
	return result
}
