package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position. The move clocks may be
// omitted together, in which case they default to 0 and 1. On failure the
// error is a *ParseError naming the rejected field.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 4 && len(parts) != 6 {
		return nil, parseErr("fen", fen, "need 6 fields, got %d", len(parts))
	}

	pos := &Position{}
	pos.clear()

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, parseErr("side", parts[1], "must be w or b")
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if err := parseEnPassant(pos, parts[3]); err != nil {
		return nil, err
	}

	if len(parts) == 6 {
		hmc, err := parseClock(parts[4])
		if err != nil || hmc < 0 {
			return nil, parseErr("halfmove", parts[4], "must be a non-negative integer")
		}
		pos.halfMoveClock = hmc

		fmn, err := parseClock(parts[5])
		if err != nil || fmn < 1 {
			return nil, parseErr("fullmove", parts[5], "must be a positive integer")
		}
		pos.fullMoveNumber = fmn
	}

	if pos.isAttackedKing(pos.sideToMove.Other()) {
		return nil, parseErr("placement", parts[0], "%s king is in check with %s to move",
			pos.sideToMove.Other(), pos.sideToMove)
	}

	return pos, nil
}

// parseClock accepts only plain decimal digits; Atoi alone would take a sign.
func parseClock(field string) (int, error) {
	if field == "" || strings.Trim(field, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(field)
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return parseErr("placement", placement, "need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return parseErr("placement", placement, "too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(c)
			if piece == NoPiece {
				return parseErr("placement", placement, "unknown piece letter %q", c)
			}
			if piece.Type() == Pawn && (rank == 0 || rank == 7) {
				return parseErr("placement", placement, "pawn on rank %d", rank+1)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return parseErr("placement", placement, "rank %d has %d squares", rank+1, file)
		}
	}

	for c := White; c <= Black; c++ {
		if n := pos.pieces[c][King].PopCount(); n != 1 {
			return parseErr("placement", placement, "%s has %d kings", c, n)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.castlingRights = NoCastling
		return nil
	}

	for i := 0; i < len(castling); i++ {
		var right CastlingRights
		switch castling[i] {
		case 'K':
			right = WhiteKingSideCastle
		case 'Q':
			right = WhiteQueenSideCastle
		case 'k':
			right = BlackKingSideCastle
		case 'q':
			right = BlackQueenSideCastle
		default:
			return parseErr("castling", castling, "unexpected %q", castling[i])
		}
		if pos.castlingRights&right != 0 {
			return parseErr("castling", castling, "duplicate %q", castling[i])
		}
		pos.castlingRights |= right
	}

	return nil
}

func parseEnPassant(pos *Position, field string) error {
	if field == "-" {
		pos.enPassant = NoSquare
		return nil
	}
	sq, err := ParseSquare(field)
	if err != nil {
		return parseErr("enpassant", field, "not a square")
	}
	want := 5 // rank 6
	if pos.sideToMove == Black {
		want = 2 // rank 3
	}
	if sq.Rank() != want {
		return parseErr("enpassant", field, "must be on rank %d with %s to move", want+1, pos.sideToMove)
	}
	pushed := NewSquare(sq.File(), want-1)
	if pos.sideToMove == Black {
		pushed = NewSquare(sq.File(), want+1)
	}
	if pos.squares[pushed] != NewPiece(Pawn, pos.sideToMove.Other()) || !pos.IsEmpty(sq) {
		return parseErr("enpassant", field, "no pawn just pushed past it")
	}
	pos.enPassant = sq
	return nil
}

// FEN returns the canonical FEN representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))

	return sb.String()
}
