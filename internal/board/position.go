package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// castle describes one of the four castling moves.
type castle struct {
	right        CastlingRights
	color        Color
	king, kingTo Square
	rook, rookTo Square
}

var castles = [4]castle{
	{right: WhiteKingSideCastle, color: White, king: E1, kingTo: G1, rook: H1, rookTo: F1},
	{right: WhiteQueenSideCastle, color: White, king: E1, kingTo: C1, rook: A1, rookTo: D1},
	{right: BlackKingSideCastle, color: Black, king: E8, kingTo: G8, rook: H8, rookTo: F8},
	{right: BlackQueenSideCastle, color: Black, king: E8, kingTo: C8, rook: A8, rookTo: D8},
}

// castlingRightsLost[sq] is cleared from the rights whenever a move starts or
// ends on sq: a king leaving its home square, a rook leaving its corner, or
// anything landing on a corner rook.
var castlingRightsLost = func() (lost [64]CastlingRights) {
	lost[E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	lost[H1] = WhiteKingSideCastle
	lost[A1] = WhiteQueenSideCastle
	lost[E8] = BlackKingSideCastle | BlackQueenSideCastle
	lost[H8] = BlackKingSideCastle
	lost[A8] = BlackQueenSideCastle
	return lost
}()

// Position is the mutable board state. Piece bitboards are the source of
// truth; occupancy and the per-square lookup are derived and kept in step by
// setPiece, removePiece and movePiece.
//
// A Position has a single writer. Read-only methods may run concurrently with
// each other, but Apply, ApplyMove, Undo and Reset need exclusive access.
type Position struct {
	pieces      [2][6]Bitboard
	occupied    [2]Bitboard
	allOccupied Bitboard
	squares     [64]Piece

	sideToMove     Color
	castlingRights CastlingRights
	enPassant      Square // target square for en passant, NoSquare if none
	halfMoveClock  int    // plies since the last pawn move or capture
	fullMoveNumber int    // starts at 1, incremented after Black moves

	history []Undo
}

// NewPosition creates the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// NewEmptyPosition creates a board with no pieces, White to move.
func NewEmptyPosition() *Position {
	p := &Position{}
	p.clear()
	return p
}

// Reset restores the standard starting position and drops the history.
func (p *Position) Reset() {
	*p = *NewPosition()
}

// Clone returns a deep copy of the position, history included.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]Undo(nil), p.history...)
	return &c
}

func (p *Position) clear() {
	*p = Position{
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
	for i := range p.squares {
		p.squares[i] = NoPiece
	}
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if sq >= NoSquare {
		return NoPiece
	}
	return p.squares[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.allOccupied&SquareBB(sq) == 0
}

// Pieces returns the bitboard of pieces of the given color and type.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.pieces[c][pt]
}

// Occupancy returns every square occupied by the given color.
func (p *Position) Occupancy(c Color) Bitboard {
	return p.occupied[c]
}

// AllOccupancy returns every occupied square.
func (p *Position) AllOccupancy() Bitboard {
	return p.allOccupied
}

// KingSquare returns the square of the given color's king.
func (p *Position) KingSquare(c Color) Square {
	return p.pieces[c][King].LSB()
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// CastlingRights returns the remaining castling rights.
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// EnPassant returns the en passant target square, or NoSquare.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// HalfMoveClock returns the plies since the last pawn move or capture.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// FullMoveNumber returns the full move counter.
func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.isAttackedKing(p.sideToMove)
}

func (p *Position) isAttackedKing(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, c.Other())
}

// History returns a copy of the undo records, oldest first.
func (p *Position) History() []Undo {
	return append([]Undo(nil), p.history...)
}

// Ply returns the number of moves applied since the position was created.
func (p *Position) Ply() int {
	return len(p.history)
}

// setPiece places a piece on an empty square.
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	bb := SquareBB(sq)
	p.pieces[piece.Color()][piece.Type()] |= bb
	p.occupied[piece.Color()] |= bb
	p.allOccupied |= bb
	p.squares[sq] = piece
}

// removePiece removes and returns the piece on sq.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.squares[sq]
	if piece == NoPiece {
		return NoPiece
	}
	bb := SquareBB(sq)
	p.pieces[piece.Color()][piece.Type()] &^= bb
	p.occupied[piece.Color()] &^= bb
	p.allOccupied &^= bb
	p.squares[sq] = NoPiece
	return piece
}

// movePiece moves the piece on from to the empty square to.
func (p *Position) movePiece(from, to Square) {
	piece := p.squares[from]
	if piece == NoPiece {
		return
	}
	moveBB := SquareBB(from) | SquareBB(to)
	p.pieces[piece.Color()][piece.Type()] ^= moveBB
	p.occupied[piece.Color()] ^= moveBB
	p.allOccupied ^= moveBB
	p.squares[from] = NoPiece
	p.squares[to] = piece
}

// Dump returns an 8x8 grid of the placement for debugging: rank 8 first,
// uppercase for white, lowercase for black, '.' for empty squares.
func (p *Position) Dump() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteString(p.PieceAt(NewSquare(file, rank)).String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}

// String returns Dump followed by the non-placement state.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(p.Dump())
	fmt.Fprintf(&sb, "\nSide to move: %s\n", p.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.halfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.fullMoveNumber)
	return sb.String()
}
