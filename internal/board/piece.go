package board

import "strings"

// Color is a side: White or Black.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposing side.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// PieceType is a kind of piece, independent of colour. The order is the
// order in which move generation visits piece types.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeNames = [...]string{"pawn", "knight", "bishop", "rook", "queen", "king", "none"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		pt = NoPieceType
	}
	return pieceTypeNames[pt]
}

// Char returns the lowercase letter used for pt in FEN and promotion suffixes.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return pieceLetters[pt+6]
}

// pieceTypeFromChar accepts only the four promotion letters.
func pieceTypeFromChar(c byte) PieceType {
	switch pt := PieceType(strings.IndexByte("pnbrqk", c)); pt {
	case Knight, Bishop, Rook, Queen:
		return pt
	}
	return NoPieceType
}

// Piece is a coloured piece, encoded as type + 6*colour.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// pieceLetters is indexed by Piece.
const pieceLetters = "PNBRQKpnbrqk"

// NewPiece returns the piece of type pt and colour c, or NoPiece when either
// is out of range.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*6 + Piece(pt)
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter, or "." for NoPiece.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	return pieceLetters[p : p+1]
}

// PieceFromChar parses a FEN piece letter.
func PieceFromChar(c byte) Piece {
	if i := strings.IndexByte(pieceLetters, c); i >= 0 {
		return Piece(i)
	}
	return NoPiece
}
