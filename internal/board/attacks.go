package board

// direction indexes the ray tables.
type direction uint8

const (
	north direction = iota
	east
	northEast
	northWest
	south
	west
	southEast
	southWest
)

// Pre-computed attack tables. Filled once by init and never written again, so
// they are shared by every Position without locking.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]

	// rays[dir][sq] holds every square from sq to the board edge in dir,
	// excluding sq itself.
	rays [8][64]Bitboard

	betweenBB [64][64]Bitboard // squares strictly between two aligned squares
)

var directionSteps = [8][2]int{
	north:     {0, 1},
	east:      {1, 0},
	northEast: {1, 1},
	northWest: {-1, 1},
	south:     {0, -1},
	west:      {-1, 0},
	southEast: {1, -1},
	southWest: {-1, -1},
}

var (
	bishopDirections = [4]direction{northEast, northWest, southEast, southWest}
	rookDirections   = [4]direction{north, east, south, west}
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initRays()
	initBetweenBB()
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := Empty
		attacks |= (bb << 17) & NotFileA
		attacks |= (bb << 15) & NotFileH
		attacks |= (bb >> 17) & NotFileH
		attacks |= (bb >> 15) & NotFileA
		attacks |= (bb << 10) & NotFileAB
		attacks |= (bb << 6) & NotFileGH
		attacks |= (bb >> 10) & NotFileGH
		attacks |= (bb >> 6) & NotFileAB

		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

func initRays() {
	for dir, step := range directionSteps {
		for sq := A1; sq <= H8; sq++ {
			var ray Bitboard
			f, r := sq.File()+step[0], sq.Rank()+step[1]
			for onBoard(f, r) {
				ray |= SquareBB(NewSquare(f, r))
				f += step[0]
				r += step[1]
			}
			rays[dir][sq] = ray
		}
	}
}

func initBetweenBB() {
	for sq1 := A1; sq1 <= H8; sq1++ {
		for sq2 := A1; sq2 <= H8; sq2++ {
			if sq1 == sq2 {
				continue
			}

			f1, r1 := sq1.File(), sq1.Rank()
			f2, r2 := sq2.File(), sq2.Rank()
			df, dr := sign(f2-f1), sign(r2-r1)

			// not on a shared rank, file or diagonal
			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue
			}

			var between Bitboard
			f, r := f1+df, r1+dr
			for f != f2 || r != r2 {
				between |= SquareBB(NewSquare(f, r))
				f += df
				r += dr
			}
			betweenBB[sq1][sq2] = between
		}
	}
}

func onBoard(file, rank int) bool {
	return file >= 0 && file <= 7 && rank >= 0 && rank <= 7
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// rayAttacks walks dir from sq and stops at, including, the first occupied
// square. Positive directions find that blocker with the lowest set bit,
// negative ones with the highest.
func rayAttacks(dir direction, sq Square, occupied Bitboard) Bitboard {
	ray := rays[dir][sq]
	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}
	var first Square
	if dir < south {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return ray &^ rays[dir][first]
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq captures on.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard
	for _, dir := range bishopDirections {
		attacks |= rayAttacks(dir, sq, occupied)
	}
	return attacks
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard
	for _, dir := range rookDirections {
		attacks |= rayAttacks(dir, sq, occupied)
	}
	return attacks
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// Between returns the squares strictly between two squares, or Empty if they
// do not share a rank, file or diagonal.
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// attackersByColor returns the pieces of color c in pieces that attack sq.
func attackersByColor(pieces *[2][6]Bitboard, sq Square, c Color, occupied Bitboard) Bitboard {
	enemy := c.Other()
	return (pawnAttacks[enemy][sq] & pieces[c][Pawn]) |
		(knightAttacks[sq] & pieces[c][Knight]) |
		(kingAttacks[sq] & pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (pieces[c][Bishop] | pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (pieces[c][Rook] | pieces[c][Queen]))
}

// AttackersByColor returns a bitboard of pieces of the given color attacking a square.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	return attackersByColor(&p.pieces, sq, c, occupied)
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.allOccupied) != 0
}
