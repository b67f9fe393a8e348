package board

// Zobrist keys for repetition detection.
// Uses a PRNG with a fixed seed so keys are stable across runs.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [8]uint64        // one per file
	zobristCastling   [16]uint64       // all 16 castling combinations
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}

	zobristSideToMove = rng.next()
}

// RepetitionKey hashes the parts of the position that decide whether two
// positions are the same for repetition purposes: placement, side to move,
// castling rights and en passant availability. Move clocks are excluded, and
// the en passant file only counts when a legal en passant capture exists.
func (p *Position) RepetitionKey() uint64 {
	var key uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.pieces[c][pt]
			for bb != 0 {
				key ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}

	if p.sideToMove == Black {
		key ^= zobristSideToMove
	}

	key ^= zobristCastling[p.castlingRights]

	if p.hasLegalEnPassant() {
		key ^= zobristEnPassant[p.enPassant.File()]
	}

	return key
}
