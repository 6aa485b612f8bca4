package core

// zobristSeed is the process-wide seed for the keyset, fixed so that hashes
// are reproducible across runs and machines.
const zobristSeed uint64 = 42

var (
	pieceKeys    [2][6][64]uint64
	sideKey      uint64
	castleKeys   [4]uint64
	epFileKeys   [8]uint64
)

func init() {
	rng := splitMix64{state: zobristSeed}
	for c := 0; c < 2; c++ {
		for pt := 0; pt < 6; pt++ {
			for sq := 0; sq < 64; sq++ {
				pieceKeys[c][pt][sq] = rng.next()
			}
		}
	}
	sideKey = rng.next()
	for i := range castleKeys {
		castleKeys[i] = rng.next()
	}
	for i := range epFileKeys {
		epFileKeys[i] = rng.next()
	}
}

// splitMix64 is a small deterministic PRNG used only to fill the Zobrist
// keyset at startup; it is not used anywhere else and carries no
// cryptographic expectations.
type splitMix64 struct{ state uint64 }

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// squareIndex maps a ChessField to a 0..63 index, rank-major.
func squareIndex(f ChessField) int {
	return int(f.Row)*8 + int(f.Col)
}

// pieceTypeIndex maps a PieceType to its 0..5 Zobrist slot. Distinct from
// listIndexOf: the Zobrist keyset is ordered Pawn..King, matching the
// public PieceType enumeration rather than the piece list's King-first order.
func pieceTypeIndex(pt PieceType) int {
	return int(pt) - 1
}

// pieceKey returns the XOR contribution of placing or removing p on sq.
func pieceKey(p Piece, sq ChessField) uint64 {
	return pieceKeys[p.Color][pieceTypeIndex(p.Type)][squareIndex(sq)]
}

// castleRightIndex maps a single CastleRight flag to its keyset slot.
func castleRightIndex(r CastleRight) int {
	switch r {
	case WhiteKingSide:
		return 0
	case WhiteQueenSide:
		return 1
	case BlackKingSide:
		return 2
	case BlackQueenSide:
		return 3
	default:
		panic("core: castleRightIndex of unknown right")
	}
}

// castlingKey XORs in the keys for every currently-held right.
func castlingKey(c CastlingRights) uint64 {
	var h uint64
	for _, r := range allCastleRights {
		if c.Has(r) {
			h ^= castleKeys[castleRightIndex(r)]
		}
	}
	return h
}

// enPassantKey returns the file-indexed key for ep, or 0 if ep is absent.
func enPassantKey(ep ChessField) uint64 {
	if !ep.Valid() {
		return 0
	}
	return epFileKeys[ep.Col]
}

// ComputeHash recomputes the Zobrist hash of b from scratch. It is the
// reference implementation, used by ParseFEN and by the tests; make-move
// must keep Board.Hash incrementally equal to this value at every boundary.
func ComputeHash(b *Board) uint64 {
	var h uint64
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Squares[row][col]
			if p.Present {
				h ^= pieceKey(p, ChessField{Row: int8(row), Col: int8(col)})
			}
		}
	}
	if b.ActiveColor == Black {
		h ^= sideKey
	}
	h ^= castlingKey(b.CastlingRights)
	h ^= enPassantKey(b.EnPassant)
	return h
}
