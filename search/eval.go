// Package search implements the negamax/alpha-beta/quiescence search and
// the static evaluation function that drives it.
package search

import "zugzwang/core"

// Material values, in 1/10 centipawn units. King material is summed for
// both sides and cancels (each side always carries exactly one); it shares
// its value with the Win terminal constant.
const (
	PawnValue   int32 = 1000
	KnightValue int32 = 3000
	BishopValue int32 = 3000
	RookValue   int32 = 5000
	QueenValue  int32 = 9000
	KingValue   int32 = 10_000_000
)

// Terminal score constants. MinEvaluation is one above the true int32
// minimum so that negating it does not overflow.
const (
	Win            int32 = 10_000_000
	Loss           int32 = -10_000_000
	Draw           int32 = 0
	MinEvaluation  int32 = -(1 << 31) + 1
	MaxEvaluation  int32 = (1 << 31) - 1
)

// pieceSquareTable is an 8x8 grid of bonuses indexed [rank][file] from the
// owning side's own perspective (rank 7 = that side's home rank, rank 0 =
// the far rank it promotes on).
type pieceSquareTable [8][8]int32

var pawnPST = pieceSquareTable{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightPST = pieceSquareTable{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var bishopPST = pieceSquareTable{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
}

var kingPST = pieceSquareTable{
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{20, 30, 10, 0, 0, 10, 30, 20},
}

func materialValue(pt core.PieceType) int32 {
	switch pt {
	case core.Pawn:
		return PawnValue
	case core.Knight:
		return KnightValue
	case core.Bishop:
		return BishopValue
	case core.Rook:
		return RookValue
	case core.Queen:
		return QueenValue
	case core.King:
		return KingValue
	default:
		return 0
	}
}

// pstValue returns the piece-square bonus for pt belonging to color on sq,
// indexed by the mover's color-relative rank (White: 7-row, Black: row) and
// multiplied by scale (EngineConfig.PieceSquareScale; 1 leaves it unscaled).
func pstValue(pt core.PieceType, color core.Color, sq core.ChessField, scale int32) int32 {
	var table *pieceSquareTable
	switch pt {
	case core.Pawn:
		table = &pawnPST
	case core.Knight:
		table = &knightPST
	case core.Bishop:
		table = &bishopPST
	case core.King:
		table = &kingPST
	default:
		return 0
	}
	rank := sq.Row
	if color == core.White {
		rank = 7 - sq.Row
	}
	return scale * table[rank][sq.Col]
}

// pstPieces lists the piece types that carry a piece-square bonus; Rook and
// Queen are material-only, so they're summed by Count alone below instead
// of walking their individual squares.
var pstPieces = [4]core.PieceType{core.Pawn, core.Knight, core.Bishop, core.King}

// Evaluate returns the static evaluation of b from White's perspective:
// positive favors White, negative favors Black. pstScale multiplies every
// piece-square bonus (see EngineConfig.PieceSquareScale).
func Evaluate(b *core.Board, pstScale int32) int32 {
	var score int32
	for color := core.White; color <= core.Black; color++ {
		sign := int32(1)
		if color == core.Black {
			sign = -1
		}
		list := &b.Pieces[color]
		for _, pt := range pstPieces {
			for _, sq := range list.Positions(pt) {
				score += sign * (materialValue(pt) + pstValue(pt, color, sq, pstScale))
			}
		}
		score += sign * int32(list.Count(core.Rook)) * RookValue
		score += sign * int32(list.Count(core.Queen)) * QueenValue
	}
	return score
}

// evaluateSigned returns Evaluate from the perspective of the side to move:
// positive always favors the mover.
func evaluateSigned(b *core.Board, pstScale int32) int32 {
	v := Evaluate(b, pstScale)
	if b.ActiveColor == core.Black {
		return -v
	}
	return v
}
