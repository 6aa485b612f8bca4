package core

import "sort"

var knightOffsets = [8][2]int8{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int8{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var bishopDirs = [4][2]int8{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int8{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var queenDirs = [8][2]int8{
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// promotionKinds is the order in which promotion moves are generated for a
// pawn reaching the last rank.
var promotionKinds = [4]PieceType{Queen, Rook, Bishop, Knight}

// GeneratePseudoMoves returns every pseudo-legal move for the side to move,
// ordered descending by heuristic score. hint, if non-zero, is lifted to the
// front of the order (used to try the principal variation or a transposition
// hint move first).
func GeneratePseudoMoves(b *Board, hint Move) []ScoredMove {
	moves := make([]Move, 0, 48)
	us := b.ActiveColor
	for _, sq := range b.Pieces[us].All() {
		pt, _ := b.Pieces[us].TypeAt(sq)
		switch pt {
		case Pawn:
			genPawnMoves(b, sq, us, &moves)
		case Knight:
			genOffsetMoves(b, sq, us, knightOffsets[:], &moves)
		case Bishop:
			genSlidingMoves(b, sq, us, bishopDirs[:], &moves)
		case Rook:
			genSlidingMoves(b, sq, us, rookDirs[:], &moves)
		case Queen:
			genSlidingMoves(b, sq, us, queenDirs[:], &moves)
		case King:
			genOffsetMoves(b, sq, us, kingOffsets[:], &moves)
			genCastleMoves(b, us, &moves)
		}
	}

	scored := make([]ScoredMove, len(moves))
	for i, m := range moves {
		scored[i] = ScoredMove{Move: m, Score: ScoreMove(b, m, hint)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Move.From != scored[j].Move.From {
			return lessField(scored[i].Move.From, scored[j].Move.From)
		}
		if scored[i].Move.To != scored[j].Move.To {
			return lessField(scored[i].Move.To, scored[j].Move.To)
		}
		return scored[i].Move.Promotion < scored[j].Move.Promotion
	})
	return scored
}

func lessField(a, b ChessField) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// GenerateLegalMoves filters GeneratePseudoMoves by "does not leave the
// mover's own king in check".
func GenerateLegalMoves(b *Board) []ScoredMove {
	return filterLegal(b, GeneratePseudoMoves(b, Move{}))
}

// GenerateLegalMovesHinted is GenerateLegalMoves with hint lifted to the
// front of the order. The search does not call it; negamax orders its moves
// with GenerateLegalMoves.
func GenerateLegalMovesHinted(b *Board, hint Move) []ScoredMove {
	return filterLegal(b, GeneratePseudoMoves(b, hint))
}

// GenerateLegalCaptures returns legal moves whose destination square was
// occupied by an enemy piece, for use in quiescence search.
func GenerateLegalCaptures(b *Board) []ScoredMove {
	legal := GenerateLegalMoves(b)
	captures := make([]ScoredMove, 0, len(legal))
	for _, sm := range legal {
		if b.At(sm.Move.To).Present {
			captures = append(captures, sm)
		}
	}
	return captures
}

func filterLegal(b *Board, pseudo []ScoredMove) []ScoredMove {
	mover := b.ActiveColor
	legal := make([]ScoredMove, 0, len(pseudo))
	for _, sm := range pseudo {
		clone := b.Clone()
		clone.MakeMove(sm.Move)
		if !clone.IsSquareAttackedBy(clone.KingSquare(mover), mover.Opposite()) {
			legal = append(legal, sm)
		}
	}
	return legal
}

func genPawnMoves(b *Board, sq ChessField, us Color, moves *[]Move) {
	forward := int8(1)
	startRank := int8(1)
	promoRank := int8(7)
	if us == Black {
		forward = -1
		startRank = 6
		promoRank = 0
	}

	one := ChessField{Row: sq.Row + forward, Col: sq.Col}
	if one.Valid() && !b.At(one).Present {
		addPawnMove(sq, one, promoRank, moves)
		if sq.Row == startRank {
			two := ChessField{Row: sq.Row + 2*forward, Col: sq.Col}
			if !b.At(two).Present {
				*moves = append(*moves, Move{From: sq, To: two})
			}
		}
	}

	for _, dc := range [2]int8{-1, 1} {
		dest := ChessField{Row: sq.Row + forward, Col: sq.Col + dc}
		if !dest.Valid() {
			continue
		}
		target := b.At(dest)
		if target.Present && target.Color != us {
			addPawnMove(sq, dest, promoRank, moves)
			continue
		}
		if dest == b.EnPassant {
			*moves = append(*moves, Move{From: sq, To: dest})
		}
	}
}

func addPawnMove(from, to ChessField, promoRank int8, moves *[]Move) {
	if to.Row == promoRank {
		for _, pt := range promotionKinds {
			*moves = append(*moves, Move{From: from, To: to, Promotion: pt})
		}
		return
	}
	*moves = append(*moves, Move{From: from, To: to})
}

func genOffsetMoves(b *Board, sq ChessField, us Color, offsets [][2]int8, moves *[]Move) {
	for _, d := range offsets {
		dest := ChessField{Row: sq.Row + d[0], Col: sq.Col + d[1]}
		if !dest.Valid() {
			continue
		}
		target := b.At(dest)
		if target.Present && target.Color == us {
			continue
		}
		*moves = append(*moves, Move{From: sq, To: dest})
	}
}

func genSlidingMoves(b *Board, sq ChessField, us Color, dirs [][2]int8, moves *[]Move) {
	for _, d := range dirs {
		dest := ChessField{Row: sq.Row + d[0], Col: sq.Col + d[1]}
		for dest.Valid() {
			target := b.At(dest)
			if !target.Present {
				*moves = append(*moves, Move{From: sq, To: dest})
				dest = ChessField{Row: dest.Row + d[0], Col: dest.Col + d[1]}
				continue
			}
			if target.Color != us {
				*moves = append(*moves, Move{From: sq, To: dest})
			}
			break
		}
	}
}

func genCastleMoves(b *Board, us Color, moves *[]Move) {
	homeRank := int8(0)
	kingSide, queenSide := WhiteKingSide, WhiteQueenSide
	if us == Black {
		homeRank = 7
		kingSide, queenSide = BlackKingSide, BlackQueenSide
	}
	them := us.Opposite()
	king := ChessField{Row: homeRank, Col: 4}

	if b.CastlingRights.Has(kingSide) {
		crossSq := ChessField{Row: homeRank, Col: 5}
		destSq := ChessField{Row: homeRank, Col: 6}
		if !b.At(crossSq).Present && !b.At(destSq).Present &&
			!b.IsSquareAttackedBy(king, them) &&
			!b.IsSquareAttackedBy(crossSq, them) &&
			!b.IsSquareAttackedBy(destSq, them) {
			*moves = append(*moves, Move{From: king, To: destSq})
		}
	}
	if b.CastlingRights.Has(queenSide) {
		farSq := ChessField{Row: homeRank, Col: 1}
		crossSq := ChessField{Row: homeRank, Col: 3}
		destSq := ChessField{Row: homeRank, Col: 2}
		if !b.At(crossSq).Present && !b.At(destSq).Present && !b.At(farSq).Present &&
			!b.IsSquareAttackedBy(king, them) &&
			!b.IsSquareAttackedBy(crossSq, them) &&
			!b.IsSquareAttackedBy(destSq, them) {
			*moves = append(*moves, Move{From: king, To: destSq})
		}
	}
}

// IsSquareAttackedBy reports whether sq is attacked by any piece of color by.
func (b *Board) IsSquareAttackedBy(sq ChessField, by Color) bool {
	for _, d := range queenDirs {
		dest := ChessField{Row: sq.Row + d[0], Col: sq.Col + d[1]}
		for dest.Valid() {
			p := b.At(dest)
			if !p.Present {
				dest = ChessField{Row: dest.Row + d[0], Col: dest.Col + d[1]}
				continue
			}
			if p.Color == by {
				diagonal := d[0] != 0 && d[1] != 0
				if p.Type == Queen || (diagonal && p.Type == Bishop) || (!diagonal && p.Type == Rook) {
					return true
				}
			}
			break
		}
	}

	for _, d := range knightOffsets {
		dest := ChessField{Row: sq.Row + d[0], Col: sq.Col + d[1]}
		if dest.Valid() {
			p := b.At(dest)
			if p.Present && p.Color == by && p.Type == Knight {
				return true
			}
		}
	}

	pawnDir := int8(-1) // an attacking White pawn sits one rank below sq
	if by == Black {
		pawnDir = 1
	}
	for _, dc := range [2]int8{-1, 1} {
		dest := ChessField{Row: sq.Row + pawnDir, Col: sq.Col + dc}
		if dest.Valid() {
			p := b.At(dest)
			if p.Present && p.Color == by && p.Type == Pawn {
				return true
			}
		}
	}

	for _, d := range kingOffsets {
		dest := ChessField{Row: sq.Row + d[0], Col: sq.Col + d[1]}
		if dest.Valid() {
			p := b.At(dest)
			if p.Present && p.Color == by && p.Type == King {
				return true
			}
		}
	}

	return false
}

// Move-ordering piece values, distinct from the evaluation's material
// values: V(P)=1, V(N)=V(B)=3, V(R)=5, V(Q)=9, V(K)=15.
func mvvLvaValue(pt PieceType) int32 {
	switch pt {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 15
	default:
		return 0
	}
}

const mvvLvaCaptureBase int32 = 10010

// hintScore is the score assigned to a supplied PV/hint move so it sorts
// first regardless of its underlying capture/quiet score.
const hintScore int32 = 1_000_000

// ScoreMove assigns the heuristic ordering score for m on board b. hint, if
// it equals m, overrides the score to hintScore.
func ScoreMove(b *Board, m Move, hint Move) int32 {
	if hint != (Move{}) && m == hint {
		return hintScore
	}

	base := int32(0)
	mover := b.At(m.From)
	isCastle := mover.Present && mover.Type == King && abs8(m.To.Col-m.From.Col) == 2

	switch {
	case isCastle:
		base = 50
	default:
		victim := b.At(m.To)
		isEnPassant := mover.Present && mover.Type == Pawn && m.To == b.EnPassant && !victim.Present
		if victim.Present || isEnPassant {
			victimType := victim.Type
			if isEnPassant {
				victimType = Pawn
			}
			v := mvvLvaValue(victimType)
			a := mvvLvaValue(mover.Type)
			base = mvvLvaCaptureBase + 1000*(v-a) + 10*v - v
		}
	}

	if m.Promotion != NoPieceType {
		base++
	}
	return base
}

func abs8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}
