package core

// MakeMove applies m in place, following the twelve-step procedure of the
// board's make-move contract. Callers must supply only legal moves from the
// generator; a move whose From square is empty is undefined behavior and is
// not checked for here.
func (b *Board) MakeMove(m Move) {
	prevCastling := b.CastlingRights
	prevEP := b.EnPassant

	mover := b.At(m.From)

	isEnPassant := mover.Type == Pawn && m.To == b.EnPassant && !b.At(m.To).Present
	if isEnPassant {
		capturedSq := ChessField{Row: m.From.Row, Col: m.To.Col}
		b.remove(capturedSq)
	}

	lastCapture := NoField
	if b.At(m.To).Present {
		b.remove(m.To)
		lastCapture = m.To
	}

	b.relocate(m.From, m.To)

	b.EnPassant = NoField

	if mover.Type == King {
		homeRank := int8(0)
		if mover.Color == Black {
			homeRank = 7
		}
		if m.From.Row == homeRank && m.From.Col == 4 {
			switch m.To.Col {
			case 6:
				b.relocate(ChessField{Row: homeRank, Col: 7}, ChessField{Row: homeRank, Col: 5})
			case 2:
				b.relocate(ChessField{Row: homeRank, Col: 0}, ChessField{Row: homeRank, Col: 3})
			}
		}
	}

	clearCastlingForSquare(b, m.From)
	clearCastlingForSquare(b, m.To)

	if mover.Type == Pawn || lastCapture.Valid() || isEnPassant {
		b.HalfMoveClock = 0
	} else {
		b.HalfMoveClock++
	}

	if mover.Type == Pawn {
		dr := m.To.Row - m.From.Row
		if dr == 2 || dr == -2 {
			b.EnPassant = ChessField{Row: (m.From.Row + m.To.Row) / 2, Col: m.From.Col}
		}
	}

	if m.Promotion != NoPieceType {
		b.remove(m.To)
		b.set(m.To, Piece{Present: true, Color: mover.Color, Type: m.Promotion})
	}

	b.ActiveColor = b.ActiveColor.Opposite()
	if b.ActiveColor == White {
		b.FullMoveNumber++
	}

	b.Hash ^= sideKey
	b.Hash ^= castlingKey(prevCastling)
	b.Hash ^= castlingKey(b.CastlingRights)
	b.Hash ^= enPassantKey(prevEP)
	b.Hash ^= enPassantKey(b.EnPassant)
}

// clearCastlingForSquare clears the castling right tied to sq, whether sq
// was vacated or captured onto; keyed on the square alone, not on which
// piece occupied it.
func clearCastlingForSquare(b *Board, sq ChessField) {
	switch sq {
	case (ChessField{Row: 0, Col: 0}):
		b.CastlingRights.Clear(WhiteQueenSide)
	case (ChessField{Row: 0, Col: 7}):
		b.CastlingRights.Clear(WhiteKingSide)
	case (ChessField{Row: 7, Col: 0}):
		b.CastlingRights.Clear(BlackQueenSide)
	case (ChessField{Row: 7, Col: 7}):
		b.CastlingRights.Clear(BlackKingSide)
	case (ChessField{Row: 0, Col: 4}):
		b.CastlingRights.Clear(WhiteKingSide)
		b.CastlingRights.Clear(WhiteQueenSide)
	case (ChessField{Row: 7, Col: 4}):
		b.CastlingRights.Clear(BlackKingSide)
		b.CastlingRights.Clear(BlackQueenSide)
	}
}
