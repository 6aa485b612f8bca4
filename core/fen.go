package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFEN parses a standard six-field FEN string into a new Board,
// wrapping any malformed-input error with context about which field failed.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("parse fen %q: expected 6 fields, got %d", fen, len(fields))
	}

	b := &Board{EnPassant: NoField}

	if err := parsePlacement(b, fields[0]); err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}

	switch fields[1] {
	case "w":
		b.ActiveColor = White
	case "b":
		b.ActiveColor = Black
	default:
		return nil, fmt.Errorf("parse fen %q: invalid active color %q", fen, fields[1])
	}

	rights, err := parseCastling(fields[2])
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	b.CastlingRights = rights

	ep, err := parseEnPassant(fields[3])
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	b.EnPassant = ep

	half, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: invalid halfmove clock %q: %w", fen, fields[4], err)
	}
	b.HalfMoveClock = half

	full, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: invalid fullmove number %q: %w", fen, fields[5], err)
	}
	b.FullMoveNumber = full

	b.Hash = ComputeHash(b)
	return b, nil
}

func parsePlacement(b *Board, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("invalid placement %q: expected 8 ranks, got %d", placement, len(rows))
	}
	for i, rowStr := range rows {
		row := int8(7 - i) // rows are listed rank 8 (index 0) down to rank 1
		col := int8(0)
		for _, ch := range rowStr {
			switch {
			case ch >= '1' && ch <= '8':
				col += int8(ch - '0')
			default:
				p, err := pieceFromLetter(byte(ch))
				if err != nil {
					return fmt.Errorf("invalid placement %q: %w", placement, err)
				}
				if col > 7 {
					return fmt.Errorf("invalid placement %q: rank %d overflows columns", placement, 8-i)
				}
				b.Squares[row][col] = p
				b.Pieces[p.Color].Add(p.Type, ChessField{Row: row, Col: col})
				col++
			}
		}
		if col != 8 {
			return fmt.Errorf("invalid placement %q: rank %d has %d columns, expected 8", placement, 8-i, col)
		}
	}
	return nil
}

func pieceFromLetter(ch byte) (Piece, error) {
	color := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		color = Black
	} else if ch >= 'A' && ch <= 'Z' {
		lower = ch - 'A' + 'a'
	} else {
		return Piece{}, fmt.Errorf("invalid piece letter %q", string(ch))
	}
	var pt PieceType
	switch lower {
	case 'p':
		pt = Pawn
	case 'n':
		pt = Knight
	case 'b':
		pt = Bishop
	case 'r':
		pt = Rook
	case 'q':
		pt = Queen
	case 'k':
		pt = King
	default:
		return Piece{}, fmt.Errorf("invalid piece letter %q", string(ch))
	}
	return Piece{Present: true, Color: color, Type: pt}, nil
}

func pieceLetter(p Piece) byte {
	var ch byte
	switch p.Type {
	case Pawn:
		ch = 'p'
	case Knight:
		ch = 'n'
	case Bishop:
		ch = 'b'
	case Rook:
		ch = 'r'
	case Queen:
		ch = 'q'
	case King:
		ch = 'k'
	}
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func parseCastling(s string) (CastlingRights, error) {
	var rights CastlingRights
	if s == "-" {
		return rights, nil
	}
	for _, ch := range s {
		switch ch {
		case 'K':
			rights.Set(WhiteKingSide)
		case 'Q':
			rights.Set(WhiteQueenSide)
		case 'k':
			rights.Set(BlackKingSide)
		case 'q':
			rights.Set(BlackQueenSide)
		default:
			return rights, fmt.Errorf("invalid castling field %q", s)
		}
	}
	return rights, nil
}

func parseEnPassant(s string) (ChessField, error) {
	if s == "-" {
		return NoField, nil
	}
	f, err := FieldFromCoordinate(s)
	if err != nil {
		return NoField, fmt.Errorf("invalid en-passant field %q: %w", s, err)
	}
	return f, nil
}

// FEN emits the Board's current state as a standard six-field FEN string.
func (b *Board) FEN() string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		row := int8(7 - i)
		empty := 0
		for col := int8(0); col < 8; col++ {
			p := b.Squares[row][col]
			if !p.Present {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteByte(pieceLetter(p))
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if i != 7 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(b.ActiveColor.String())
	sb.WriteByte(' ')
	sb.WriteString(castlingString(b.CastlingRights))
	sb.WriteByte(' ')
	if b.EnPassant.Valid() {
		sb.WriteString(b.EnPassant.String())
	} else {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, " %d %d", b.HalfMoveClock, b.FullMoveNumber)
	return sb.String()
}
