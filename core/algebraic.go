package core

import "fmt"

// Algebraic renders m in the four- or five-character UCI move format, e.g.
// "e2e4" or "a7a8q".
func (m Move) Algebraic() string {
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case Queen:
		s += "q"
	case Rook:
		s += "r"
	case Bishop:
		s += "b"
	case Knight:
		s += "n"
	}
	return s
}

// ParseAlgebraic parses a UCI move string ("e2e4", "a7a8q") into a Move.
func ParseAlgebraic(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("parse move %q: expected 4 or 5 characters, got %d", s, len(s))
	}
	from, err := FieldFromCoordinate(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("parse move %q: %w", s, err)
	}
	to, err := FieldFromCoordinate(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("parse move %q: %w", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q', 'Q':
			m.Promotion = Queen
		case 'r', 'R':
			m.Promotion = Rook
		case 'b', 'B':
			m.Promotion = Bishop
		case 'n', 'N':
			m.Promotion = Knight
		default:
			return Move{}, fmt.Errorf("parse move %q: invalid promotion letter %q", s, s[4])
		}
	}
	return m, nil
}
