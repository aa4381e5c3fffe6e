package game

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Move is a (source, destination) pair.
type Move struct {
	From Position
	To   Position
}

// String renders the move in bracket notation, e.g. "[A0 B0]".
func (m Move) String() string {
	return fmt.Sprintf("[%s %s]", m.From, m.To)
}

// String renders a position as row letter plus zero-indexed column, "A0".
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'A'+p.Row, p.Col)
}

var movePattern = regexp.MustCompile(`^\[([A-Z])([0-9]+) ([A-Z])([0-9]+)\]$`)

// ParseMove reads bracket notation against a board of the given size. Row
// letters span only as many letters as the board has rows, so "[K0 K1]" is
// malformed on any supported board.
func ParseMove(text string, size int) (Move, error) {
	groups := movePattern.FindStringSubmatch(strings.TrimSpace(text))
	if groups == nil {
		return Move{}, invalidMove(Move{}, ReasonBadNotation)
	}
	from, err := parseSquare(groups[1], groups[2], size)
	if err != nil {
		return Move{}, err
	}
	to, err := parseSquare(groups[3], groups[4], size)
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

func parseSquare(rowLetter, colDigits string, size int) (Position, error) {
	row := int(rowLetter[0] - 'A')
	col, err := strconv.Atoi(colDigits)
	if err != nil || row >= size || col >= size {
		return Position{}, invalidMove(Move{}, ReasonBadNotation)
	}
	return Position{Row: row, Col: col}, nil
}
