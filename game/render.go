package game

import (
	"fmt"
	"strings"
)

// Render draws the board as seen by one player: own pieces show their
// two-letter abbreviation, enemy pieces show "?" under fog of war, "." is
// empty and "~" is a lake. It is a pure projection of (board, viewer); the
// authoritative board stays fully known internally.
func (s *State) Render(viewer Player) string {
	return s.render(viewer, s.cfg.FullVisibility)
}

// Reveal draws the board with all pieces visible, for debug output and
// spectator rendering.
func (s *State) Reveal() string {
	return s.render(Red, true)
}

func (s *State) render(viewer Player, reveal bool) string {
	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < s.cfg.Size; col++ {
		fmt.Fprintf(&sb, " %-2d", col)
	}
	sb.WriteByte('\n')
	for row := 0; row < s.cfg.Size; row++ {
		fmt.Fprintf(&sb, "%c ", 'A'+row)
		for col := 0; col < s.cfg.Size; col++ {
			fmt.Fprintf(&sb, " %-2s", s.cellGlyph(Position{Row: row, Col: col}, viewer, reveal))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (s *State) cellGlyph(pos Position, viewer Player, reveal bool) string {
	if s.board.IsLake(pos) {
		return "~"
	}
	pc, ok := s.board.At(pos)
	if !ok {
		return "."
	}
	if pc.Owner == viewer || reveal {
		return pc.Rank.Abbrev()
	}
	return "?"
}

// Observation is the text handed to an agent: whose turn it is, the board
// from that player's point of view and the legal moves in bracket notation.
func (s *State) Observation(viewer Player) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Player: %s\nTurn: %d\n", viewer, s.turn)
	sb.WriteString(s.Render(viewer))
	moves := s.LegalMoves(viewer)
	if len(moves) == 0 {
		sb.WriteString("Legal moves: (none)\n")
		return sb.String()
	}
	sb.WriteString("Legal moves:")
	for _, mv := range moves {
		sb.WriteByte(' ')
		sb.WriteString(mv.String())
	}
	sb.WriteByte('\n')
	return sb.String()
}
