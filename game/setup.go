package game

import (
	"golang.org/x/exp/rand"
)

// NewState builds a starting position for both players. The caller injects
// the RNG, so equal seeds replay the exact same setup - there is no
// process-wide randomness in the engine.
func NewState(cfg Config, rng *rand.Rand) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := newEmptyState(cfg)
	for _, p := range []Player{Red, Blue} {
		if err := s.placeArmy(p, rng); err != nil {
			return nil, err
		}
	}
	s.refresh()
	return s, nil
}

// placeArmy fills one setup zone: Flag first, then Bombs preferring cells
// next to the Flag, then everything else uniformly. Free cells are drawn
// from a shrinking list, so placement is total and cannot hang even on a
// tight zone (Validate already guaranteed capacity).
func (s *State) placeArmy(p Player, rng *rand.Rand) error {
	lo, hi := s.cfg.ZoneRows(p)
	var free []Position
	for row := lo; row <= hi; row++ {
		for col := 0; col < s.cfg.Size; col++ {
			pos := Position{Row: row, Col: col}
			if !s.board.IsLake(pos) {
				free = append(free, pos)
			}
		}
	}
	if len(free) < s.cfg.PieceTotal() {
		return configErrorf("%s setup zone has %d usable cells for %d pieces", p, len(free), s.cfg.PieceTotal())
	}

	take := func(i int) Position {
		pos := free[i]
		free[i] = free[len(free)-1]
		free = free[:len(free)-1]
		return pos
	}

	flagAt := take(rng.Intn(len(free)))
	s.place(flagAt, Piece{Rank: Flag, Owner: p})

	for i := 0; i < s.cfg.Pieces[Bomb]; i++ {
		if j, ok := adjacentFreeIndex(free, flagAt, rng); ok {
			s.place(take(j), Piece{Rank: Bomb, Owner: p})
			continue
		}
		s.place(take(rng.Intn(len(free))), Piece{Rank: Bomb, Owner: p})
	}

	for rank := Flag; rank <= Bomb; rank++ {
		if rank == Flag || rank == Bomb {
			continue
		}
		for i := 0; i < s.cfg.Pieces[rank]; i++ {
			s.place(take(rng.Intn(len(free))), Piece{Rank: rank, Owner: p})
		}
	}
	return nil
}

// adjacentFreeIndex picks a random free cell orthogonally adjacent to pos,
// if any remain.
func adjacentFreeIndex(free []Position, pos Position, rng *rand.Rand) (int, bool) {
	var candidates []int
	for i, cell := range free {
		if abs(cell.Row-pos.Row)+abs(cell.Col-pos.Col) == 1 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
