package game

// Position is a board coordinate. Row 0 is rendered as row A.
type Position struct {
	Row int
	Col int
}

// Board is an N×N grid. Each cell is empty, a lake, or holds one piece.
// Lake cells are fixed at construction and never change for the life of the
// match. Pieces are stored row-major; nil means empty.
type Board struct {
	size  int
	lakes map[Position]struct{}
	cells []*Piece
}

func NewBoard(size int, lakes []Position) *Board {
	b := &Board{
		size:  size,
		lakes: make(map[Position]struct{}, len(lakes)),
		cells: make([]*Piece, size*size),
	}
	for _, p := range lakes {
		b.lakes[p] = struct{}{}
	}
	return b
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

func (b *Board) IsLake(p Position) bool {
	_, ok := b.lakes[p]
	return ok
}

// At returns the piece at p, if any.
func (b *Board) At(p Position) (Piece, bool) {
	pc := b.cells[b.idx(p)]
	if pc == nil {
		return Piece{}, false
	}
	return *pc, true
}

func (b *Board) idx(p Position) int {
	return p.Row*b.size + p.Col
}

func (b *Board) set(p Position, pc Piece) {
	cp := pc
	b.cells[b.idx(p)] = &cp
}

func (b *Board) clear(p Position) {
	b.cells[b.idx(p)] = nil
}

var orthogonal = [4]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func (p Position) add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}
