package game

import (
	"sort"
)

// Status is the match state machine. Everything except Ongoing is terminal.
type Status int

const (
	Ongoing Status = iota
	WonByFlag
	WonByElimination
	DrawByStalemate
	DrawByTurnLimit
	ForfeitByInvalidMove
)

var statusNames = [...]string{
	Ongoing:              "ongoing",
	WonByFlag:            "won-by-flag-capture",
	WonByElimination:     "won-by-elimination",
	DrawByStalemate:      "draw-by-stalemate",
	DrawByTurnLimit:      "draw-by-turn-limit",
	ForfeitByInvalidMove: "forfeit-by-invalid-move",
}

func (s Status) String() string {
	if s < Ongoing || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

func (s Status) Terminal() bool {
	return s != Ongoing
}

// OutcomeKind classifies what a successfully applied move did.
type OutcomeKind int

const (
	OutcomeMove OutcomeKind = iota
	OutcomeBothLost
	OutcomeAttackerWon
	OutcomeDefenderWon
	OutcomeDefused
	OutcomeFlagCaptured
)

var outcomeNames = [...]string{
	OutcomeMove:         "move",
	OutcomeBothLost:     "draw",
	OutcomeAttackerWon:  "attacker-won",
	OutcomeDefenderWon:  "defender-won",
	OutcomeDefused:      "defuse",
	OutcomeFlagCaptured: "flag-capture",
}

func (k OutcomeKind) String() string {
	if k < OutcomeMove || int(k) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[k]
}

// Outcome describes one applied ply for loggers and callers. Defender is
// only meaningful when Battle is true.
type Outcome struct {
	Player   Player
	Move     Move
	Kind     OutcomeKind
	Attacker Rank
	Defender Rank
	Battle   bool
	Turn     int
	Status   Status
}

// State is the authoritative match state: the board plus per-player piece
// indices, turn bookkeeping and the termination status. The board is always
// fully known internally; fog of war is a rendering projection only.
//
// One match = one State = single writer. Parallel matches each get their own.
type State struct {
	cfg   Config
	board *Board
	index [2]map[Position]struct{}

	current    Player
	turn       int
	moveCounts [2]int
	lastMove   [2]*Move
	repetition [2]int

	status Status
	winner Player
}

func newEmptyState(cfg Config) *State {
	s := &State{
		cfg:     cfg,
		board:   NewBoard(cfg.Size, cfg.Lakes),
		current: Red,
	}
	s.index[Red] = make(map[Position]struct{})
	s.index[Blue] = make(map[Position]struct{})
	return s
}

func (s *State) Config() Config  { return s.cfg }
func (s *State) Board() *Board   { return s.board }
func (s *State) Current() Player { return s.current }
func (s *State) Turn() int       { return s.turn }
func (s *State) Status() Status  { return s.status }

// Winner reports the winning player for the won/forfeit statuses.
func (s *State) Winner() (Player, bool) {
	switch s.status {
	case WonByFlag, WonByElimination, ForfeitByInvalidMove:
		return s.winner, true
	}
	return Red, false
}

// MovesAvailable is the cached legal-move count, refreshed after every ply.
func (s *State) MovesAvailable(p Player) int {
	return s.moveCounts[p]
}

// Positions returns the player's piece coordinates in row-major order.
func (s *State) Positions(p Player) []Position {
	out := make([]Position, 0, len(s.index[p]))
	for pos := range s.index[p] {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func (s *State) PieceCount(p Player) int {
	return len(s.index[p])
}

// place puts a piece on an empty non-lake cell and indexes it.
func (s *State) place(pos Position, pc Piece) {
	s.board.set(pos, pc)
	s.index[pc.Owner][pos] = struct{}{}
}

func (s *State) remove(pos Position) {
	if pc, ok := s.board.At(pos); ok {
		delete(s.index[pc.Owner], pos)
		s.board.clear(pos)
	}
}

func (s *State) relocate(from, to Position) {
	pc, ok := s.board.At(from)
	if !ok {
		return
	}
	s.board.clear(from)
	delete(s.index[pc.Owner], from)
	s.board.set(to, pc)
	s.index[pc.Owner][to] = struct{}{}
}

// LegalMoves enumerates every move the player may currently make. It is a
// pure function of the current state; Apply recomputes the cached counts for
// both players after every ply.
func (s *State) LegalMoves(p Player) []Move {
	var moves []Move
	for _, from := range s.Positions(p) {
		pc, _ := s.board.At(from)
		if !pc.Rank.Movable() {
			continue
		}
		if pc.Rank == Scout {
			moves = s.scoutMoves(p, from, moves)
			continue
		}
		for _, d := range orthogonal {
			to := from.add(d)
			if !s.board.InBounds(to) || s.board.IsLake(to) {
				continue
			}
			if occ, ok := s.board.At(to); ok && occ.Owner == p {
				continue
			}
			if s.violatesRepetition(p, Move{From: from, To: to}) {
				continue
			}
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// scoutMoves slides in each direction through empty non-lake cells. The
// slide stops short of lakes and own pieces, and includes an enemy cell as a
// terminating attack.
func (s *State) scoutMoves(p Player, from Position, moves []Move) []Move {
	for _, d := range orthogonal {
		for to := from.add(d); s.board.InBounds(to); to = to.add(d) {
			if s.board.IsLake(to) {
				break
			}
			occ, occupied := s.board.At(to)
			if occupied && occ.Owner == p {
				break
			}
			if !s.violatesRepetition(p, Move{From: from, To: to}) {
				moves = append(moves, Move{From: from, To: to})
			}
			if occupied {
				break
			}
		}
	}
	return moves
}

func (s *State) violatesRepetition(p Player, mv Move) bool {
	if s.cfg.RepetitionLimit == 0 {
		return false
	}
	last := s.lastMove[p]
	if last == nil || mv.From != last.To || mv.To != last.From {
		return false
	}
	return s.repetition[p] >= s.cfg.RepetitionLimit-1
}

// validate checks a proposed move in rule order and fails fast on the first
// violation.
func (s *State) validate(p Player, mv Move) *InvalidMoveError {
	if !s.board.InBounds(mv.From) || !s.board.InBounds(mv.To) {
		return invalidMove(mv, ReasonOutOfBounds)
	}
	pc, ok := s.board.At(mv.From)
	if !ok {
		return invalidMove(mv, ReasonEmptySource)
	}
	if pc.Owner != p {
		return invalidMove(mv, ReasonNotYourPiece)
	}
	if !pc.Rank.Movable() {
		return invalidMove(mv, ReasonImmovable)
	}
	if err := s.validateShape(pc, mv); err != nil {
		return err
	}
	if s.board.IsLake(mv.To) {
		return invalidMove(mv, ReasonLakeDestination)
	}
	if occ, occupied := s.board.At(mv.To); occupied && occ.Owner == p {
		return invalidMove(mv, ReasonOwnPieceDestination)
	}
	if s.violatesRepetition(p, mv) {
		return invalidMove(mv, ReasonRepetition)
	}
	return nil
}

func (s *State) validateShape(pc Piece, mv Move) *InvalidMoveError {
	dr, dc := mv.To.Row-mv.From.Row, mv.To.Col-mv.From.Col
	if dr == 0 && dc == 0 {
		return invalidMove(mv, ReasonBadShape)
	}
	if pc.Rank != Scout {
		if abs(dr)+abs(dc) != 1 {
			return invalidMove(mv, ReasonBadShape)
		}
		return nil
	}
	if dr != 0 && dc != 0 {
		return invalidMove(mv, ReasonBadShape)
	}
	step := Position{Row: sign(dr), Col: sign(dc)}
	for cur := mv.From.add(step); cur != mv.To; cur = cur.add(step) {
		if s.board.IsLake(cur) {
			return invalidMove(mv, ReasonBlockedPath)
		}
		if _, occupied := s.board.At(cur); occupied {
			return invalidMove(mv, ReasonBlockedPath)
		}
	}
	return nil
}

// Apply validates and executes one ply for the given player, resolving any
// battle at the destination. On rejection the state is untouched and the
// match stays Ongoing.
func (s *State) Apply(p Player, mv Move) (Outcome, error) {
	if s.status.Terminal() {
		return Outcome{}, ErrTerminalState
	}
	if p != s.current {
		return Outcome{}, invalidMove(mv, ReasonNotYourTurn)
	}
	if err := s.validate(p, mv); err != nil {
		return Outcome{}, err
	}

	attacker, _ := s.board.At(mv.From)
	defender, battle := s.board.At(mv.To)

	out := Outcome{
		Player:   p,
		Move:     mv,
		Attacker: attacker.Rank,
		Battle:   battle,
	}
	if battle {
		out.Defender = defender.Rank
		out.Kind = s.resolveBattle(mv, attacker, defender)
	} else {
		out.Kind = OutcomeMove
		s.relocate(mv.From, mv.To)
	}

	// Two-squares bookkeeping: battles and non-reversing moves reset.
	if battle {
		s.repetition[p] = 0
	} else if last := s.lastMove[p]; last != nil && mv.From == last.To && mv.To == last.From {
		s.repetition[p]++
	} else {
		s.repetition[p] = 0
	}
	moved := mv
	s.lastMove[p] = &moved

	s.turn++
	out.Turn = s.turn

	if out.Kind == OutcomeFlagCaptured {
		// Flag capture terminates inline, bypassing the generic checks.
		s.status = WonByFlag
		s.winner = p
		out.Status = s.status
		return out, nil
	}

	s.current = p.Opponent()
	s.refresh()
	out.Status = s.status
	return out, nil
}

// resolveBattle mutates the board for an attack on an occupied cell and
// reports what happened. The rules are mutually exclusive by construction
// and checked in priority order.
func (s *State) resolveBattle(mv Move, attacker, defender Piece) OutcomeKind {
	switch {
	case attacker.Rank.Strength() == defender.Rank.Strength():
		s.remove(mv.From)
		s.remove(mv.To)
		return OutcomeBothLost
	case defender.Rank == Bomb && attacker.Rank == Miner:
		s.remove(mv.To)
		s.relocate(mv.From, mv.To)
		return OutcomeDefused
	case defender.Rank == Bomb:
		// The bomb survives ordinary combat; only a Miner removes it.
		s.remove(mv.From)
		return OutcomeDefenderWon
	case defender.Rank == Flag:
		s.remove(mv.To)
		s.relocate(mv.From, mv.To)
		return OutcomeFlagCaptured
	case attacker.Rank == Spy && defender.Rank == Marshal:
		// Spy first strike. Marshal attacking Spy falls through to the
		// strength comparison and wins normally.
		s.remove(mv.To)
		s.relocate(mv.From, mv.To)
		return OutcomeAttackerWon
	case attacker.Rank.Strength() > defender.Rank.Strength():
		s.remove(mv.To)
		s.relocate(mv.From, mv.To)
		return OutcomeAttackerWon
	default:
		s.remove(mv.From)
		return OutcomeDefenderWon
	}
}

// Forfeit ends the match against a player who kept submitting invalid
// moves. The forfeiture policy itself (how many tries) belongs to the match
// runner, not the rules.
func (s *State) Forfeit(p Player) error {
	if s.status.Terminal() {
		return ErrTerminalState
	}
	s.status = ForfeitByInvalidMove
	s.winner = p.Opponent()
	return nil
}

func (s *State) hasMovablePiece(p Player) bool {
	for pos := range s.index[p] {
		if pc, ok := s.board.At(pos); ok && pc.Rank.Movable() {
			return true
		}
	}
	return false
}

// refresh recomputes the per-player legal-move caches and runs the
// termination checks. It runs at setup and after every ply.
func (s *State) refresh() {
	s.moveCounts[Red] = len(s.LegalMoves(Red))
	s.moveCounts[Blue] = len(s.LegalMoves(Blue))
	s.updateTermination()
}

func (s *State) updateTermination() {
	if s.status.Terminal() {
		return
	}

	redMovable := s.hasMovablePiece(Red)
	blueMovable := s.hasMovablePiece(Blue)
	switch {
	case !redMovable && !blueMovable:
		s.status = DrawByStalemate
		return
	case !redMovable:
		s.status = WonByElimination
		s.winner = Blue
		return
	case !blueMovable:
		s.status = WonByElimination
		s.winner = Red
		return
	}

	if s.turn > s.cfg.TurnLimit {
		s.status = DrawByTurnLimit
		return
	}

	// The side to move is frozen even though it still has movable pieces:
	// the opponent wins unless it is equally stuck.
	if s.moveCounts[s.current] == 0 {
		if s.hasMovablePiece(s.current.Opponent()) {
			s.status = WonByElimination
			s.winner = s.current.Opponent()
		} else {
			s.status = DrawByStalemate
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
