// Package engine owns a single match: it seeds the setup, validates and
// applies submitted moves, and reports termination. Agents, loggers and
// renderers are external collaborators behind narrow interfaces.
package engine

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/DarshanScripts/stratego-sub000/game"
)

// EventSink receives one event per applied ply or forfeit. It is a
// notification only, never a gate on correctness.
type EventSink interface {
	HandleEvent(game.Outcome)
}

// Engine wraps one match. It is strictly single-threaded: callers submit
// one ply at a time, alternating players. Independent matches need
// independent engines.
type Engine struct {
	seed  uint64
	state *game.State
	sink  EventSink
}

// New sets up a match from a validated config and a seed. Equal seeds
// produce identical setups and therefore deterministic replays.
func New(cfg game.Config, seed uint64, sink EventSink) (*Engine, error) {
	rng := rand.New(rand.NewSource(seed))
	state, err := game.NewState(cfg, rng)
	if err != nil {
		return nil, err
	}
	return &Engine{seed: seed, state: state, sink: sink}, nil
}

func (e *Engine) Seed() uint64 { return e.seed }

func (e *Engine) State() *game.State { return e.state }

// Observation renders the match for one player: fogged board plus the
// current legal moves in bracket notation.
func (e *Engine) Observation(p game.Player) string {
	return e.state.Observation(p)
}

func (e *Engine) LegalMoves(p game.Player) []game.Move {
	return e.state.LegalMoves(p)
}

// ApplyMove parses bracket notation and applies the ply for the given
// player. Parse failures surface as invalid moves with a notation reason;
// the match stays ongoing either way.
func (e *Engine) ApplyMove(p game.Player, text string) (game.Outcome, error) {
	mv, err := game.ParseMove(text, e.state.Config().Size)
	if err != nil {
		return game.Outcome{}, err
	}
	out, err := e.state.Apply(p, mv)
	if err != nil {
		return game.Outcome{}, err
	}
	e.emit(out)
	return out, nil
}

// Forfeit ends the match against a player, per the runner's invalid-move
// policy.
func (e *Engine) Forfeit(p game.Player) error {
	if err := e.state.Forfeit(p); err != nil {
		return err
	}
	e.emit(game.Outcome{
		Player: p,
		Turn:   e.state.Turn(),
		Status: e.state.Status(),
	})
	return nil
}

// IsTerminal reports whether the match ended and with which status. Winner
// carries the winning player for the won/forfeit statuses.
func (e *Engine) IsTerminal() (bool, game.Status) {
	return e.state.Status().Terminal(), e.state.Status()
}

func (e *Engine) Winner() (game.Player, bool) {
	return e.state.Winner()
}

func (e *Engine) emit(out game.Outcome) {
	if e.sink != nil {
		e.sink.HandleEvent(out)
	}
}

// LogSink logs every event with structured fields through the global
// zerolog logger.
type LogSink struct{}

func (LogSink) HandleEvent(out game.Outcome) {
	ev := log.Info().
		Int("turn", out.Turn).
		Stringer("player", out.Player).
		Stringer("status", out.Status)
	if out.Status == game.ForfeitByInvalidMove {
		ev.Msg("forfeit")
		return
	}
	ev = ev.Stringer("move", out.Move).
		Stringer("outcome", out.Kind).
		Stringer("attacker", out.Attacker)
	if out.Battle {
		ev = ev.Stringer("defender", out.Defender)
	}
	ev.Msg("ply")
}
