// Package gamemaster runs a full match between two agents on one engine.
package gamemaster

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DarshanScripts/stratego-sub000/agent"
	"github.com/DarshanScripts/stratego-sub000/engine"
	"github.com/DarshanScripts/stratego-sub000/experiments/metrics"
	"github.com/DarshanScripts/stratego-sub000/game"
)

// Renderer receives a spectator snapshot after every applied ply.
type Renderer interface {
	Frame(board string)
}

// Match wires two agents to one engine. One match, one goroutine: parallel
// benchmarking runs independent Match values.
type Match struct {
	ID       int
	Engine   *engine.Engine
	Agents   [2]agent.Agent
	Renderer Renderer
}

func NewMatch(id int, e *engine.Engine, red, blue agent.Agent) *Match {
	return &Match{
		ID:     id,
		Engine: e,
		Agents: [2]agent.Agent{game.Red: red, game.Blue: blue},
	}
}

// Run plays until the engine reports a terminal status. A rejected
// submission is logged and re-prompted; after MaxInvalidTries rejections in
// a row the offender forfeits.
func (m *Match) Run() (metrics.GameRecord, []metrics.MoveRecord) {
	cfg := m.Engine.State().Config()
	start := time.Now()
	var moves []metrics.MoveRecord

	for {
		done, _ := m.Engine.IsTerminal()
		if done {
			break
		}
		player := m.Engine.State().Current()
		rejected := 0
		for {
			moveStart := time.Now()
			text, err := m.Agents[player].FindMove(m.Engine.Observation(player))
			if err == nil {
				var out game.Outcome
				out, err = m.Engine.ApplyMove(player, text)
				if err == nil {
					moves = append(moves, metrics.MoveRecord{
						Game:     m.ID,
						Turn:     out.Turn,
						Player:   player.String(),
						Move:     out.Move.String(),
						Outcome:  out.Kind.String(),
						Rejected: rejected,
						Duration: time.Since(moveStart),
					})
					if m.Renderer != nil {
						m.Renderer.Frame(m.Engine.State().Reveal())
					}
					break
				}
			}
			if errors.Is(err, game.ErrTerminalState) {
				break
			}
			rejected++
			var invalid *game.InvalidMoveError
			if errors.As(err, &invalid) {
				log.Warn().
					Stringer("player", player).
					Stringer("reason", invalid.Reason).
					Int("rejected", rejected).
					Msg("move rejected")
			} else {
				log.Warn().Stringer("player", player).Err(err).
					Int("rejected", rejected).
					Msg("agent failed to produce a move")
			}
			if rejected >= cfg.MaxInvalidTries {
				if err := m.Engine.Forfeit(player); err != nil {
					log.Error().Err(err).Msg("forfeit on terminal match")
				}
				break
			}
		}
	}

	end := time.Now()
	record := metrics.GameRecord{
		ID:        m.ID,
		Variant:   cfg.Name,
		Seed:      m.Engine.Seed(),
		RedAgent:  m.Agents[game.Red].Name(),
		BlueAgent: m.Agents[game.Blue].Name(),
		Status:    m.Engine.State().Status().String(),
		Turns:     m.Engine.State().Turn(),
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
	if winner, ok := m.Engine.Winner(); ok {
		record.Winner = winner.String()
	}
	return record, moves
}
