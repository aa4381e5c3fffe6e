// Package experiments runs repeated seeded self-play for benchmarking and
// dataset logging.
package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/DarshanScripts/stratego-sub000/agent"
	"github.com/DarshanScripts/stratego-sub000/engine"
	"github.com/DarshanScripts/stratego-sub000/experiments/metrics"
	"github.com/DarshanScripts/stratego-sub000/game"
	"github.com/DarshanScripts/stratego-sub000/gamemaster"
)

// SelfPlay describes one benchmark run: n games of one variant, each game
// seeded from BaseSeed+i so the whole run replays deterministically.
type SelfPlay struct {
	Name     string
	Variant  string
	Games    int
	BaseSeed uint64
	OutDir   string
}

// Run plays the scheduled games between two random agents and stores the
// run as CSVs. Returns the output directory.
func Run(sp SelfPlay) (string, error) {
	cfg, err := game.VariantConfig(sp.Variant)
	if err != nil {
		return "", err
	}

	log.Info().Str("name", sp.Name).Str("variant", sp.Variant).
		Int("games", sp.Games).Msg("starting self-play run")

	var (
		configs     []metrics.MatchConfig
		gameRecords []metrics.GameRecord
		moveRecords []metrics.MoveRecord
	)
	for i := 0; i < sp.Games; i++ {
		seed := sp.BaseSeed + uint64(i)
		e, err := engine.New(cfg, seed, engine.LogSink{})
		if err != nil {
			return "", fmt.Errorf("game %d: %w", i+1, err)
		}
		red := agent.NewRandom(seed ^ 0xa5a5)
		blue := agent.NewRandom(seed ^ 0x5a5a)
		match := gamemaster.NewMatch(i+1, e, red, blue)

		configs = append(configs, metrics.MatchConfig{
			ID:        i + 1,
			Variant:   cfg.Name,
			Seed:      seed,
			RedAgent:  red.Name(),
			BlueAgent: blue.Name(),
		})

		record, moves := match.Run()
		gameRecords = append(gameRecords, record)
		moveRecords = append(moveRecords, moves...)

		log.Info().Int("game", i+1).Int("of", sp.Games).
			Str("status", record.Status).Str("winner", record.Winner).
			Int("turns", record.Turns).Msg("game finished")
	}

	writer, err := metrics.NewWriter(sp.OutDir, sp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create run writer: %w", err)
	}
	if err := writer.WriteMatchConfigs(configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}

	log.Info().Str("dir", writer.BaseDir()).Msg("stored run records")
	return writer.BaseDir(), nil
}
