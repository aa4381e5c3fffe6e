package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/DarshanScripts/stratego-sub000/agent"
	"github.com/DarshanScripts/stratego-sub000/engine"
	"github.com/DarshanScripts/stratego-sub000/game"
	"github.com/DarshanScripts/stratego-sub000/gamemaster"
)

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a single match",
		Long: heredoc.Doc(`
			Play runs one match between two seats. Each seat is either a
			seeded random agent or a human entering moves in bracket
			notation, e.g. [A0 B0].
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			variant, _ := cmd.Flags().GetString("variant")
			seed, _ := cmd.Flags().GetUint64("seed")
			redKind, _ := cmd.Flags().GetString("red")
			blueKind, _ := cmd.Flags().GetString("blue")
			watch, _ := cmd.Flags().GetBool("watch")
			reveal, _ := cmd.Flags().GetBool("reveal")

			cfg, err := game.VariantConfig(variant)
			if err != nil {
				return err
			}
			cfg.FullVisibility = reveal
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			e, err := engine.New(cfg, seed, engine.LogSink{})
			if err != nil {
				return err
			}
			red, err := newSeat(redKind, seed+1, cmd)
			if err != nil {
				return err
			}
			blue, err := newSeat(blueKind, seed+2, cmd)
			if err != nil {
				return err
			}

			match := gamemaster.NewMatch(1, e, red, blue)
			if watch {
				match.Renderer = consoleRenderer{out: cmd.OutOrStdout()}
			}

			record, _ := match.Run()
			fmt.Fprintf(cmd.OutOrStdout(), "%s after %d turns", record.Status, record.Turns)
			if record.Winner != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ", winner: %s", record.Winner)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().String("variant", "quick", "Board variant to play")
	cmd.Flags().Uint64("seed", 0, "Setup seed (0 picks one from the clock)")
	cmd.Flags().String("red", "random", "Red seat: random or human")
	cmd.Flags().String("blue", "random", "Blue seat: random or human")
	cmd.Flags().Bool("watch", false, "Print the full board after every ply")
	cmd.Flags().Bool("reveal", false, "Disable fog of war in observations")

	return cmd
}

func newSeat(kind string, seed uint64, cmd *cobra.Command) (agent.Agent, error) {
	switch kind {
	case "random":
		return agent.NewRandom(seed), nil
	case "human":
		return agent.NewHuman(cmd.InOrStdin(), cmd.OutOrStdout()), nil
	}
	return nil, fmt.Errorf("unknown seat kind %q (want random or human)", kind)
}

type consoleRenderer struct {
	out io.Writer
}

func (r consoleRenderer) Frame(board string) {
	fmt.Fprintln(r.out, board)
}
