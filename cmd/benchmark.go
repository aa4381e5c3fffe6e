package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/DarshanScripts/stratego-sub000/experiments"
)

func Benchmark() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run seeded self-play games and store CSV records",
		Long: heredoc.Doc(`
			Benchmark plays a batch of random-vs-random games on one
			variant. Game i uses seed base+i, so a run replays exactly
			from the same flags. Records land as CSV files under the
			output directory.
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			variant, _ := cmd.Flags().GetString("variant")
			games, _ := cmd.Flags().GetInt("games")
			seed, _ := cmd.Flags().GetUint64("seed")
			name, _ := cmd.Flags().GetString("name")
			out, _ := cmd.Flags().GetString("out")

			dir, err := experiments.Run(experiments.SelfPlay{
				Name:     name,
				Variant:  variant,
				Games:    games,
				BaseSeed: seed,
				OutDir:   out,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}

	cmd.Flags().String("variant", "quick", "Board variant to play")
	cmd.Flags().Int("games", 10, "Number of games")
	cmd.Flags().Uint64("seed", 1, "Base seed for the run")
	cmd.Flags().String("name", "selfplay", "Run name used in the output path")
	cmd.Flags().String("out", "runs", "Output directory root")

	return cmd
}
