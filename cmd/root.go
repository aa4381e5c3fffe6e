package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Root builds the stratego command tree.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "stratego",
		Short: "Play and benchmark Stratego-style matches",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flag("debug").Changed {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			if cmd.Flag("quiet").Changed {
				zerolog.SetGlobalLevel(zerolog.ErrorLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().Bool("debug", false, "Show Debug Information")
	root.PersistentFlags().BoolP("quiet", "q", false, "Only Show Errors")

	// Register the various commands.
	root.AddCommand(Play())
	root.AddCommand(Benchmark())
	root.AddCommand(Variants())

	return root
}
