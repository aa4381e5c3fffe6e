package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DarshanScripts/stratego-sub000/game"
)

func Variants() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the named board variants",
		Args:  cobra.NoArgs,

		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range game.VariantNames() {
				cfg, err := game.VariantConfig(name)
				if err != nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s - %d lakes, turn limit %d\n",
					cfg, len(cfg.Lakes), cfg.TurnLimit)
			}
		},
	}
}
