package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DarshanScripts/stratego-sub000/cmd"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := stratego(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func stratego() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
