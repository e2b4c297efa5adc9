package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "dataset-builder",
		Short: "Resolve time windows and bind capacity factors for model runs",
	}
	root.AddCommand(buildCmd())
	root.AddCommand(coverageCmd())
	root.AddCommand(fetchCmd())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
