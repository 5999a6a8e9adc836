package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "arena-sim",
		Short: "Headless fight simulator for balance work",
		Long: "arena-sim plays scripted bouts through the real combat engine so\n" +
			"archetype matchups and tuning changes can be measured without a browser.",
		SilenceUsage: true,
	}
	root.AddCommand(newSimulateCmd(), newReplayCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
