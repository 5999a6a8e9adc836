package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

func newReplayCmd() *cobra.Command {
	var (
		seed        int64
		playerArch  string
		enemyArch   string
		level       int
		balanceFile string
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Play one bout from a seed and print its full combat log",
		Long: "replay reruns a single bout deterministically. Given the seed from a\n" +
			"fight record (and the same tuning) it reproduces that fight blow for blow.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				return fmt.Errorf("--seed is required")
			}
			pa, err := parseArchetype(playerArch)
			if err != nil {
				return err
			}
			ea, err := parseArchetype(enemyArch)
			if err != nil {
				return err
			}
			tun, err := balance.Load(balanceFile)
			if err != nil {
				return err
			}

			st, err := playBout(seed, pa, ea, level, tun)
			if err != nil {
				return err
			}

			fmt.Printf("replaying seed %d: %s (%s) vs %s (%s), level %d\n\n",
				seed, st.Player.Name, pa, st.Enemy.Name, ea, level)
			for _, e := range st.Log {
				fmt.Println("  " + formatLogEntry(e))
			}
			fmt.Println()
			switch st.Winner {
			case game.SideNone:
				fmt.Printf("draw after %d rounds (hype peak %d)\n", st.Round, st.HypePeak)
			default:
				fmt.Printf("winner: %s after %d rounds (hype peak %d, %d hp left)\n",
					st.Winner, st.Round, st.HypePeak, st.Runtime(st.Winner).HP)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "seed to replay (required)")
	cmd.Flags().StringVar(&playerArch, "player", string(game.AIBalanced), "archetype scripting the player side")
	cmd.Flags().StringVar(&enemyArch, "enemy", string(game.AIBalanced), "archetype scripting the enemy side")
	cmd.Flags().IntVar(&level, "level", 1, "level of both fighters")
	cmd.Flags().StringVar(&balanceFile, "balance", "", "balance override file layered over the embedded defaults")
	return cmd
}
