package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub002/internal/reward"
)

func newSimulateCmd() *cobra.Command {
	var (
		fights      int
		seed        int64
		playerArch  string
		enemyArch   string
		level       int
		league      string
		balanceFile string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play many scripted bouts and report win rates",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if verbose {
				os.Setenv(logging.EnvDebug, "1")
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			var (
				playerWins, enemyWins, draws int
				rounds, dealt, taken, peak   int
				gold, xp, wins               int
			)
			for i := 0; i < fights; i++ {
				st, err := playBout(seed+int64(i), pa, ea, level, tun)
				if err != nil {
					return err
				}
				rounds += st.Round
				dealt += st.Player.DamageDealt
				taken += st.Player.DamageTaken
				peak += st.HypePeak
				switch st.Winner {
				case game.SidePlayer:
					playerWins++
					rw := reward.CalculateRewards(&st, league, tun)
					gold += rw.Gold
					xp += rw.XP
					wins++
				case game.SideEnemy:
					enemyWins++
				default:
					draws++
				}
			}

			n := float64(fights)
			fmt.Printf("simulated %d bouts: %s vs %s (level %d, league %s, base seed %d)\n\n",
				fights, pa, ea, level, league, seed)
			fmt.Printf("  player wins:   %d (%.1f%%)\n", playerWins, 100*float64(playerWins)/n)
			fmt.Printf("  enemy wins:    %d\n", enemyWins)
			fmt.Printf("  draws:         %d\n", draws)
			fmt.Printf("  avg rounds:    %.1f\n", float64(rounds)/n)
			fmt.Printf("  avg damage:    %.1f dealt / %.1f taken\n", float64(dealt)/n, float64(taken)/n)
			fmt.Printf("  avg hype peak: %.1f\n", float64(peak)/n)
			if wins > 0 {
				fmt.Printf("  avg win purse: %d gold, %d xp\n", gold/wins, xp/wins)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&fights, "fights", 200, "number of bouts to play")
	cmd.Flags().Int64Var(&seed, "seed", 0, "base seed; bout i plays with seed+i (0 picks from the clock)")
	cmd.Flags().StringVar(&playerArch, "player", string(game.AIBalanced), "archetype scripting the player side")
	cmd.Flags().StringVar(&enemyArch, "enemy", string(game.AIBalanced), "archetype scripting the enemy side")
	cmd.Flags().IntVar(&level, "level", 1, "level of both fighters")
	cmd.Flags().StringVar(&league, "league", "dust", "league used for the reward preview")
	cmd.Flags().StringVar(&balanceFile, "balance", "", "balance override file layered over the embedded defaults")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log every resolved action")
	return cmd
}
