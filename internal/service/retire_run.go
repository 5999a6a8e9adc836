package service

import (
	"strconv"

	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
)

// RetireRun ends a run on the player's terms. The roster walks away
// alive, the renown is banked, and the run stops accepting fights. A
// run with a live fight must finish or forfeit it first.
func RetireRun(repo FightRepo, sessions *Sessions, run *game.Run) error {
	if run.Status != game.RunActive {
		return ErrRunNotActive
	}
	if sessions.Get(run.ID) != nil {
		return ErrFightInProgress
	}

	run.Status = game.RunRetired
	run.Message = "The bloodline retires with " + strconv.Itoa(run.Renown) + " renown."
	if err := repo.UpdateRun(run); err != nil {
		return err
	}

	if !run.StatsCounted {
		if err := repo.UpdateStatsOnRunEnd(run); err != nil {
			logging.Error("failed to fold retired run into player stats", err, logging.Fields{"run_id": run.ID})
		} else {
			run.StatsCounted = true
			if err := repo.UpdateRun(run); err != nil {
				logging.Error("failed to mark run stats as counted", err, logging.Fields{"run_id": run.ID})
			}
		}
	}
	return nil
}
