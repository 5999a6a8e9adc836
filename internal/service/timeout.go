package service

import (
	"time"

	"github.com/LachyC123/bloodline-arena-sub002/internal/arbiter"
	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/config"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
)

// TimeoutRepo adds the run lookup the background scanner needs on top
// of the fight-settling surface.
type TimeoutRepo interface {
	FightRepo
	GetRunByID(id uint) (*game.Run, error)
}

// HandleTimedOutFight resolves one expired session. An idle player
// guards the body instead of losing outright; a fight stuck waiting for
// an acknowledgement is stepped forward one resolution at a time.
func HandleTimedOutFight(repo TimeoutRepo, sessions *Sessions, sess *FightSession, cfg *config.LoadedConfig, tun *balance.Tuning, actionTimeout time.Duration) error {
	run, err := repo.GetRunByID(sess.RunID)
	if err != nil {
		return err
	}

	switch sess.Controller.Phase() {
	case arbiter.StatePlayerTurn:
		logging.Info("auto-guarding for idle player", logging.Fields{"run_code": sess.RunCode})
		if _, err := SubmitAction(sessions, sess.RunID, game.ActionGuard, game.ZoneBody, actionTimeout); err != nil {
			logging.Error("auto-guard failed; forfeiting idle fight", err, logging.Fields{"run_code": sess.RunCode})
			if _, ferr := ForfeitFight(repo, sessions, run, cfg, tun); ferr != nil {
				return ferr
			}
		}
		return nil
	case arbiter.StateResolving, arbiter.StateEnded:
		_, err := AdvanceFight(repo, sessions, run, cfg, tun, actionTimeout)
		return err
	default:
		// Begin never ran; nothing to play out.
		sessions.Remove(sess.RunID)
		return nil
	}
}

// ScanExpiredFights sweeps the session table once and times out every
// fight whose deadline has passed. Returns how many sessions were
// handled.
func ScanExpiredFights(repo TimeoutRepo, sessions *Sessions, cfg *config.LoadedConfig, tun *balance.Tuning, actionTimeout time.Duration) int {
	expired := sessions.Expired(time.Now())
	for _, sess := range expired {
		if err := HandleTimedOutFight(repo, sessions, sess, cfg, tun, actionTimeout); err != nil {
			logging.Error("failed to time out fight", err, logging.Fields{"run_code": sess.RunCode})
		}
	}
	return len(expired)
}
