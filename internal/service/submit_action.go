package service

import (
	"errors"
	"time"

	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

var ErrNoFight = errors.New("no fight is underway for this run")

// SubmitAction forwards the player's choice to the fight's arbiter.
// Turn legality, affordability and resolution all live behind the
// controller; this layer only finds the session and pushes the action
// deadline on success.
func SubmitAction(sessions *Sessions, runID uint, action game.CombatAction, zone game.TargetZone, timeout time.Duration) (game.ActionResult, error) {
	sess := sessions.Get(runID)
	if sess == nil {
		return game.ActionResult{}, ErrNoFight
	}
	res, err := sess.Controller.PlayerChooseAction(action, zone)
	if err != nil {
		return game.ActionResult{}, err
	}
	if timeout > 0 {
		sessions.Touch(runID, time.Now().Add(timeout))
	}
	return res, nil
}
