package engine

import (
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

// ExecuteAction is the single state-mutating entry point. It resolves
// the action, charges its costs, applies damage and status effects,
// appends to the log and sets the winner the moment a combatant drops
// to zero HP. Affordability and phase validation belong to the turn
// arbiter; this function trusts that its caller already checked them
// and only rejects structural misuse.
func (e *Engine) ExecuteAction(st *game.CombatState, side game.Side, action game.CombatAction, zone game.TargetZone) (game.ActionResult, error) {
	if st == nil || st.Phase == game.PhaseNotStarted {
		return game.ActionResult{}, ErrCombatNotStarted
	}
	if st.Ended() {
		return game.ActionResult{}, ErrCombatEnded
	}
	actor := st.Runtime(side)
	defender := st.Opponent(side)
	if actor == nil || defender == nil {
		return game.ActionResult{}, ErrUnknownSide
	}
	if !action.Valid() {
		return game.ActionResult{}, ErrInvalidAction
	}
	if action.NeedsZone() && !zone.Valid() {
		return game.ActionResult{}, ErrInvalidAction
	}

	res := e.Resolve(actor, defender, action, zone)

	// Costs are charged regardless of outcome. The floor is a safety
	// net; the arbiter validates affordability before calling in.
	actor.Stamina -= res.StaminaSpent
	if actor.Stamina < 0 {
		actor.Stamina = 0
	}
	actor.Focus -= res.FocusSpent
	if actor.Focus < 0 {
		actor.Focus = 0
	}

	switch action {
	case game.ActionGuard:
		actor.GuardZone = zone
		actor.ConsecutiveGuards++
	case game.ActionDodge:
		actor.DodgePrimed = true
		actor.ConsecutiveGuards = 0
	default:
		actor.ConsecutiveGuards = 0
		// One incoming attack consumes the defender's stance whether
		// or not it mattered.
		defender.GuardZone = game.ZoneNone
		defender.DodgePrimed = false

		if res.Damage > 0 {
			defender.HP -= res.Damage
			if defender.HP < 0 {
				defender.HP = 0
			}
			actor.DamageDealt += res.Damage
			defender.DamageTaken += res.Damage
		}
		if res.Applied != game.EffectNone {
			turns, magnitude := e.tun.Effects.Of(res.Applied)
			defender.ApplyEffect(res.Applied, turns, magnitude)
		}
	}

	actor.LastAction = action

	// Lethal hits end the fight inside this call, never at end of
	// round.
	if defender.HP <= 0 {
		res.KO = true
		res.Hype += e.tun.Hype.KO
		st.Winner = side
		st.Phase = game.PhaseEnded
	}

	st.AddHype(res.Hype)
	st.AppendLog(res)
	return res, nil
}
