package engine

import (
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

// NextTurn hands the fight to the other side. The side whose turn
// begins loses its stale guard/dodge stance (the window it covered is
// over), regenerates stamina and focus under max clamps, and has its
// duration effects ticked: bleed deals its damage here and can end the
// fight on the spot. Round increments when the turn returns to
// whoever acted first.
func (e *Engine) NextTurn(st *game.CombatState) error {
	if st == nil || st.Phase == game.PhaseNotStarted {
		return ErrCombatNotStarted
	}
	if st.Ended() {
		return ErrCombatEnded
	}

	st.Turn = st.Turn.Other()
	st.TurnCount++
	if st.Turn == st.FirstTurn {
		st.Round++
	}

	starting := st.Runtime(st.Turn)
	starting.GuardZone = game.ZoneNone
	starting.DodgePrimed = false

	starting.Stamina += starting.StaminaRegen
	starting.Focus += e.tun.Regen.Focus
	clampPools(starting)

	tickEffects(st, starting)
	if st.Ended() {
		return nil
	}

	if st.Turn == game.SidePlayer {
		st.Phase = game.PhasePlayerTurn
	} else {
		st.Phase = game.PhaseEnemyTurn
	}
	return nil
}

// tickEffects advances the starting side's active effects by one turn
// and drops the expired ones. A bleed that empties the pool hands the
// win to the opponent immediately.
func tickEffects(st *game.CombatState, c *game.CombatantRuntime) {
	if len(c.Effects) == 0 {
		return
	}
	kept := c.Effects[:0]
	for _, eff := range c.Effects {
		if eff.Kind == game.EffectBleed && eff.TurnsLeft > 0 {
			c.HP -= eff.Magnitude
			if c.HP <= 0 {
				c.HP = 0
				st.Winner = c.Side.Other()
				st.Phase = game.PhaseEnded
			}
		}
		eff.TurnsLeft--
		if eff.TurnsLeft > 0 {
			kept = append(kept, eff)
		}
	}
	c.Effects = kept
}
