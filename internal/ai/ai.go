// Package ai maps an enemy archetype plus the current combat state to
// a chosen action and target zone. Selectors are pure over (state,
// RNG): the same state and the same draw sequence always produce the
// same decision, which keeps whole fights replayable from one seed.
package ai

import (
	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

// Decision is an archetype's chosen action and target zone. Zone is
// ZoneNone for dodge.
type Decision struct {
	Action game.CombatAction
	Zone   game.TargetZone
}

// turnContext carries everything a selector may consult. Affordability is
// computed once here; every selector must respect the can* booleans on
// its own.
type turnContext struct {
	self *game.CombatantRuntime
	opp  *game.CombatantRuntime

	profile balance.ArchetypeProfile

	canHeavy   bool
	canSpecial bool
	canDodge   bool

	selfHP float64
	oppHP  float64

	// Zone of the opponent's most recent attack, ZoneNone if they have
	// not attacked yet.
	lastOppZone game.TargetZone
}

type selector func(*rng.RNG, *turnContext) Decision

var selectors = map[game.AIType]selector{
	game.AIAggressive: aggressive,
	game.AIDefensive:  defensive,
	game.AITrickster:  trickster,
	game.AIBrutal:     brutal,
	game.AIBalanced:   balanced,
	game.AICautious:   cautious,
	game.AIBerserker:  berserker,
	game.AITactical:   tactical,
}

// ChooseAction returns the enemy's decision for the current turn.
// Unknown archetypes fall back to the balanced profile rather than
// failing mid-fight.
func ChooseAction(r *rng.RNG, tun *balance.Tuning, st *game.CombatState, archetype game.AIType) Decision {
	return ChooseFor(r, tun, st, st.Enemy, st.Player, archetype)
}

// ChooseFor runs an archetype selector for an arbitrary pairing. The
// fight simulator uses it to script the player's side of a bout.
func ChooseFor(r *rng.RNG, tun *balance.Tuning, st *game.CombatState, self, opp *game.CombatantRuntime, archetype game.AIType) Decision {
	profile, ok := tun.Profile(archetype)
	if !ok {
		profile, _ = tun.Profile(game.AIBalanced)
	}

	stamina := self.Stamina
	focus := self.Focus
	heavyCost, _ := tun.Costs.Of(game.ActionHeavyAttack)
	specialStamina, specialFocus := tun.Costs.Of(game.ActionSpecial)
	dodgeCost, _ := tun.Costs.Of(game.ActionDodge)

	ctx := &turnContext{
		self:        self,
		opp:         opp,
		profile:     profile,
		canHeavy:    stamina >= heavyCost,
		canSpecial:  stamina >= specialStamina && focus >= specialFocus,
		canDodge:    stamina >= dodgeCost,
		selfHP:      healthFraction(self),
		oppHP:       healthFraction(opp),
		lastOppZone: lastAttackZone(st, opp.Side),
	}

	sel, ok := selectors[archetype]
	if !ok {
		sel = balanced
	}
	return sel(r, ctx)
}

func healthFraction(c *game.CombatantRuntime) float64 {
	if c.Stats.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.Stats.MaxHP)
}

func lastAttackZone(st *game.CombatState, side game.Side) game.TargetZone {
	for i := len(st.Log) - 1; i >= 0; i-- {
		entry := st.Log[i]
		if entry.Actor == side && entry.Action.Offensive() {
			return entry.Zone
		}
	}
	return game.ZoneNone
}

// actionOrder is the canonical weight-row order shared with
// balance.ArchetypeProfile.ActionWeights.
var actionOrder = []game.CombatAction{
	game.ActionLightAttack,
	game.ActionHeavyAttack,
	game.ActionSpecial,
	game.ActionGuard,
	game.ActionDodge,
}

var zoneOrder = []game.TargetZone{game.ZoneHead, game.ZoneBody, game.ZoneLegs}

// gate zeroes the weights of actions the combatant cannot afford.
func gate(c *turnContext, weights []float64) []float64 {
	out := make([]float64, len(weights))
	copy(out, weights)
	if !c.canHeavy {
		out[1] = 0
	}
	if !c.canSpecial {
		out[2] = 0
	}
	if !c.canDodge {
		out[4] = 0
	}
	return out
}

// pickAction rolls over a gated weight row. An all-zero row (nothing
// affordable beyond the basics) falls back to a light attack.
func pickAction(r *rng.RNG, c *turnContext, weights []float64) game.CombatAction {
	gated := gate(c, weights)
	var total float64
	for _, w := range gated {
		total += w
	}
	if total <= 0 {
		return game.ActionLightAttack
	}
	return actionOrder[r.WeightedPick(gated)]
}

// pickZone applies the shared tell-and-punish rule: when the opponent
// holds a guard stance, prefer one of the two unguarded zones with
// equal probability; otherwise roll the archetype's zone weights.
func pickZone(r *rng.RNG, c *turnContext) game.TargetZone {
	if c.opp.GuardZone != game.ZoneNone {
		open := unguardedZones(c.opp.GuardZone)
		return open[r.PickIndex(len(open))]
	}
	return zoneOrder[r.WeightedPick(c.profile.ZoneWeights())]
}

func unguardedZones(guarded game.TargetZone) []game.TargetZone {
	open := make([]game.TargetZone, 0, 2)
	for _, z := range zoneOrder {
		if z != guarded {
			open = append(open, z)
		}
	}
	return open
}

// zoneFor fills in the zone dimension for a chosen action.
func zoneFor(r *rng.RNG, c *turnContext, action game.CombatAction) game.TargetZone {
	switch action {
	case game.ActionDodge:
		return game.ZoneNone
	case game.ActionGuard:
		// Cover the zone the opponent went for last; body if they have
		// not shown a preference yet.
		if c.lastOppZone != game.ZoneNone {
			return c.lastOppZone
		}
		return game.ZoneBody
	}
	return pickZone(r, c)
}
