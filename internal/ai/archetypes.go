package ai

import (
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

// Indexes into an action weight row, see actionOrder.
const (
	idxLight = iota
	idxHeavy
	idxSpecial
	idxGuard
	idxDodge
)

// aggressive leans on its weight table and goes for the kill when the
// opponent is nearly down.
func aggressive(r *rng.RNG, c *turnContext) Decision {
	if c.oppHP < 0.25 && c.canHeavy {
		return Decision{Action: game.ActionHeavyAttack, Zone: pickZone(r, c)}
	}
	action := pickAction(r, c, c.profile.ActionWeights())
	return Decision{Action: action, Zone: zoneFor(r, c, action)}
}

// defensive turtles when hurt but refuses to guard three times in a
// row.
func defensive(r *rng.RNG, c *turnContext) Decision {
	w := c.profile.ActionWeights()
	if c.selfHP < 0.35 {
		w[idxGuard] *= 2
	}
	if c.self.ConsecutiveGuards >= 2 {
		w[idxGuard] = 0
	}
	action := pickAction(r, c, w)
	return Decision{Action: action, Zone: zoneFor(r, c, action)}
}

// trickster reads the opponent: slips away after a heavy swing and
// punishes a raised guard with a special on an open zone.
func trickster(r *rng.RNG, c *turnContext) Decision {
	if c.opp.LastAction == game.ActionHeavyAttack && c.canDodge {
		return Decision{Action: game.ActionDodge, Zone: game.ZoneNone}
	}
	if c.opp.GuardZone != game.ZoneNone && c.canSpecial {
		open := unguardedZones(c.opp.GuardZone)
		return Decision{Action: game.ActionSpecial, Zone: open[r.PickIndex(len(open))]}
	}
	action := pickAction(r, c, c.profile.ActionWeights())
	return Decision{Action: action, Zone: zoneFor(r, c, action)}
}

// brutal goes for the head. Always. Guarded or not.
func brutal(r *rng.RNG, c *turnContext) Decision {
	action := pickAction(r, c, c.profile.ActionWeights())
	if action == game.ActionDodge {
		return Decision{Action: action, Zone: game.ZoneNone}
	}
	return Decision{Action: action, Zone: game.ZoneHead}
}

func balanced(r *rng.RNG, c *turnContext) Decision {
	action := pickAction(r, c, c.profile.ActionWeights())
	return Decision{Action: action, Zone: zoneFor(r, c, action)}
}

// cautious protects its health lead: more guards and dodges once hurt,
// no heavy swings when badly wounded.
func cautious(r *rng.RNG, c *turnContext) Decision {
	w := c.profile.ActionWeights()
	if c.selfHP < 0.5 {
		w[idxGuard] *= 1.5
		w[idxDodge] *= 1.5
	}
	if c.selfHP < 0.3 {
		w[idxHeavy] = 0
	}
	action := pickAction(r, c, w)
	return Decision{Action: action, Zone: zoneFor(r, c, action)}
}

// berserker swings harder the closer it is to death.
func berserker(r *rng.RNG, c *turnContext) Decision {
	if c.canHeavy {
		p := 0.5 + (1-c.selfHP)*0.4
		if r.Chance(p) {
			return Decision{Action: game.ActionHeavyAttack, Zone: pickZone(r, c)}
		}
	}
	action := pickAction(r, c, c.profile.ActionWeights())
	return Decision{Action: action, Zone: zoneFor(r, c, action)}
}

// tactical works the opponent's weaknesses: it hammers a zone that
// already carries a debuff, dodges after a heavy and breaks guards at
// their open zones.
func tactical(r *rng.RNG, c *turnContext) Decision {
	if zone := debuffZone(c.opp); zone != game.ZoneNone {
		action := game.ActionLightAttack
		if c.canHeavy {
			action = game.ActionHeavyAttack
		}
		return Decision{Action: action, Zone: zone}
	}
	if c.opp.LastAction == game.ActionHeavyAttack && c.canDodge {
		return Decision{Action: game.ActionDodge, Zone: game.ZoneNone}
	}
	if c.opp.GuardZone != game.ZoneNone {
		open := unguardedZones(c.opp.GuardZone)
		zone := open[r.PickIndex(len(open))]
		if c.canSpecial {
			return Decision{Action: game.ActionSpecial, Zone: zone}
		}
		return Decision{Action: game.ActionLightAttack, Zone: zone}
	}
	action := pickAction(r, c, c.profile.ActionWeights())
	return Decision{Action: action, Zone: zoneFor(r, c, action)}
}

// debuffZone returns the zone matching the strongest exploitable
// debuff on the opponent.
func debuffZone(c *game.CombatantRuntime) game.TargetZone {
	switch {
	case c.HasEffect(game.EffectCripple):
		return game.ZoneLegs
	case c.HasEffect(game.EffectDaze):
		return game.ZoneHead
	case c.HasEffect(game.EffectBleed):
		return game.ZoneBody
	}
	return game.ZoneNone
}
