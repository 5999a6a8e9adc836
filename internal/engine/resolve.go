package engine

import (
	"fmt"
	"math"

	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

// Resolve computes the outcome of one action without touching any
// state. Draw order on the RNG is fixed: weapon roll, hit roll, crit
// roll, dodge roll; replays depend on it. Costs are filled in even on
// a miss, since they are charged per action, not per outcome. The
// Message field is cosmetic; every contractual output is numeric or
// boolean.
func (e *Engine) Resolve(attacker, defender *game.CombatantRuntime, action game.CombatAction, zone game.TargetZone) game.ActionResult {
	res := game.ActionResult{Actor: attacker.Side, Action: action, Zone: zone}
	res.StaminaSpent, res.FocusSpent = e.tun.Costs.Of(action)

	switch action {
	case game.ActionGuard:
		res.Message = fmt.Sprintf("%s raises a guard over the %s", attacker.Name, zone)
		return res
	case game.ActionDodge:
		res.Message = fmt.Sprintf("%s drops low, ready to slip the next blow", attacker.Name)
		return res
	}

	cmb := e.tun.Combat
	zm := e.tun.Zones.Of(zone)

	// Step 1: weapon roll plus an attack contribution, scaled by the
	// action and the zone.
	base := e.rng.RandomInt(attacker.DamageMin, attacker.DamageMax) + attacker.Stats.Attack/cmb.AttackDivisor
	dmg := float64(base) * e.actionScale(action) * zm.Damage

	// Daze degrades the attacker's accuracy, cripple the defender's
	// evasion, before both the hit roll and the dodge formula.
	accuracy := attacker.Stats.Accuracy - attacker.EffectMagnitude(game.EffectDaze)
	if accuracy < 0 {
		accuracy = 0
	}
	evasion := defender.Stats.Evasion - defender.EffectMagnitude(game.EffectCripple)
	if evasion < 0 {
		evasion = 0
	}

	// Step 2: hit roll.
	hitChance := cmb.BaseHitChance + accuracy - evasion + zm.Hit
	if action == game.ActionHeavyAttack {
		hitChance -= cmb.HeavyHitPenalty
	}
	hitChance = clampInt(hitChance, cmb.MinHitChance, cmb.MaxHitChance)
	if e.rng.RandomInt(1, 100) > hitChance {
		res.Hype = e.tun.Hype.Miss
		res.Message = fmt.Sprintf("%s swings at %s's %s and misses", attacker.Name, defender.Name, zone)
		return res
	}
	res.Hit = true

	// Step 3: crit. Head shots push the crit factor further.
	if e.rng.Chance(float64(attacker.Stats.CritChance) / 100.0) {
		res.Critical = true
		factor := float64(attacker.Stats.CritDamage) / 100.0
		if zone == game.ZoneHead {
			factor *= cmb.HeadCritFactor
		}
		dmg *= factor
	}

	// Step 4: a primed dodge can zero the blow; a matching guard
	// stance reduces it.
	if defender.DodgePrimed {
		chance := cmb.DodgeBase + float64(defender.Stats.Speed+evasion-attacker.Stats.Speed-accuracy)/cmb.DodgeScale
		chance = clampFloat(chance, cmb.DodgeMin, cmb.DodgeMax)
		if e.rng.Chance(chance) {
			res.Dodged = true
			res.Hype = e.tun.Hype.Dodged
			res.Message = fmt.Sprintf("%s twists away from %s's attack", defender.Name, attacker.Name)
			return res
		}
	}
	if defender.GuardZone != game.ZoneNone && defender.GuardZone == zone {
		dmg *= 1 - cmb.GuardMitigation
		res.Blocked = true
	}

	// Step 5: flat defense after every multiplier, floored at zero.
	final := int(math.Floor(dmg)) - defender.Stats.Defense
	if final < 0 {
		final = 0
	}
	res.Damage = final

	// Specials key a status effect off the zone they land on.
	if action == game.ActionSpecial {
		res.Applied = game.EffectForZone(zone)
	}

	switch {
	case res.Critical:
		res.Hype = e.tun.Hype.Crit
	case res.Blocked:
		res.Hype = e.tun.Hype.Blocked
	default:
		res.Hype = e.tun.Hype.Hit
	}

	verb := "hits"
	if res.Critical {
		verb = "crushes"
	}
	msg := fmt.Sprintf("%s %s %s's %s for %d damage", attacker.Name, verb, defender.Name, zone, final)
	if res.Blocked {
		msg += " (partly blocked)"
	}
	if res.Applied != game.EffectNone {
		msg += fmt.Sprintf(", inflicting %s", res.Applied)
	}
	res.Message = msg
	return res
}

func (e *Engine) actionScale(action game.CombatAction) float64 {
	switch action {
	case game.ActionHeavyAttack:
		return e.tun.Combat.HeavyScale
	case game.ActionSpecial:
		return e.tun.Combat.SpecialScale
	}
	return e.tun.Combat.LightScale
}
