package game

// CombatAction is a string alias representing a combatant's chosen
// action for a turn.
type CombatAction string

const (
	ActionNone        CombatAction = ""
	ActionLightAttack CombatAction = "light_attack"
	ActionHeavyAttack CombatAction = "heavy_attack"
	ActionSpecial     CombatAction = "special"
	ActionGuard       CombatAction = "guard"
	ActionDodge       CombatAction = "dodge"
)

// Valid reports whether a is one of the five playable actions.
func (a CombatAction) Valid() bool {
	switch a {
	case ActionLightAttack, ActionHeavyAttack, ActionSpecial, ActionGuard, ActionDodge:
		return true
	}
	return false
}

// Offensive reports whether a deals damage to the opponent.
func (a CombatAction) Offensive() bool {
	switch a {
	case ActionLightAttack, ActionHeavyAttack, ActionSpecial:
		return true
	}
	return false
}

// NeedsZone reports whether a requires a target zone. Attacks aim at a
// zone and guard protects one; dodge takes no zone.
func (a CombatAction) NeedsZone() bool {
	return a.Offensive() || a == ActionGuard
}

// TargetZone is the body zone an attack aims at or a guard protects.
type TargetZone string

const (
	ZoneNone TargetZone = ""
	ZoneHead TargetZone = "head"
	ZoneBody TargetZone = "body"
	ZoneLegs TargetZone = "legs"
)

// Valid reports whether z names a real body zone.
func (z TargetZone) Valid() bool {
	switch z {
	case ZoneHead, ZoneBody, ZoneLegs:
		return true
	}
	return false
}

// AIType selects the decision profile an arena opponent fights with.
type AIType string

const (
	AIAggressive AIType = "aggressive"
	AIDefensive  AIType = "defensive"
	AITrickster  AIType = "trickster"
	AIBrutal     AIType = "brutal"
	AIBalanced   AIType = "balanced"
	AICautious   AIType = "cautious"
	AIBerserker  AIType = "berserker"
	AITactical   AIType = "tactical"
)

// Valid reports whether t is a known archetype.
func (t AIType) Valid() bool {
	switch t {
	case AIAggressive, AIDefensive, AITrickster, AIBrutal,
		AIBalanced, AICautious, AIBerserker, AITactical:
		return true
	}
	return false
}

// EffectKind is a status effect a special attack can apply. Each zone
// maps to one effect: head dazes, body opens a bleed, legs cripple.
type EffectKind string

const (
	EffectNone    EffectKind = ""
	EffectBleed   EffectKind = "bleed"
	EffectDaze    EffectKind = "daze"
	EffectCripple EffectKind = "cripple"
)

// EffectForZone returns the status effect a special attack applies when
// it lands on the given zone.
func EffectForZone(z TargetZone) EffectKind {
	switch z {
	case ZoneHead:
		return EffectDaze
	case ZoneBody:
		return EffectBleed
	case ZoneLegs:
		return EffectCripple
	}
	return EffectNone
}
