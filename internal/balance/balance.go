// Package balance centralizes every combat, AI and reward constant in
// one tunable table. The resolver, the AI selectors and the reward
// rolls read from a Tuning value instead of scattering magic numbers;
// defaults ship embedded and an override file can replace them without
// a rebuild.
package balance

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

//go:embed default.yaml
var defaultYAML []byte

// ActionCosts are the fixed stamina/focus prices per action. Costs are
// charged on execution regardless of hit or miss.
type ActionCosts struct {
	LightStamina   int `yaml:"light_stamina"`
	HeavyStamina   int `yaml:"heavy_stamina"`
	SpecialStamina int `yaml:"special_stamina"`
	SpecialFocus   int `yaml:"special_focus"`
	GuardStamina   int `yaml:"guard_stamina"`
	DodgeStamina   int `yaml:"dodge_stamina"`
}

// Of returns the stamina and focus cost of an action.
func (c ActionCosts) Of(a game.CombatAction) (stamina, focus int) {
	switch a {
	case game.ActionLightAttack:
		return c.LightStamina, 0
	case game.ActionHeavyAttack:
		return c.HeavyStamina, 0
	case game.ActionSpecial:
		return c.SpecialStamina, c.SpecialFocus
	case game.ActionGuard:
		return c.GuardStamina, 0
	case game.ActionDodge:
		return c.DodgeStamina, 0
	}
	return 0, 0
}

// CombatTuning parameterizes the action resolver.
type CombatTuning struct {
	BaseHitChance int `yaml:"base_hit_chance"`
	MinHitChance  int `yaml:"min_hit_chance"`
	MaxHitChance  int `yaml:"max_hit_chance"`
	AttackDivisor int `yaml:"attack_divisor"`

	LightScale   float64 `yaml:"light_scale"`
	HeavyScale   float64 `yaml:"heavy_scale"`
	SpecialScale float64 `yaml:"special_scale"`
	// Heavy swings trade accuracy for the damage scale.
	HeavyHitPenalty int `yaml:"heavy_hit_penalty"`

	HeadCritFactor  float64 `yaml:"head_crit_factor"`
	GuardMitigation float64 `yaml:"guard_mitigation"`

	DodgeBase  float64 `yaml:"dodge_base"`
	DodgeScale float64 `yaml:"dodge_scale"`
	DodgeMin   float64 `yaml:"dodge_min"`
	DodgeMax   float64 `yaml:"dodge_max"`
}

// ZoneMods are the per-zone damage and hit-chance modifiers.
type ZoneMods struct {
	Damage float64 `yaml:"damage"`
	Hit    int     `yaml:"hit"`
}

// ZoneTable maps the three body zones to their modifiers.
type ZoneTable struct {
	Head ZoneMods `yaml:"head"`
	Body ZoneMods `yaml:"body"`
	Legs ZoneMods `yaml:"legs"`
}

// Of returns the modifiers for a zone. Unknown zones use body's
// modifiers rather than failing.
func (z ZoneTable) Of(zone game.TargetZone) ZoneMods {
	switch zone {
	case game.ZoneHead:
		return z.Head
	case game.ZoneLegs:
		return z.Legs
	}
	return z.Body
}

// EffectTuning parameterizes the three zone-keyed status effects.
type EffectTuning struct {
	BleedDamage    int `yaml:"bleed_damage"`
	BleedTurns     int `yaml:"bleed_turns"`
	DazePenalty    int `yaml:"daze_penalty"`
	DazeTurns      int `yaml:"daze_turns"`
	CripplePenalty int `yaml:"cripple_penalty"`
	CrippleTurns   int `yaml:"cripple_turns"`
}

// Of returns duration and magnitude for an effect kind.
func (e EffectTuning) Of(kind game.EffectKind) (turns, magnitude int) {
	switch kind {
	case game.EffectBleed:
		return e.BleedTurns, e.BleedDamage
	case game.EffectDaze:
		return e.DazeTurns, e.DazePenalty
	case game.EffectCripple:
		return e.CrippleTurns, e.CripplePenalty
	}
	return 0, 0
}

// RegenTuning is the per-turn resource recovery, before fatigue
// scaling.
type RegenTuning struct {
	Stamina int `yaml:"stamina"`
	Focus   int `yaml:"focus"`
}

// HypeTuning maps resolution outcomes to crowd meter movement.
type HypeTuning struct {
	Hit     int `yaml:"hit"`
	Crit    int `yaml:"crit"`
	Blocked int `yaml:"blocked"`
	Dodged  int `yaml:"dodged"`
	Miss    int `yaml:"miss"`
	KO      int `yaml:"ko"`
}

// ArchetypeProfile is the full decision table for one AI archetype.
// Every field has a defined value; selectors never fall back to
// implicit defaults.
type ArchetypeProfile struct {
	Light   float64 `yaml:"light"`
	Heavy   float64 `yaml:"heavy"`
	Special float64 `yaml:"special"`
	Guard   float64 `yaml:"guard"`
	Dodge   float64 `yaml:"dodge"`

	Head float64 `yaml:"head"`
	Body float64 `yaml:"body"`
	Legs float64 `yaml:"legs"`
}

// ActionWeights returns the action weight row in canonical order:
// light, heavy, special, guard, dodge.
func (p ArchetypeProfile) ActionWeights() []float64 {
	return []float64{p.Light, p.Heavy, p.Special, p.Guard, p.Dodge}
}

// ZoneWeights returns the zone weight row in canonical order: head,
// body, legs.
func (p ArchetypeProfile) ZoneWeights() []float64 {
	return []float64{p.Head, p.Body, p.Legs}
}

// RewardRow is the gold/experience/renown payout for one league.
type RewardRow struct {
	WinGold    int `yaml:"win_gold"`
	WinXP      int `yaml:"win_xp"`
	WinRenown  int `yaml:"win_renown"`
	LossGold   int `yaml:"loss_gold"`
	LossXP     int `yaml:"loss_xp"`
	LossRenown int `yaml:"loss_renown"`
}

// RewardsTuning keys payouts by league. Fallback covers leagues the
// table does not name.
type RewardsTuning struct {
	HypeGoldDivisor   int                  `yaml:"hype_gold_divisor"`
	HypeRenownDivisor int                  `yaml:"hype_renown_divisor"`
	Fallback          RewardRow            `yaml:"fallback"`
	Leagues           map[string]RewardRow `yaml:"leagues"`
}

// League returns the payout row for a league, or the fallback row when
// the league is not configured.
func (r RewardsTuning) League(name string) RewardRow {
	if row, ok := r.Leagues[name]; ok {
		return row
	}
	return r.Fallback
}

// InjuryRow is one severity tier in the post-defeat injury roll.
type InjuryRow struct {
	Severity       game.InjurySeverity `yaml:"severity"`
	Weight         float64             `yaml:"weight"`
	PenaltyPercent int                 `yaml:"penalty_percent"`
	FightsToHeal   int                 `yaml:"fights_to_heal"`
}

// InjuryTuning parameterizes the loser's injury roll.
type InjuryTuning struct {
	Chance      float64     `yaml:"chance"`
	DeathChance float64     `yaml:"death_chance"`
	Rows        []InjuryRow `yaml:"rows"`
}

// StarterTuning seeds a brand-new run: the first fighter's stat block,
// weapon damage range and purse.
type StarterTuning struct {
	Stats     game.FighterStats `yaml:"stats"`
	DamageMin int               `yaml:"damage_min"`
	DamageMax int               `yaml:"damage_max"`
	Gold      int               `yaml:"gold"`
}

// ProgressTuning governs experience levels and the stat growth each
// level grants.
type ProgressTuning struct {
	XPPerLevel   int `yaml:"xp_per_level"`
	HPPerLevel   int `yaml:"hp_per_level"`
	AttackEvery  int `yaml:"attack_every"`
	DefenseEvery int `yaml:"defense_every"`
}

// Tuning is the complete balance table.
type Tuning struct {
	Costs      ActionCosts                 `yaml:"costs"`
	Combat     CombatTuning                `yaml:"combat"`
	Zones      ZoneTable                   `yaml:"zones"`
	Effects    EffectTuning                `yaml:"effects"`
	Regen      RegenTuning                 `yaml:"regen"`
	Hype       HypeTuning                  `yaml:"hype"`
	Archetypes map[string]ArchetypeProfile `yaml:"archetypes"`
	Rewards    RewardsTuning               `yaml:"rewards"`
	Injury     InjuryTuning                `yaml:"injury"`
	Starter    StarterTuning               `yaml:"starter"`
	Progress   ProgressTuning              `yaml:"progress"`
}

// Profile returns the decision table for an archetype and whether one
// is configured.
func (t *Tuning) Profile(a game.AIType) (ArchetypeProfile, bool) {
	p, ok := t.Archetypes[string(a)]
	return p, ok
}

// Default returns the embedded balance table. The embedded defaults
// are part of the build; failing to parse them is a programming error.
func Default() *Tuning {
	t := &Tuning{}
	if err := yaml.Unmarshal(defaultYAML, t); err != nil {
		panic(fmt.Sprintf("balance: embedded default.yaml is invalid: %v", err))
	}
	return t
}

// Load returns the balance table from an override file layered over
// the embedded defaults, or the defaults alone when path is empty.
func Load(path string) (*Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse balance file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid balance file %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects tables the engine cannot run on. Weighted rolls in
// particular must never see an all-zero weight row, so the zero-total
// fallback in the RNG stays a documented quirk instead of a live code
// path.
func (t *Tuning) Validate() error {
	if t.Combat.MinHitChance < 0 || t.Combat.MaxHitChance > 100 ||
		t.Combat.MinHitChance > t.Combat.MaxHitChance {
		return fmt.Errorf("hit chance clamp [%d,%d] out of order", t.Combat.MinHitChance, t.Combat.MaxHitChance)
	}
	if t.Combat.AttackDivisor <= 0 {
		return fmt.Errorf("attack_divisor must be positive, got %d", t.Combat.AttackDivisor)
	}
	if t.Combat.LightScale <= 0 || t.Combat.HeavyScale <= 0 || t.Combat.SpecialScale <= 0 {
		return fmt.Errorf("action damage scales must be positive")
	}
	if t.Combat.GuardMitigation < 0 || t.Combat.GuardMitigation > 1 {
		return fmt.Errorf("guard_mitigation %v outside [0,1]", t.Combat.GuardMitigation)
	}
	if t.Combat.DodgeScale <= 0 {
		return fmt.Errorf("dodge_scale must be positive")
	}
	if t.Combat.DodgeMin < 0 || t.Combat.DodgeMax > 1 || t.Combat.DodgeMin > t.Combat.DodgeMax {
		return fmt.Errorf("dodge chance clamp [%v,%v] out of order", t.Combat.DodgeMin, t.Combat.DodgeMax)
	}
	for _, zm := range []ZoneMods{t.Zones.Head, t.Zones.Body, t.Zones.Legs} {
		if zm.Damage <= 0 {
			return fmt.Errorf("zone damage modifiers must be positive")
		}
	}
	for name, p := range t.Archetypes {
		if !game.AIType(name).Valid() {
			return fmt.Errorf("unknown archetype %q", name)
		}
		if sum(p.ActionWeights()) <= 0 {
			return fmt.Errorf("archetype %q has no positive action weight", name)
		}
		if sum(p.ZoneWeights()) <= 0 {
			return fmt.Errorf("archetype %q has no positive zone weight", name)
		}
		for _, w := range append(p.ActionWeights(), p.ZoneWeights()...) {
			if w < 0 {
				return fmt.Errorf("archetype %q has a negative weight", name)
			}
		}
	}
	for _, a := range []game.AIType{
		game.AIAggressive, game.AIDefensive, game.AITrickster, game.AIBrutal,
		game.AIBalanced, game.AICautious, game.AIBerserker, game.AITactical,
	} {
		if _, ok := t.Archetypes[string(a)]; !ok {
			return fmt.Errorf("archetype %q has no profile", a)
		}
	}
	if t.Rewards.HypeGoldDivisor <= 0 || t.Rewards.HypeRenownDivisor <= 0 {
		return fmt.Errorf("hype divisors must be positive")
	}
	if len(t.Injury.Rows) == 0 {
		return fmt.Errorf("injury table is empty")
	}
	var injTotal float64
	for _, row := range t.Injury.Rows {
		if row.Weight < 0 {
			return fmt.Errorf("injury row %q has a negative weight", row.Severity)
		}
		switch row.Severity {
		case game.InjuryMinor, game.InjurySerious, game.InjurySevere:
		default:
			return fmt.Errorf("injury row has unknown severity %q", row.Severity)
		}
		injTotal += row.Weight
	}
	if injTotal <= 0 {
		return fmt.Errorf("injury table weights sum to zero")
	}
	if t.Injury.Chance < 0 || t.Injury.Chance > 1 || t.Injury.DeathChance < 0 || t.Injury.DeathChance > 1 {
		return fmt.Errorf("injury chances must be within [0,1]")
	}
	if t.Starter.DamageMin <= 0 || t.Starter.DamageMax < t.Starter.DamageMin {
		return fmt.Errorf("starter damage range [%d,%d] invalid", t.Starter.DamageMin, t.Starter.DamageMax)
	}
	if t.Progress.XPPerLevel <= 0 {
		return fmt.Errorf("xp_per_level must be positive")
	}
	return nil
}

func sum(ws []float64) float64 {
	var s float64
	for _, w := range ws {
		s += w
	}
	return s
}
