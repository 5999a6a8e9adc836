package game

// Side names one of the two seats in a fight.
type Side string

const (
	SideNone   Side = ""
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case SidePlayer:
		return SideEnemy
	case SideEnemy:
		return SidePlayer
	}
	return SideNone
}

// CombatPhase is the coarse lifecycle of a combat state snapshot.
type CombatPhase string

const (
	PhaseNotStarted CombatPhase = "not_started"
	PhasePlayerTurn CombatPhase = "player_turn"
	PhaseEnemyTurn  CombatPhase = "enemy_turn"
	PhaseEnded      CombatPhase = "ended"
)

// EffectInstance is one active status effect on a combatant. Magnitude
// means damage per tick for bleed and a stat penalty for daze and
// cripple.
type EffectInstance struct {
	Kind      EffectKind `json:"kind"`
	TurnsLeft int        `json:"turns_left"`
	Magnitude int        `json:"magnitude"`
}

// CombatantRuntime is the live, in-memory fighting state of one side.
// It is built from a Fighter or an EnemyTemplate when a fight starts
// and is never persisted; only aggregate outcomes are written back.
type CombatantRuntime struct {
	FighterID uint   `json:"-"`
	Name      string `json:"name"`
	Side      Side   `json:"side"`
	Archetype AIType `json:"archetype,omitempty"`
	Level     int    `json:"level"`

	Stats     FighterStats `json:"stats"`
	DamageMin int          `json:"damage_min"`
	DamageMax int          `json:"damage_max"`
	// StaminaRegen is the per-turn recovery, already scaled by the
	// fighter's fatigue when the run layer builds the runtime.
	StaminaRegen int `json:"stamina_regen"`

	HP      int `json:"hp"`
	Stamina int `json:"stamina"`
	Focus   int `json:"focus"`

	GuardZone         TargetZone       `json:"guard_zone"`
	DodgePrimed       bool             `json:"dodge_primed"`
	LastAction        CombatAction     `json:"last_action"`
	ConsecutiveGuards int              `json:"consecutive_guards"`
	Effects           []EffectInstance `json:"effects"`

	DamageDealt int `json:"damage_dealt"`
	DamageTaken int `json:"damage_taken"`
}

// Alive reports whether the combatant still has hit points.
func (c *CombatantRuntime) Alive() bool { return c.HP > 0 }

// HasEffect reports whether an effect of the given kind is active.
func (c *CombatantRuntime) HasEffect(kind EffectKind) bool {
	for i := range c.Effects {
		if c.Effects[i].Kind == kind && c.Effects[i].TurnsLeft > 0 {
			return true
		}
	}
	return false
}

// EffectMagnitude returns the magnitude of an active effect, or 0 when
// none of that kind is running.
func (c *CombatantRuntime) EffectMagnitude(kind EffectKind) int {
	for i := range c.Effects {
		if c.Effects[i].Kind == kind && c.Effects[i].TurnsLeft > 0 {
			return c.Effects[i].Magnitude
		}
	}
	return 0
}

// ApplyEffect adds a status effect. Reapplying an active kind refreshes
// its duration and keeps the stronger magnitude instead of stacking.
func (c *CombatantRuntime) ApplyEffect(kind EffectKind, turns, magnitude int) {
	for i := range c.Effects {
		if c.Effects[i].Kind == kind {
			c.Effects[i].TurnsLeft = turns
			if magnitude > c.Effects[i].Magnitude {
				c.Effects[i].Magnitude = magnitude
			}
			return
		}
	}
	c.Effects = append(c.Effects, EffectInstance{Kind: kind, TurnsLeft: turns, Magnitude: magnitude})
}

// ActionResult is the structured outcome of one resolved action. Every
// numeric and boolean field is contractual; Message is cosmetic flavor
// for the combat log.
type ActionResult struct {
	Actor  Side         `json:"actor"`
	Action CombatAction `json:"action"`
	Zone   TargetZone   `json:"zone,omitempty"`

	Damage   int        `json:"damage"`
	Hit      bool       `json:"hit"`
	Critical bool       `json:"critical"`
	Blocked  bool       `json:"blocked"`
	Dodged   bool       `json:"dodged"`
	Applied  EffectKind `json:"applied,omitempty"`

	StaminaSpent int `json:"stamina_spent"`
	FocusSpent   int `json:"focus_spent"`
	Hype         int `json:"hype"`

	KO      bool   `json:"ko"`
	Message string `json:"message"`
}

// ActionLogEntry is one line of the append-only combat log.
type ActionLogEntry struct {
	Round int `json:"round"`
	Turn  int `json:"turn"`
	ActionResult
}

// CombatState is the complete live state of one fight. It exists only
// in memory inside a fight session; the database sees a FightRecord
// after the fight ends.
type CombatState struct {
	Player *CombatantRuntime `json:"player"`
	Enemy  *CombatantRuntime `json:"enemy"`

	Turn      Side        `json:"turn"`
	FirstTurn Side        `json:"first_turn"`
	Round     int         `json:"round"`
	TurnCount int         `json:"turn_count"`
	Phase     CombatPhase `json:"phase"`

	CrowdHype int  `json:"crowd_hype"`
	HypePeak  int  `json:"hype_peak"`
	Winner    Side `json:"winner"`

	Log []ActionLogEntry `json:"log"`
}

// Runtime returns the combatant fighting for the given side.
func (s *CombatState) Runtime(side Side) *CombatantRuntime {
	if side == SidePlayer {
		return s.Player
	}
	if side == SideEnemy {
		return s.Enemy
	}
	return nil
}

// Opponent returns the combatant facing the given side.
func (s *CombatState) Opponent(side Side) *CombatantRuntime {
	return s.Runtime(side.Other())
}

// Ended reports whether the fight is over.
func (s *CombatState) Ended() bool { return s.Phase == PhaseEnded }

// AddHype moves the crowd meter, clamped to [0, 100], and remembers
// the loudest the crowd got. The peak feeds the post-fight purse.
func (s *CombatState) AddHype(delta int) {
	s.CrowdHype += delta
	if s.CrowdHype < 0 {
		s.CrowdHype = 0
	}
	if s.CrowdHype > 100 {
		s.CrowdHype = 100
	}
	if s.CrowdHype > s.HypePeak {
		s.HypePeak = s.CrowdHype
	}
}

// AppendLog records a resolved action against the current round and
// turn counters. The log is append-only.
func (s *CombatState) AppendLog(res ActionResult) {
	s.Log = append(s.Log, ActionLogEntry{Round: s.Round, Turn: s.TurnCount, ActionResult: res})
}
