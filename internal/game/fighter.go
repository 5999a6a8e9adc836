// Package game holds the domain model shared by the combat engine, the
// services and the HTTP layer: persisted entities (runs, fighters,
// records) and the in-memory combat state that never touches the
// database.
package game

import (
	"gorm.io/gorm"
)

// FighterStats is the full stat block used by the combat resolver. The
// same value type serves base stats, current stats and the effective
// snapshot carried into a fight.
type FighterStats struct {
	MaxHP      int `json:"max_hp" yaml:"max_hp"`
	MaxStamina int `json:"max_stamina" yaml:"max_stamina"`
	MaxFocus   int `json:"max_focus" yaml:"max_focus"`
	Attack     int `json:"attack" yaml:"attack"`
	Defense    int `json:"defense" yaml:"defense"`
	Speed      int `json:"speed" yaml:"speed"`
	Accuracy   int `json:"accuracy" yaml:"accuracy"`
	Evasion    int `json:"evasion" yaml:"evasion"`
	// CritChance and CritDamage are percentages: 10 means 10% chance,
	// 150 means a critical hit deals 1.5x damage.
	CritChance int `json:"crit_chance" yaml:"crit_chance"`
	CritDamage int `json:"crit_damage" yaml:"crit_damage"`
}

// FighterStatus is a string alias for a fighter's lifecycle state.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type FighterStatus string

const (
	FighterHealthy FighterStatus = "healthy"
	FighterInjured FighterStatus = "injured"
	FighterDead    FighterStatus = "dead"
)

// Fighter is a gladiator owned by a run. Base holds the stats earned
// through levels; Current holds the working copy that injuries and
// training modify between fights.
type Fighter struct {
	gorm.Model
	RunID      uint          `json:"-"`
	Name       string        `json:"name" gorm:"size:64"`
	Key        string        `json:"key" gorm:"index"`
	Level      int           `json:"level"`
	Experience int           `json:"experience"`
	Status     FighterStatus `json:"status"`

	Base    FighterStats `json:"base_stats" gorm:"embedded;embeddedPrefix:base_"`
	Current FighterStats `json:"current_stats" gorm:"embedded;embeddedPrefix:current_"`

	DamageMin int `json:"damage_min"`
	DamageMax int `json:"damage_max"`

	// Fatigue 0-100 accumulates across fights and slows stamina regen.
	Fatigue int `json:"fatigue"`

	Injuries []Injury `json:"injuries"`
	Scars    []Scar   `json:"scars"`

	Wins             int `json:"wins"`
	Losses           int `json:"losses"`
	Kills            int `json:"kills"`
	TotalDamageDealt int `json:"total_damage_dealt"`
	TotalDamageTaken int `json:"total_damage_taken"`
}

// InjurySeverity is a string alias for how bad an injury is. Severity
// decides the stat penalty, the healing time and whether the wound
// leaves a scar.
type InjurySeverity string

const (
	InjuryMinor   InjurySeverity = "minor"
	InjurySerious InjurySeverity = "serious"
	InjurySevere  InjurySeverity = "severe"
)

// Injury is a wound carried between fights. The penalty applies to the
// stats governed by the wounded zone until the injury heals.
type Injury struct {
	gorm.Model
	FighterID      uint           `json:"-"`
	Name           string         `json:"name"`
	Zone           TargetZone     `json:"zone"`
	Severity       InjurySeverity `json:"severity"`
	PenaltyPercent int            `json:"penalty_percent"`
	FightsToHeal   int            `json:"fights_to_heal"`
	Healed         bool           `json:"healed"`
}

// Scar is the permanent mark a healed severe injury leaves behind.
type Scar struct {
	gorm.Model
	FighterID uint       `json:"-"`
	Name      string     `json:"name"`
	Zone      TargetZone `json:"zone"`
}

// EffectiveStats returns the fighter's current stats with active injury
// penalties applied. Head wounds degrade accuracy and crit chance, body
// wounds attack and stamina, leg wounds speed and evasion. Stats never
// drop below 1.
func (f *Fighter) EffectiveStats() FighterStats {
	s := f.Current
	for _, inj := range f.Injuries {
		if inj.Healed {
			continue
		}
		switch inj.Zone {
		case ZoneHead:
			s.Accuracy = reduceByPercent(s.Accuracy, inj.PenaltyPercent)
			s.CritChance = reduceByPercent(s.CritChance, inj.PenaltyPercent)
		case ZoneBody:
			s.Attack = reduceByPercent(s.Attack, inj.PenaltyPercent)
			s.MaxStamina = reduceByPercent(s.MaxStamina, inj.PenaltyPercent)
		case ZoneLegs:
			s.Speed = reduceByPercent(s.Speed, inj.PenaltyPercent)
			s.Evasion = reduceByPercent(s.Evasion, inj.PenaltyPercent)
		}
	}
	return s
}

// ActiveInjuries counts injuries that have not healed yet.
func (f *Fighter) ActiveInjuries() int {
	n := 0
	for _, inj := range f.Injuries {
		if !inj.Healed {
			n++
		}
	}
	return n
}

func reduceByPercent(v, percent int) int {
	out := v - (v*percent)/100
	if out < 1 {
		out = 1
	}
	return out
}

// EnemyTemplate identifies an arena opponent. Only the identity is
// persisted; combat numbers come from the server configuration on every
// load so tuning changes never require a migration.
type EnemyTemplate struct {
	gorm.Model
	Key    string `json:"key" gorm:"unique"`
	Name   string `json:"name"`
	League string `json:"league"`

	// Populated from configuration, not from the database.
	Archetype AIType       `json:"archetype" gorm:"-"`
	Level     int          `json:"level" gorm:"-"`
	Stats     FighterStats `json:"stats" gorm:"-"`
	DamageMin int          `json:"damage_min" gorm:"-"`
	DamageMax int          `json:"damage_max" gorm:"-"`
	Title     string       `json:"title" gorm:"-"`
}

func (EnemyTemplate) TableName() string { return "enemy_templates" }
