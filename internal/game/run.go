package game

import (
	"gorm.io/gorm"
)

// RunStatus is a string alias for a run's lifecycle state.
type RunStatus string

const (
	RunActive  RunStatus = "active"
	RunRetired RunStatus = "retired"
	RunFallen  RunStatus = "fallen"
)

// Run is one roguelite career: a stable of fighters climbing the
// leagues until the owner retires them or the last fighter falls.
type Run struct {
	gorm.Model
	RunUUID    string `json:"run_uuid" gorm:"index"`
	Code       string `json:"code" gorm:"unique"`
	OwnerEmail string `json:"-" gorm:"index"`
	OwnerName  string `json:"owner_name"`

	League       string    `json:"league"`
	Gold         int       `json:"gold"`
	Renown       int       `json:"renown"`
	FightsFought int       `json:"fights_fought"`
	FightsWon    int       `json:"fights_won"`
	FightsLost   int       `json:"fights_lost"`
	Status       RunStatus `json:"status"`

	Fighters []Fighter `json:"fighters"`

	Message      string `json:"message"`
	StatsCounted bool   `json:"-"`
}

// ActiveFighter returns the first fighter able to enter the arena, or
// nil when the whole stable is dead. Injured fighters can still fight,
// carrying their stat penalties with them.
func (r *Run) ActiveFighter() *Fighter {
	for i := range r.Fighters {
		if r.Fighters[i].Status != FighterDead {
			return &r.Fighters[i]
		}
	}
	return nil
}

// StandingFighters counts fighters that are not dead.
func (r *Run) StandingFighters() int {
	n := 0
	for i := range r.Fighters {
		if r.Fighters[i].Status != FighterDead {
			n++
		}
	}
	return n
}

// FightRecord is the persisted summary of a finished fight. Seed plus
// the recorded choices are enough to replay the fight bit for bit.
type FightRecord struct {
	gorm.Model
	RunID     uint   `json:"-"`
	RunCode   string `json:"run_code" gorm:"index"`
	FighterID uint   `json:"fighter_id"`

	FighterName string `json:"fighter_name"`
	EnemyKey    string `json:"enemy_key"`
	EnemyName   string `json:"enemy_name"`
	League      string `json:"league"`

	Seed      int64 `json:"seed"`
	Rounds    int   `json:"rounds"`
	Winner    Side  `json:"winner"`
	Forfeited bool  `json:"forfeited"`

	GoldEarned   int `json:"gold_earned"`
	XPEarned     int `json:"xp_earned"`
	RenownEarned int `json:"renown_earned"`
	HypePeak     int `json:"hype_peak"`
	DamageDealt  int `json:"damage_dealt"`
	DamageTaken  int `json:"damage_taken"`

	Injury string `json:"injury,omitempty"`
	// Serialized action log, kept for replay debugging.
	LogText string `json:"-" gorm:"type:text"`
}

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID  string `gorm:"index"`
	PlayerName  string
	Email       string `gorm:"uniqueIndex"`
	RunsPlayed  int
	RunsFallen  int
	Retirements int
	FightsWon   int
	FightsLost  int
	BestRenown  int
}

// Unify global users table name as "player_profiles"
func (User) TableName() string { return "player_profiles" }
