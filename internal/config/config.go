package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/keys"
)

type enemyEntry struct {
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	League    string            `json:"league"`
	Archetype string            `json:"archetype"`
	Level     int               `json:"level"`
	Stats     game.FighterStats `json:"stats"`
	DamageMin int               `json:"damage_min"`
	DamageMax int               `json:"damage_max"`
}

type rawConfig struct {
	EnemyList  []enemyEntry `json:"enemy_list"`
	LeagueList []string     `json:"league_list"`
	Server     *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Seconds an idle player gets before the turn is auto-guarded.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	// Optional balance override file layered over the embedded defaults.
	BalanceFile string `json:"balance_file"`
}

// LoadedConfig contains the enemy roster to seed, the league ladder in
// climbing order and the server settings.
type LoadedConfig struct {
	Enemies       []game.EnemyTemplate
	Leagues       []string
	ServerAddress string
	ActionTimeout time.Duration
	BalanceFile   string
}

var defaultLeagues = []string{"dust", "bronze", "silver", "gold", "champions"}

// LoadConfig reads the configuration file at path and returns the enemy
// roster and server settings. It requires the key `enemy_list`
// (snake_case).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	entries := rc.EnemyList
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: enemy_list is empty (provide 'enemy_list' array)", path)
	}

	leagues := rc.LeagueList
	if len(leagues) == 0 {
		leagues = defaultLeagues
	}
	leagueSet := make(map[string]struct{}, len(leagues))
	for _, l := range leagues {
		ln := strings.ToLower(strings.TrimSpace(l))
		if ln == "" {
			return nil, fmt.Errorf("config file %s: league_list contains an empty name", path)
		}
		if _, exists := leagueSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate league '%s'", path, l)
		}
		leagueSet[ln] = struct{}{}
	}

	out := make([]game.EnemyTemplate, 0, len(entries))
	keySet := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: enemy entry missing 'name'", path)
		}
		key := e.Key
		if key == "" {
			key = keys.FighterKey(e.Name)
		}
		if _, exists := keySet[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate enemy key '%s'", path, key)
		}
		keySet[key] = struct{}{}

		arch := game.AIType(strings.ToLower(strings.TrimSpace(e.Archetype)))
		if !arch.Valid() {
			return nil, fmt.Errorf("config file %s: enemy '%s' has unknown archetype '%s'", path, e.Name, e.Archetype)
		}
		league := strings.ToLower(strings.TrimSpace(e.League))
		if _, ok := leagueSet[league]; !ok {
			return nil, fmt.Errorf("config file %s: enemy '%s' references unknown league '%s'", path, e.Name, e.League)
		}
		if e.DamageMin <= 0 || e.DamageMax < e.DamageMin {
			return nil, fmt.Errorf("config file %s: enemy '%s' has invalid damage range [%d,%d]", path, e.Name, e.DamageMin, e.DamageMax)
		}
		if e.Stats.MaxHP <= 0 || e.Stats.MaxStamina <= 0 || e.Stats.MaxFocus <= 0 {
			return nil, fmt.Errorf("config file %s: enemy '%s' has non-positive resource pools", path, e.Name)
		}

		level := e.Level
		if level <= 0 {
			level = 1
		}
		out = append(out, game.EnemyTemplate{
			Key:       key,
			Name:      e.Name,
			Title:     e.Title,
			League:    league,
			Archetype: arch,
			Level:     level,
			Stats:     e.Stats,
			DamageMin: e.DamageMin,
			DamageMax: e.DamageMax,
		})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	timeout := 90 * time.Second
	if rc.ActionTimeoutSeconds > 0 {
		timeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}

	return &LoadedConfig{
		Enemies:       out,
		Leagues:       leagues,
		ServerAddress: addr,
		ActionTimeout: timeout,
		BalanceFile:   strings.TrimSpace(rc.BalanceFile),
	}, nil
}

// EnemyByKey returns the configured template for key, or nil.
func (c *LoadedConfig) EnemyByKey(key string) *game.EnemyTemplate {
	for i := range c.Enemies {
		if c.Enemies[i].Key == key {
			return &c.Enemies[i]
		}
	}
	return nil
}

// EnemiesInLeague returns the roster slice for one league.
func (c *LoadedConfig) EnemiesInLeague(league string) []game.EnemyTemplate {
	var out []game.EnemyTemplate
	for _, e := range c.Enemies {
		if e.League == league {
			out = append(out, e)
		}
	}
	return out
}

// LeagueRank returns a league's position on the ladder, or -1 when the
// league is not configured.
func (c *LoadedConfig) LeagueRank(name string) int {
	for i, l := range c.Leagues {
		if l == name {
			return i
		}
	}
	return -1
}
