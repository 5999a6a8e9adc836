package engine

import (
	"fmt"

	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

// InitCombat validates both combatants and builds a fresh CombatState:
// round 1, empty log, hype 0, pools filled to max. The higher Speed
// acts first; a tie is broken by a coin flip on the engine's RNG.
// Validation failures surface here, before any state exists, never
// mid-resolution.
func (e *Engine) InitCombat(player, enemy *game.CombatantRuntime) (*game.CombatState, error) {
	if player == nil || enemy == nil {
		return nil, ErrMissingCombatant
	}
	for _, c := range []*game.CombatantRuntime{player, enemy} {
		if err := validateCombatant(c); err != nil {
			return nil, err
		}
	}

	player.Side = game.SidePlayer
	enemy.Side = game.SideEnemy
	for _, c := range []*game.CombatantRuntime{player, enemy} {
		c.HP = c.Stats.MaxHP
		c.Stamina = c.Stats.MaxStamina
		c.Focus = c.Stats.MaxFocus
		c.GuardZone = game.ZoneNone
		c.DodgePrimed = false
		c.LastAction = game.ActionNone
		c.ConsecutiveGuards = 0
		c.Effects = nil
		c.DamageDealt = 0
		c.DamageTaken = 0
	}

	first := game.SidePlayer
	switch {
	case enemy.Stats.Speed > player.Stats.Speed:
		first = game.SideEnemy
	case enemy.Stats.Speed == player.Stats.Speed:
		if e.rng.Chance(0.5) {
			first = game.SideEnemy
		}
	}

	st := &game.CombatState{
		Player:    player,
		Enemy:     enemy,
		Turn:      first,
		FirstTurn: first,
		Round:     1,
		TurnCount: 1,
		CrowdHype: 0,
		Winner:    game.SideNone,
	}
	if first == game.SidePlayer {
		st.Phase = game.PhasePlayerTurn
	} else {
		st.Phase = game.PhaseEnemyTurn
	}
	return st, nil
}

func validateCombatant(c *game.CombatantRuntime) error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStats)
	}
	s := c.Stats
	if s.MaxHP <= 0 || s.MaxStamina <= 0 || s.MaxFocus < 0 {
		return fmt.Errorf("%w: %s has non-positive pools", ErrInvalidStats, c.Name)
	}
	if c.DamageMin <= 0 || c.DamageMax < c.DamageMin {
		return fmt.Errorf("%w: %s has damage range [%d,%d]", ErrInvalidStats, c.Name, c.DamageMin, c.DamageMax)
	}
	if s.Accuracy < 0 || s.Evasion < 0 || s.Speed < 0 || s.Defense < 0 || s.Attack < 0 {
		return fmt.Errorf("%w: %s has negative combat stats", ErrInvalidStats, c.Name)
	}
	if s.CritChance < 0 || s.CritChance > 100 || s.CritDamage < 100 {
		return fmt.Errorf("%w: %s has crit values out of range", ErrInvalidStats, c.Name)
	}
	return nil
}
