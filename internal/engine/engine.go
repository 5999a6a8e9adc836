// Package engine implements the combat resolution core: fight setup,
// the single mutating action entry point, turn advancement and the
// pure action resolver. The engine trusts its caller (the turn
// arbiter) to have validated phase and affordability; it never rolls
// outside the injected RNG, so a fight replays bit for bit from its
// seed.
package engine

import (
	"errors"

	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

var (
	ErrMissingCombatant = errors.New("combatant is missing")
	ErrInvalidStats     = errors.New("combatant stats are invalid")
	ErrCombatEnded      = errors.New("combat already ended")
	ErrCombatNotStarted = errors.New("combat not started")
	ErrUnknownSide      = errors.New("unknown side")
	ErrInvalidAction    = errors.New("invalid action")
)

// Engine binds the resolver to one RNG stream and one balance table.
type Engine struct {
	rng *rng.RNG
	tun *balance.Tuning
}

// New returns an engine rolling on r against the given balance table.
// Nil arguments fall back to the process RNG and the embedded
// defaults.
func New(r *rng.RNG, tun *balance.Tuning) *Engine {
	if r == nil {
		r = rng.Default
	}
	if tun == nil {
		tun = balance.Default()
	}
	return &Engine{rng: r, tun: tun}
}

// Tuning exposes the balance table the engine was built with.
func (e *Engine) Tuning() *balance.Tuning { return e.tun }

// RNG exposes the engine's random stream. The AI selectors draw from
// the same stream so one seed reproduces a whole fight.
func (e *Engine) RNG() *rng.RNG { return e.rng }

func clampPools(c *game.CombatantRuntime) {
	if c.HP < 0 {
		c.HP = 0
	}
	if c.HP > c.Stats.MaxHP {
		c.HP = c.Stats.MaxHP
	}
	if c.Stamina < 0 {
		c.Stamina = 0
	}
	if c.Stamina > c.Stats.MaxStamina {
		c.Stamina = c.Stats.MaxStamina
	}
	if c.Focus < 0 {
		c.Focus = 0
	}
	if c.Focus > c.Stats.MaxFocus {
		c.Focus = c.Stats.MaxFocus
	}
}

// ClampPools forces both combatants' resource pools back into
// [0, max]. The arbiter calls this after recovering from a panic so a
// half-applied resolution cannot leave the state out of bounds.
func ClampPools(st *game.CombatState) {
	if st == nil {
		return
	}
	if st.Player != nil {
		clampPools(st.Player)
	}
	if st.Enemy != nil {
		clampPools(st.Enemy)
	}
}
