// Package arbiter serializes access to a fight. The Controller owns
// the CombatState for the lifetime of one encounter: the HTTP layer
// asks it for actions and acks, never touches the state directly, and
// reads snapshots only. An explicit state machine gates which calls
// are legal in which phase, so a browser racing its own animation
// callbacks can never double-resolve an action.
package arbiter

import (
	"errors"
	"fmt"
	"sync"

	"github.com/enetx/fsm"

	"github.com/LachyC123/bloodline-arena-sub002/internal/ai"
	"github.com/LachyC123/bloodline-arena-sub002/internal/engine"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
)

const (
	StateIdle       fsm.State = "idle"
	StatePlayerTurn fsm.State = "player_turn"
	StateResolving  fsm.State = "resolving"
	StateEnemyTurn  fsm.State = "enemy_turn"
	StateEnded      fsm.State = "ended"
)

const (
	eventBegin        fsm.Event = "begin"
	eventPlayerAction fsm.Event = "player_action"
	eventEnemyAction  fsm.Event = "enemy_action"
	eventResolved     fsm.Event = "resolved"
	eventRecover      fsm.Event = "recover"
	eventFinish       fsm.Event = "finish"
)

var (
	ErrAlreadyStarted   = errors.New("fight already started")
	ErrNotPlayerTurn    = errors.New("not the player's turn")
	ErrNotResolving     = errors.New("no action is resolving")
	ErrFightOver        = errors.New("fight is over")
	ErrInvalidChoice    = errors.New("invalid action or zone")
	ErrCannotAfford     = errors.New("cannot afford action")
	ErrResolutionFailed = errors.New("action resolution failed")
)

// Controller arbitrates one fight. All methods are safe for
// concurrent use; exactly one action resolves at a time.
type Controller struct {
	mu        sync.Mutex
	machine   *fsm.FSM
	eng       *engine.Engine
	st        *game.CombatState
	archetype game.AIType

	inputSubs    []func(bool)
	pendingInput *bool
}

// New validates both combatants, builds the combat state and wires the
// phase machine. The fight stays in the idle phase until Begin.
func New(eng *engine.Engine, player, enemy *game.CombatantRuntime, archetype game.AIType) (*Controller, error) {
	st, err := eng.InitCombat(player, enemy)
	if err != nil {
		return nil, err
	}
	c := &Controller{eng: eng, st: st, archetype: archetype}
	c.machine = fsm.New(StateIdle).
		TransitionWhen(StateIdle, eventBegin, StatePlayerTurn, c.playerIsNext).
		TransitionWhen(StateIdle, eventBegin, StateEnemyTurn, c.enemyIsNext).
		Transition(StatePlayerTurn, eventPlayerAction, StateResolving).
		Transition(StateEnemyTurn, eventEnemyAction, StateResolving).
		TransitionWhen(StateResolving, eventResolved, StatePlayerTurn, c.playerIsNext).
		TransitionWhen(StateResolving, eventResolved, StateEnemyTurn, c.enemyIsNext).
		Transition(StateResolving, eventRecover, StatePlayerTurn).
		Transition(StatePlayerTurn, eventFinish, StateEnded).
		Transition(StateEnemyTurn, eventFinish, StateEnded).
		Transition(StateResolving, eventFinish, StateEnded).
		OnEnter(StatePlayerTurn, func(*fsm.Context) error {
			c.queueInputLocked(true)
			return nil
		}).
		OnEnter(StateResolving, func(*fsm.Context) error {
			c.queueInputLocked(false)
			return nil
		}).
		OnEnter(StateEnemyTurn, func(*fsm.Context) error {
			c.queueInputLocked(false)
			return nil
		}).
		OnEnter(StateEnded, func(*fsm.Context) error {
			c.queueInputLocked(false)
			return nil
		})
	return c, nil
}

func (c *Controller) playerIsNext(*fsm.Context) bool { return c.st.Turn == game.SidePlayer }
func (c *Controller) enemyIsNext(*fsm.Context) bool  { return c.st.Turn == game.SideEnemy }

// Begin opens the fight. When the enemy won the initiative its first
// action resolves immediately and is returned for presentation; the
// caller acks it with EndActionResolution like any other.
func (c *Controller) Begin() (res *game.ActionResult, err error) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.machine.Current() != StateIdle {
		return nil, ErrAlreadyStarted
	}
	c.machine.Trigger(eventBegin)
	if c.machine.Current() == StateEnemyTurn {
		return c.enemyActLocked()
	}
	return nil, nil
}

// PlayerChooseAction validates and resolves the player's action.
// Rejections carry a sentinel error and leave the state untouched;
// acceptance moves the fight into the resolving phase until the caller
// acks with EndActionResolution. A panic during resolution is
// recovered here: pools are clamped back into range and the fight is
// forced back to the player's turn instead of locking up.
func (c *Controller) PlayerChooseAction(action game.CombatAction, zone game.TargetZone) (res game.ActionResult, err error) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	defer c.recoverResolution(&err)

	switch c.machine.Current() {
	case StatePlayerTurn:
	case StateEnded:
		return res, ErrFightOver
	default:
		return res, fmt.Errorf("%w: phase is %s", ErrNotPlayerTurn, c.machine.Current())
	}
	if !action.Valid() {
		return res, fmt.Errorf("%w: action %q", ErrInvalidChoice, action)
	}
	if action.NeedsZone() && !zone.Valid() {
		return res, fmt.Errorf("%w: action %q needs a target zone", ErrInvalidChoice, action)
	}
	if action == game.ActionDodge && zone != game.ZoneNone {
		return res, fmt.Errorf("%w: dodge takes no zone", ErrInvalidChoice)
	}
	stamina, focus := c.eng.Tuning().Costs.Of(action)
	if c.st.Player.Stamina < stamina {
		return res, fmt.Errorf("%w: %s needs %d stamina, have %d", ErrCannotAfford, action, stamina, c.st.Player.Stamina)
	}
	if c.st.Player.Focus < focus {
		return res, fmt.Errorf("%w: %s needs %d focus, have %d", ErrCannotAfford, action, focus, c.st.Player.Focus)
	}

	c.machine.Trigger(eventPlayerAction)
	res, err = c.eng.ExecuteAction(c.st, game.SidePlayer, action, zone)
	if err != nil {
		// Structural misuse should have been caught above; recover the
		// machine rather than wedging in resolving.
		c.st.Turn = game.SidePlayer
		c.st.Phase = game.PhasePlayerTurn
		c.machine.Trigger(eventRecover)
		return res, err
	}
	if c.st.Ended() {
		c.machine.Trigger(eventFinish)
	}
	return res, nil
}

// EndActionResolution is the presentation layer's ack that it is done
// animating the last result. It advances the turn; when the enemy is
// due, the enemy acts immediately and the fight re-enters resolving
// with that result returned, so the client acks once per resolved
// action. A nil result means the player's turn is open.
func (c *Controller) EndActionResolution() (res *game.ActionResult, err error) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	defer c.recoverResolution(&err)

	switch c.machine.Current() {
	case StateResolving:
	case StateEnded:
		return nil, ErrFightOver
	default:
		return nil, fmt.Errorf("%w: phase is %s", ErrNotResolving, c.machine.Current())
	}

	if err := c.eng.NextTurn(c.st); err != nil {
		return nil, err
	}
	if c.st.Ended() {
		c.machine.Trigger(eventFinish)
		return nil, nil
	}
	c.machine.Trigger(eventResolved)
	if c.machine.Current() == StateEnemyTurn {
		return c.enemyActLocked()
	}
	return nil, nil
}

// enemyActLocked picks and resolves the enemy's action. The selectors
// gate affordability themselves, so the decision is executed directly.
func (c *Controller) enemyActLocked() (*game.ActionResult, error) {
	d := ai.ChooseAction(c.eng.RNG(), c.eng.Tuning(), c.st, c.archetype)
	c.machine.Trigger(eventEnemyAction)
	res, err := c.eng.ExecuteAction(c.st, game.SideEnemy, d.Action, d.Zone)
	if err != nil {
		c.st.Turn = game.SidePlayer
		c.st.Phase = game.PhasePlayerTurn
		c.machine.Trigger(eventRecover)
		return nil, err
	}
	if c.st.Ended() {
		c.machine.Trigger(eventFinish)
	}
	return &res, nil
}

// Forfeit concedes the fight to the enemy from any open phase.
func (c *Controller) Forfeit() error {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.machine.Current() == StateEnded {
		return ErrFightOver
	}
	if c.machine.Current() == StateIdle {
		return fmt.Errorf("%w: fight not started", ErrNotResolving)
	}
	c.st.Winner = game.SideEnemy
	c.st.Phase = game.PhaseEnded
	c.machine.Trigger(eventFinish)
	return nil
}

// Phase returns the machine's current phase.
func (c *Controller) Phase() fsm.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Current()
}

// Ended reports whether the fight reached a terminal state.
func (c *Controller) Ended() bool {
	return c.Phase() == StateEnded
}

// Snapshot returns a deep copy of the combat state. Collaborators
// render from snapshots; only the Controller mutates the live state.
func (c *Controller) Snapshot() game.CombatState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := *c.st
	player := *c.st.Player
	enemy := *c.st.Enemy
	player.Effects = append([]game.EffectInstance(nil), c.st.Player.Effects...)
	enemy.Effects = append([]game.EffectInstance(nil), c.st.Enemy.Effects...)
	st.Player = &player
	st.Enemy = &enemy
	st.Log = append([]game.ActionLogEntry(nil), c.st.Log...)
	return st
}

// SubscribeInput registers an input-enablement listener and fires it
// immediately with the current value. The Controller is the only
// component that toggles input; collaborators subscribe, they never
// poll.
func (c *Controller) SubscribeInput(fn func(bool)) {
	c.mu.Lock()
	c.inputSubs = append(c.inputSubs, fn)
	enabled := c.machine.Current() == StatePlayerTurn
	c.mu.Unlock()
	fn(enabled)
}

// queueInputLocked records an input-enablement change to deliver after
// the mutex is released, so subscriber callbacks can call back into
// the Controller without deadlocking.
func (c *Controller) queueInputLocked(enabled bool) {
	v := enabled
	c.pendingInput = &v
}

func (c *Controller) unlockAndNotify() {
	pending := c.pendingInput
	c.pendingInput = nil
	subs := append(([]func(bool))(nil), c.inputSubs...)
	c.mu.Unlock()
	if pending == nil {
		return
	}
	for _, fn := range subs {
		notifySafely(fn, *pending)
	}
}

// A broken presentation callback must not take the fight down with it.
func notifySafely(fn func(bool), enabled bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("input subscriber panicked", nil, logging.Fields{"panic": fmt.Sprint(r)})
		}
	}()
	fn(enabled)
}

// recoverResolution converts a panic during resolution into a logged,
// recoverable failure: pools are clamped back into [0,max] and the
// fight returns to the player's turn.
func (c *Controller) recoverResolution(err *error) {
	r := recover()
	if r == nil {
		return
	}
	engine.ClampPools(c.st)
	c.st.Turn = game.SidePlayer
	c.st.Phase = game.PhasePlayerTurn
	if c.machine.Current() == StateResolving {
		c.machine.Trigger(eventRecover)
	}
	logging.Error("combat resolution panicked, recovered to player turn", nil, logging.Fields{
		"panic": fmt.Sprint(r),
		"round": c.st.Round,
		"phase": string(c.machine.Current()),
	})
	*err = ErrResolutionFailed
}
