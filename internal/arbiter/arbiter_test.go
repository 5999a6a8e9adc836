package arbiter

import (
	"errors"
	"testing"

	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/engine"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

func makeRuntime(name string, speed int) *game.CombatantRuntime {
	return &game.CombatantRuntime{
		Name: name,
		Stats: game.FighterStats{
			MaxHP: 100, MaxStamina: 100, MaxFocus: 100,
			Attack: 15, Defense: 8, Speed: speed,
			Accuracy: 10, Evasion: 8,
			CritChance: 10, CritDamage: 150,
		},
		DamageMin: 6, DamageMax: 12, StaminaRegen: 15,
	}
}

// newTestController builds a fight the player opens.
func newTestController(t *testing.T, seed int64) *Controller {
	t.Helper()
	eng := engine.New(rng.New(seed), balance.Default())
	c, err := New(eng, makeRuntime("player", 20), makeRuntime("enemy", 5), game.AIBalanced)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestActionRejectedBeforeBegin(t *testing.T) {
	c := newTestController(t, 1)
	_, err := c.PlayerChooseAction(game.ActionLightAttack, game.ZoneBody)
	if !errors.Is(err, ErrNotPlayerTurn) {
		t.Fatalf("err = %v, want ErrNotPlayerTurn", err)
	}
	snap := c.Snapshot()
	if len(snap.Log) != 0 || snap.Player.Stamina != snap.Player.Stats.MaxStamina {
		t.Fatalf("rejected action mutated state")
	}
}

func TestActionRejectedWhileResolving(t *testing.T) {
	c := newTestController(t, 1)
	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := c.PlayerChooseAction(game.ActionLightAttack, game.ZoneBody); err != nil {
		t.Fatalf("first action: %v", err)
	}
	before := c.Snapshot()
	_, err := c.PlayerChooseAction(game.ActionLightAttack, game.ZoneBody)
	if !errors.Is(err, ErrNotPlayerTurn) {
		t.Fatalf("err = %v, want ErrNotPlayerTurn while resolving", err)
	}
	after := c.Snapshot()
	if len(after.Log) != len(before.Log) || after.Player.Stamina != before.Player.Stamina {
		t.Fatalf("re-entrant action mutated state")
	}
}

func TestHeavyRejectedWithoutStamina(t *testing.T) {
	c := newTestController(t, 1)
	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	c.st.Player.Stamina = 5

	_, err := c.PlayerChooseAction(game.ActionHeavyAttack, game.ZoneBody)
	if !errors.Is(err, ErrCannotAfford) {
		t.Fatalf("err = %v, want ErrCannotAfford", err)
	}
	if c.st.Player.Stamina != 5 {
		t.Fatalf("rejected heavy spent stamina: %d", c.st.Player.Stamina)
	}
	if c.Phase() != StatePlayerTurn {
		t.Fatalf("phase = %s, want player_turn after rejection", c.Phase())
	}
	if len(c.st.Log) != 0 {
		t.Fatalf("rejected heavy appended to log")
	}
}

func TestFiveStaminaPermitsOnlyLightAndGuard(t *testing.T) {
	costly := []struct {
		action game.CombatAction
		zone   game.TargetZone
	}{
		{game.ActionHeavyAttack, game.ZoneBody},
		{game.ActionSpecial, game.ZoneBody},
		{game.ActionDodge, game.ZoneNone},
	}
	for _, tc := range costly {
		c := newTestController(t, 1)
		if _, err := c.Begin(); err != nil {
			t.Fatalf("Begin: %v", err)
		}
		c.st.Player.Stamina = 5
		c.st.Player.Focus = 0
		if _, err := c.PlayerChooseAction(tc.action, tc.zone); !errors.Is(err, ErrCannotAfford) {
			t.Fatalf("%s at 5 stamina: err = %v, want ErrCannotAfford", tc.action, err)
		}
	}

	for _, affordable := range []struct {
		action game.CombatAction
		zone   game.TargetZone
	}{
		{game.ActionLightAttack, game.ZoneBody},
		{game.ActionGuard, game.ZoneHead},
	} {
		c := newTestController(t, 1)
		if _, err := c.Begin(); err != nil {
			t.Fatalf("Begin: %v", err)
		}
		c.st.Player.Stamina = 5
		c.st.Player.Focus = 0
		if _, err := c.PlayerChooseAction(affordable.action, affordable.zone); err != nil {
			t.Fatalf("%s at 5 stamina should be allowed: %v", affordable.action, err)
		}
	}
}

func TestTurnCycle(t *testing.T) {
	c := newTestController(t, 1)
	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if c.Phase() != StatePlayerTurn {
		t.Fatalf("phase after begin = %s, want player_turn", c.Phase())
	}

	if _, err := c.PlayerChooseAction(game.ActionLightAttack, game.ZoneBody); err != nil {
		t.Fatalf("player action: %v", err)
	}
	if c.Phase() != StateResolving {
		t.Fatalf("phase after action = %s, want resolving", c.Phase())
	}

	enemyRes, err := c.EndActionResolution()
	if err != nil {
		t.Fatalf("first ack: %v", err)
	}
	if enemyRes == nil {
		t.Fatalf("expected the enemy's result after the first ack")
	}
	if enemyRes.Actor != game.SideEnemy {
		t.Fatalf("enemy result actor = %q", enemyRes.Actor)
	}
	if c.Phase() != StateResolving {
		t.Fatalf("phase after enemy action = %s, want resolving", c.Phase())
	}

	res, err := c.EndActionResolution()
	if err != nil {
		t.Fatalf("second ack: %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result when the player's turn opens, got %+v", res)
	}
	if c.Phase() != StatePlayerTurn {
		t.Fatalf("phase after cycle = %s, want player_turn", c.Phase())
	}
	if c.st.Round != 2 {
		t.Fatalf("round = %d, want 2 after both sides acted", c.st.Round)
	}
}

func TestAckRejectedOutsideResolving(t *testing.T) {
	c := newTestController(t, 1)
	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := c.EndActionResolution(); !errors.Is(err, ErrNotResolving) {
		t.Fatalf("ack on player turn: err = %v, want ErrNotResolving", err)
	}
}

func TestNoActionsAcceptedAfterKO(t *testing.T) {
	c := newTestController(t, 9)
	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	c.st.Enemy.HP = 1
	for i := 0; i < 200 && !c.Ended(); i++ {
		if _, err := c.PlayerChooseAction(game.ActionLightAttack, game.ZoneBody); err != nil {
			t.Fatalf("action %d: %v", i, err)
		}
		if c.Ended() {
			break
		}
		// Ack the player's miss and then the enemy's reply.
		if _, err := c.EndActionResolution(); err != nil {
			t.Fatalf("ack %d: %v", i, err)
		}
		if c.Ended() {
			break
		}
		if _, err := c.EndActionResolution(); err != nil {
			t.Fatalf("ack %d: %v", i, err)
		}
	}
	if !c.Ended() {
		t.Fatalf("fight against 1 HP enemy never ended")
	}
	if _, err := c.PlayerChooseAction(game.ActionLightAttack, game.ZoneBody); !errors.Is(err, ErrFightOver) {
		t.Fatalf("post-KO action err = %v, want ErrFightOver", err)
	}
}

func TestForfeit(t *testing.T) {
	c := newTestController(t, 1)
	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := c.Forfeit(); err != nil {
		t.Fatalf("Forfeit: %v", err)
	}
	if !c.Ended() {
		t.Fatalf("fight not ended after forfeit")
	}
	snap := c.Snapshot()
	if snap.Winner != game.SideEnemy {
		t.Fatalf("winner = %q, want enemy", snap.Winner)
	}
	if err := c.Forfeit(); !errors.Is(err, ErrFightOver) {
		t.Fatalf("double forfeit err = %v, want ErrFightOver", err)
	}
}

func TestInputEnablementSequence(t *testing.T) {
	c := newTestController(t, 1)
	var seen []bool
	c.SubscribeInput(func(enabled bool) { seen = append(seen, enabled) })

	if len(seen) != 1 || seen[0] {
		t.Fatalf("subscription should fire immediately with input disabled, got %v", seen)
	}
	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := c.PlayerChooseAction(game.ActionGuard, game.ZoneBody); err != nil {
		t.Fatalf("action: %v", err)
	}
	if _, err := c.EndActionResolution(); err != nil {
		t.Fatalf("ack: %v", err)
	}
	if _, err := c.EndActionResolution(); err != nil {
		t.Fatalf("ack: %v", err)
	}
	want := []bool{false, true, false, false, true}
	if len(seen) != len(want) {
		t.Fatalf("input sequence = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("input sequence = %v, want %v", seen, want)
		}
	}
}

func TestPanicDuringResolutionRecovers(t *testing.T) {
	c := newTestController(t, 1)
	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	var err error
	func() {
		c.mu.Lock()
		defer c.unlockAndNotify()
		defer c.recoverResolution(&err)
		c.machine.Trigger(eventPlayerAction)
		c.st.Player.Stamina = -40
		panic("presentation callback exploded")
	}()

	if !errors.Is(err, ErrResolutionFailed) {
		t.Fatalf("err = %v, want ErrResolutionFailed", err)
	}
	if c.Phase() != StatePlayerTurn {
		t.Fatalf("phase = %s, want player_turn after recovery", c.Phase())
	}
	if c.st.Player.Stamina < 0 {
		t.Fatalf("pools not clamped after recovery: %d", c.st.Player.Stamina)
	}
	if _, e := c.PlayerChooseAction(game.ActionLightAttack, game.ZoneBody); e != nil {
		t.Fatalf("fight unusable after recovery: %v", e)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	c := newTestController(t, 1)
	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	snap := c.Snapshot()
	snap.Player.HP = -999
	snap.CrowdHype = 999
	fresh := c.Snapshot()
	if fresh.Player.HP == -999 || fresh.CrowdHype == 999 {
		t.Fatalf("snapshot mutation leaked into live state")
	}
}
