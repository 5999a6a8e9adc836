package main

import (
	"fmt"

	"github.com/LachyC123/bloodline-arena-sub002/internal/ai"
	"github.com/LachyC123/bloodline-arena-sub002/internal/arbiter"
	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/engine"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub002/internal/namegen"
	"github.com/LachyC123/bloodline-arena-sub002/internal/reward"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

// maxSimTurns stops bouts that stall (two cautious archetypes can guard
// at each other for a very long time). A bout that hits it counts as a
// draw.
const maxSimTurns = 1000

// simFighter builds a starter-block fighter leveled up through the same
// growth rule real fights use, so a level-5 sim fighter matches a
// level-5 career fighter exactly.
func simFighter(name string, level int, tun *balance.Tuning) *game.Fighter {
	f := &game.Fighter{
		Name:      name,
		Level:     1,
		Status:    game.FighterHealthy,
		Base:      tun.Starter.Stats,
		Current:   tun.Starter.Stats,
		DamageMin: tun.Starter.DamageMin,
		DamageMax: tun.Starter.DamageMax,
	}
	if level > 1 {
		reward.GrantExperience(f, (level-1)*tun.Progress.XPPerLevel, tun.Progress)
	}
	return f
}

func runtimeFor(f *game.Fighter, side game.Side, archetype game.AIType, tun *balance.Tuning) *game.CombatantRuntime {
	return &game.CombatantRuntime{
		Name:         f.Name,
		Side:         side,
		Archetype:    archetype,
		Level:        f.Level,
		Stats:        f.EffectiveStats(),
		DamageMin:    f.DamageMin,
		DamageMax:    f.DamageMax,
		StaminaRegen: tun.Regen.Stamina,
	}
}

// playBout runs one fight end to end. Both sides are scripted by
// archetype selectors drawing from the fight's single RNG stream, so the
// same seed replays the same bout.
func playBout(seed int64, playerArch, enemyArch game.AIType, level int, tun *balance.Tuning) (game.CombatState, error) {
	r := rng.New(seed)

	pf := simFighter(namegen.FighterName(r), level, tun)
	ef := simFighter(namegen.EnemyName(r, enemyArch), level, tun)
	player := runtimeFor(pf, game.SidePlayer, playerArch, tun)
	enemy := runtimeFor(ef, game.SideEnemy, enemyArch, tun)

	eng := engine.New(r, tun)
	ctrl, err := arbiter.New(eng, player, enemy, enemyArch)
	if err != nil {
		return game.CombatState{}, err
	}
	if _, err := ctrl.Begin(); err != nil {
		return game.CombatState{}, err
	}

	for turns := 0; !ctrl.Ended() && turns < maxSimTurns; turns++ {
		if ctrl.Phase() == arbiter.StatePlayerTurn {
			st := ctrl.Snapshot()
			d := ai.ChooseFor(r, tun, &st, st.Player, st.Enemy, playerArch)
			res, err := ctrl.PlayerChooseAction(d.Action, d.Zone)
			if err != nil {
				return game.CombatState{}, fmt.Errorf("player action failed: %w", err)
			}
			logging.Debug("sim action", logging.Fields{
				"actor": res.Actor, "action": res.Action, "zone": res.Zone,
				"damage": res.Damage, "hit": res.Hit,
			})
			continue
		}
		res, err := ctrl.EndActionResolution()
		if err != nil {
			return game.CombatState{}, fmt.Errorf("resolution ack failed: %w", err)
		}
		if res != nil {
			logging.Debug("sim action", logging.Fields{
				"actor": res.Actor, "action": res.Action, "zone": res.Zone,
				"damage": res.Damage, "hit": res.Hit,
			})
		}
	}

	return ctrl.Snapshot(), nil
}

// formatLogEntry renders one combat log line for the replay printout.
func formatLogEntry(e game.ActionLogEntry) string {
	out := fmt.Sprintf("r%-2d t%-3d %-6s %-12s", e.Round, e.Turn, e.Actor, e.Action)
	if e.Zone != game.ZoneNone {
		out += fmt.Sprintf(" %-4s", e.Zone)
	} else {
		out += "     "
	}
	switch {
	case e.Dodged:
		out += "  dodged"
	case e.Blocked:
		out += fmt.Sprintf("  blocked, %d dmg", e.Damage)
	case e.Action.Offensive() && !e.Hit:
		out += "  miss"
	case e.Action.Offensive():
		out += fmt.Sprintf("  %d dmg", e.Damage)
		if e.Critical {
			out += " crit"
		}
		if e.Applied != game.EffectNone {
			out += " +" + string(e.Applied)
		}
	}
	if e.KO {
		out += "  KO"
	}
	return out
}

func parseArchetype(s string) (game.AIType, error) {
	a := game.AIType(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown archetype %q (valid: aggressive, defensive, trickster, brutal, balanced, cautious, berserker, tactical)", s)
	}
	return a, nil
}
