package service

import (
	"errors"
	"time"

	"github.com/LachyC123/bloodline-arena-sub002/internal/arbiter"
	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/engine"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/namegen"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

// FightRepo is the repository surface the fight services touch.
type FightRepo interface {
	// GetEnemyByKey returns (nil, nil) when no such enemy exists.
	GetEnemyByKey(key string) (*game.EnemyTemplate, error)
	UpdateRun(r *game.Run) error
	SaveFighter(f *game.Fighter) error
	CreateFightRecord(rec *game.FightRecord) error
	RecordFightOutcome(email string, won bool) error
	UpdateStatsOnRunEnd(r *game.Run) error
}

var (
	ErrRunNotActive     = errors.New("run is not active")
	ErrFightInProgress  = errors.New("a fight is already underway for this run")
	ErrNoFighterFit     = errors.New("no fighter is fit to enter the arena")
	ErrEnemyNotFound    = errors.New("no such enemy")
	ErrEnemyWrongLeague = errors.New("enemy does not fight in this league")
)

type StartFightRequest struct {
	EnemyKey string
	// Seed zero asks the server to pick one from the clock. The chosen
	// seed is recorded on the fight record either way.
	Seed int64
}

// StartFight builds both combatants, seeds the fight's RNG stream and
// registers a live session. Every random draw of the fight, from the
// enemy's epithet to the dice, comes from that one stream, so the seed
// on the record replays the whole bout.
func StartFight(repo FightRepo, sessions *Sessions, run *game.Run, req StartFightRequest, tun *balance.Tuning, timeout time.Duration) (*FightSession, error) {
	if run.Status != game.RunActive {
		return nil, ErrRunNotActive
	}
	if sessions.Get(run.ID) != nil {
		return nil, ErrFightInProgress
	}
	fighter := run.ActiveFighter()
	if fighter == nil {
		return nil, ErrNoFighterFit
	}
	tmpl, err := repo.GetEnemyByKey(req.EnemyKey)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, ErrEnemyNotFound
	}
	if tmpl.League != run.League {
		return nil, ErrEnemyWrongLeague
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rng.New(seed)

	// The epithet draw happens before combat setup so replays see the
	// same stream offsets.
	enemyName := tmpl.Name
	if tmpl.Title != "" {
		enemyName += " the " + tmpl.Title
	} else {
		enemyName += " the " + namegen.Epithet(r, tmpl.Archetype)
	}

	player := buildFighterRuntime(fighter, tun)
	enemy := buildEnemyRuntime(tmpl, enemyName, tun)

	eng := engine.New(r, tun)
	ctrl, err := arbiter.New(eng, player, enemy, tmpl.Archetype)
	if err != nil {
		return nil, err
	}

	sess := &FightSession{
		RunID:      run.ID,
		RunCode:    run.Code,
		FighterID:  fighter.ID,
		EnemyKey:   tmpl.Key,
		EnemyName:  enemyName,
		League:     run.League,
		Seed:       seed,
		RNG:        r,
		Controller: ctrl,
	}
	if timeout > 0 {
		sess.Deadline = time.Now().Add(timeout)
	}
	sessions.Put(sess)

	if _, err := ctrl.Begin(); err != nil {
		sessions.Remove(run.ID)
		return nil, err
	}
	return sess, nil
}

// buildFighterRuntime snapshots a fighter into combat form. Injury
// penalties are baked in through EffectiveStats and fatigue slows the
// stamina regen; the persisted fighter is untouched until the fight
// settles.
func buildFighterRuntime(f *game.Fighter, tun *balance.Tuning) *game.CombatantRuntime {
	stats := f.EffectiveStats()
	return &game.CombatantRuntime{
		FighterID:    f.ID,
		Name:         f.Name,
		Side:         game.SidePlayer,
		Level:        f.Level,
		Stats:        stats,
		DamageMin:    f.DamageMin,
		DamageMax:    f.DamageMax,
		StaminaRegen: fatiguedRegen(tun.Regen.Stamina, f.Fatigue),
	}
}

func buildEnemyRuntime(tmpl *game.EnemyTemplate, name string, tun *balance.Tuning) *game.CombatantRuntime {
	return &game.CombatantRuntime{
		Name:         name,
		Side:         game.SideEnemy,
		Archetype:    tmpl.Archetype,
		Level:        tmpl.Level,
		Stats:        tmpl.Stats,
		DamageMin:    tmpl.DamageMin,
		DamageMax:    tmpl.DamageMax,
		StaminaRegen: tun.Regen.Stamina,
	}
}

// fatiguedRegen scales stamina recovery by accumulated fatigue.
// Recovery never drops below one point per turn.
func fatiguedRegen(base, fatigue int) int {
	if fatigue < 0 {
		fatigue = 0
	}
	if fatigue > 100 {
		fatigue = 100
	}
	out := base * (100 - fatigue) / 100
	if out < 1 {
		out = 1
	}
	return out
}
