package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/config"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub002/internal/reward"
)

var ErrStaleSession = errors.New("fight session does not match any fighter on the run")

const (
	winsPerPromotion = 3
	fatiguePerFight  = 10
	fatigueCap       = 50
)

// FightOutcome is everything a settled fight changed outside the arena:
// the purse, experience, wounds and what they did to the run.
type FightOutcome struct {
	Winner       game.Side      `json:"winner"`
	Forfeited    bool           `json:"forfeited"`
	Rewards      reward.Rewards `json:"rewards"`
	LevelsGained int            `json:"levels_gained"`
	Injury       *game.Injury   `json:"injury,omitempty"`
	Fatal        bool           `json:"fatal"`
	NewLeague    string         `json:"new_league,omitempty"`
	RunOver      bool           `json:"run_over"`
}

// FightAdvance is the response to one acknowledgement step.
type FightAdvance struct {
	EnemyResult *game.ActionResult `json:"enemy_result,omitempty"`
	State       game.CombatState   `json:"state"`
	Over        bool               `json:"over"`
	Outcome     *FightOutcome      `json:"outcome,omitempty"`
}

// AdvanceFight acknowledges the current resolution step. Mid-fight it
// returns the enemy's answer (or nil when the turn simply passed back);
// once the fight is decided it settles rewards, wounds and persistence
// and drops the session.
func AdvanceFight(repo FightRepo, sessions *Sessions, run *game.Run, cfg *config.LoadedConfig, tun *balance.Tuning, timeout time.Duration) (*FightAdvance, error) {
	sess := sessions.Get(run.ID)
	if sess == nil {
		return nil, ErrNoFight
	}
	ctrl := sess.Controller

	adv := &FightAdvance{}
	if !ctrl.Ended() {
		res, err := ctrl.EndActionResolution()
		if err != nil {
			return nil, err
		}
		adv.EnemyResult = res
		if timeout > 0 {
			sessions.Touch(run.ID, time.Now().Add(timeout))
		}
	}
	adv.State = ctrl.Snapshot()
	if ctrl.Ended() {
		outcome, err := finishFight(repo, sessions, run, sess, cfg, tun, false)
		if err != nil {
			return nil, err
		}
		adv.Over = true
		adv.Outcome = outcome
	}
	return adv, nil
}

// ForfeitFight throws the fight. The enemy takes the win and the fight
// settles immediately, though a forfeit never rolls for injury.
func ForfeitFight(repo FightRepo, sessions *Sessions, run *game.Run, cfg *config.LoadedConfig, tun *balance.Tuning) (*FightOutcome, error) {
	sess := sessions.Get(run.ID)
	if sess == nil {
		return nil, ErrNoFight
	}
	if err := sess.Controller.Forfeit(); err != nil {
		return nil, err
	}
	return finishFight(repo, sessions, run, sess, cfg, tun, true)
}

// finishFight applies a decided fight to the run and its fighter, writes
// the durable record and removes the live session. The injury roll draws
// from the fight's own RNG stream so a seed replays the entire bout,
// wounds included.
func finishFight(repo FightRepo, sessions *Sessions, run *game.Run, sess *FightSession, cfg *config.LoadedConfig, tun *balance.Tuning, forfeited bool) (*FightOutcome, error) {
	defer sessions.Remove(run.ID)

	st := sess.Controller.Snapshot()
	fighter := fighterByID(run, sess.FighterID)
	if fighter == nil {
		return nil, ErrStaleSession
	}

	won := st.Winner == game.SidePlayer
	rw := reward.CalculateRewards(&st, sess.League, tun)
	outcome := &FightOutcome{Winner: st.Winner, Forfeited: forfeited, Rewards: rw}

	// Wounds from earlier fights heal one step per bout fought. The tick
	// runs before any new wound lands so a fresh injury never heals in
	// the fight that caused it.
	tickInjuries(fighter)

	run.FightsFought++
	run.Gold += rw.Gold
	run.Renown += rw.Renown
	fighter.TotalDamageDealt += st.Player.DamageDealt
	fighter.TotalDamageTaken += st.Player.DamageTaken
	fighter.Fatigue += fatiguePerFight
	if fighter.Fatigue > fatigueCap {
		fighter.Fatigue = fatigueCap
	}

	if won {
		run.FightsWon++
		fighter.Wins++
		if st.Enemy != nil && st.Enemy.HP <= 0 {
			fighter.Kills++
		}
	} else {
		run.FightsLost++
		fighter.Losses++
	}

	outcome.LevelsGained = reward.GrantExperience(fighter, rw.XP, tun.Progress)

	if !won && !forfeited {
		roll := reward.RollForInjury(&st, sess.RNG, tun)
		if roll.Injured {
			fighter.Injuries = append(fighter.Injuries, roll.Injury)
			inj := roll.Injury
			outcome.Injury = &inj
			outcome.Fatal = roll.Fatal
			if roll.Fatal {
				fighter.Status = game.FighterDead
			}
		}
	}
	if fighter.Status != game.FighterDead {
		if fighter.ActiveInjuries() > 0 {
			fighter.Status = game.FighterInjured
		} else {
			fighter.Status = game.FighterHealthy
		}
	}

	if won {
		if next := promotedLeague(run, cfg); next != "" {
			run.League = next
			outcome.NewLeague = next
			run.Message = fighter.Name + " advances to the " + next + " league."
		}
	}
	if run.StandingFighters() == 0 {
		run.Status = game.RunFallen
		run.Message = fighter.Name + " has fallen. The bloodline ends here."
		outcome.RunOver = true
	}

	if err := repo.SaveFighter(fighter); err != nil {
		return nil, err
	}
	if err := repo.UpdateRun(run); err != nil {
		return nil, err
	}

	injName := ""
	if outcome.Injury != nil {
		injName = outcome.Injury.Name
	}
	logText, _ := json.Marshal(st.Log)
	record := &game.FightRecord{
		RunID:        run.ID,
		RunCode:      run.Code,
		FighterID:    fighter.ID,
		FighterName:  fighter.Name,
		EnemyKey:     sess.EnemyKey,
		EnemyName:    sess.EnemyName,
		League:       sess.League,
		Seed:         sess.Seed,
		Rounds:       st.Round,
		Winner:       st.Winner,
		Forfeited:    forfeited,
		GoldEarned:   rw.Gold,
		XPEarned:     rw.XP,
		RenownEarned: rw.Renown,
		HypePeak:     st.HypePeak,
		DamageDealt:  st.Player.DamageDealt,
		DamageTaken:  st.Player.DamageTaken,
		Injury:       injName,
		LogText:      string(logText),
	}
	if err := repo.CreateFightRecord(record); err != nil {
		return nil, err
	}

	if err := repo.RecordFightOutcome(run.OwnerEmail, won); err != nil {
		logging.Error("failed to record fight outcome", err, logging.Fields{"run_id": run.ID})
	}
	if outcome.RunOver && !run.StatsCounted {
		if err := repo.UpdateStatsOnRunEnd(run); err != nil {
			logging.Error("failed to fold run into player stats", err, logging.Fields{"run_id": run.ID})
		} else {
			run.StatsCounted = true
			if err := repo.UpdateRun(run); err != nil {
				logging.Error("failed to mark run stats as counted", err, logging.Fields{"run_id": run.ID})
			}
		}
	}
	return outcome, nil
}

// tickInjuries advances healing by one fight. Severe wounds leave a
// scar when they close.
func tickInjuries(f *game.Fighter) {
	for i := range f.Injuries {
		inj := &f.Injuries[i]
		if inj.Healed {
			continue
		}
		inj.FightsToHeal--
		if inj.FightsToHeal > 0 {
			continue
		}
		inj.FightsToHeal = 0
		inj.Healed = true
		if inj.Severity == game.InjurySevere {
			f.Scars = append(f.Scars, game.Scar{FighterID: f.ID, Name: inj.Name, Zone: inj.Zone})
		}
	}
}

// promotedLeague returns the league the run advances to, or "" when it
// stays put. Promotion follows total wins and runs never demote.
func promotedLeague(run *game.Run, cfg *config.LoadedConfig) string {
	if len(cfg.Leagues) == 0 {
		return ""
	}
	earned := run.FightsWon / winsPerPromotion
	if earned > len(cfg.Leagues)-1 {
		earned = len(cfg.Leagues) - 1
	}
	current := cfg.LeagueRank(run.League)
	if current < 0 || earned <= current {
		return ""
	}
	return cfg.Leagues[earned]
}

func fighterByID(run *game.Run, id uint) *game.Fighter {
	for i := range run.Fighters {
		if run.Fighters[i].ID == id {
			return &run.Fighters[i]
		}
	}
	return nil
}
