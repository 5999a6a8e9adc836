package service

import (
	"errors"
	"testing"

	"github.com/LachyC123/bloodline-arena-sub002/internal/arbiter"
	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/config"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

type mockFightRepo struct {
	enemies map[string]*game.EnemyTemplate
	runs    map[uint]*game.Run

	records    []game.FightRecord
	outcomes   []bool
	statsEnded int
	runUpdates int
}

func (m *mockFightRepo) GetEnemyByKey(key string) (*game.EnemyTemplate, error) {
	return m.enemies[key], nil
}

func (m *mockFightRepo) UpdateRun(r *game.Run) error {
	m.runUpdates++
	m.runs[r.ID] = r
	return nil
}

func (m *mockFightRepo) SaveFighter(f *game.Fighter) error { return nil }

func (m *mockFightRepo) CreateFightRecord(rec *game.FightRecord) error {
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockFightRepo) RecordFightOutcome(email string, won bool) error {
	m.outcomes = append(m.outcomes, won)
	return nil
}

func (m *mockFightRepo) UpdateStatsOnRunEnd(r *game.Run) error {
	m.statsEnded++
	return nil
}

func (m *mockFightRepo) GetRunByID(id uint) (*game.Run, error) {
	return m.runs[id], nil
}

func strongStats() game.FighterStats {
	return game.FighterStats{
		MaxHP: 500, MaxStamina: 200, MaxFocus: 100,
		Attack: 30, Defense: 30, Speed: 30,
		Accuracy: 40, Evasion: 30, CritChance: 10, CritDamage: 150,
	}
}

func weakStats(hp int) game.FighterStats {
	return game.FighterStats{
		MaxHP: hp, MaxStamina: 100, MaxFocus: 50,
		Attack: 5, Defense: 0, Speed: 5,
		Accuracy: 5, Evasion: 0, CritChance: 5, CritDamage: 150,
	}
}

func flowFixture(fighterStats, enemyStats game.FighterStats, fighterDmgMin, fighterDmgMax, enemyDmgMin, enemyDmgMax int) (*mockFightRepo, *Sessions, *game.Run) {
	fighter := game.Fighter{
		Name: "Atrox Coldiron", Key: "atrox_coldiron",
		Level: 1, Status: game.FighterHealthy,
		Base: fighterStats, Current: fighterStats,
		DamageMin: fighterDmgMin, DamageMax: fighterDmgMax,
	}
	fighter.ID = 5

	run := &game.Run{
		RunUUID: "uuid", Code: "RUNCODE1",
		OwnerEmail: "owner@example.com", OwnerName: "Owner",
		League: "dust", Gold: 50, Status: game.RunActive,
		Fighters: []game.Fighter{fighter},
	}
	run.ID = 1

	enemy := &game.EnemyTemplate{
		Key: "pit_dog", Name: "Pit Dog", League: "dust",
		Archetype: game.AIBalanced, Level: 1,
		Stats:     enemyStats,
		DamageMin: enemyDmgMin, DamageMax: enemyDmgMax,
	}

	repo := &mockFightRepo{
		enemies: map[string]*game.EnemyTemplate{"pit_dog": enemy},
		runs:    map[uint]*game.Run{run.ID: run},
	}
	return repo, NewSessions(), run
}

// playUntilOver drives the fight with light body attacks until it
// settles. Each cycle is one action plus however many acknowledgements
// the resolution needs.
func playUntilOver(t *testing.T, repo *mockFightRepo, sessions *Sessions, run *game.Run, cfg *config.LoadedConfig, tun *balance.Tuning) *FightOutcome {
	t.Helper()
	for i := 0; i < 900; i++ {
		sess := sessions.Get(run.ID)
		if sess == nil {
			t.Fatalf("session vanished before the fight settled")
		}
		if sess.Controller.Phase() == arbiter.StatePlayerTurn {
			if _, err := SubmitAction(sessions, run.ID, game.ActionLightAttack, game.ZoneBody, 0); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}
		adv, err := AdvanceFight(repo, sessions, run, cfg, tun, 0)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if adv.Over {
			if adv.Outcome == nil {
				t.Fatalf("fight over without an outcome")
			}
			return adv.Outcome
		}
	}
	t.Fatalf("fight never settled")
	return nil
}

func TestFightFlowWinSettlesEverything(t *testing.T) {
	repo, sessions, run := flowFixture(strongStats(), weakStats(1), 20, 30, 1, 2)
	cfg := testLoadedConfig()
	tun := balance.Default()

	sess, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog", Seed: 11}, tun, 0)
	if err != nil {
		t.Fatalf("StartFight: %v", err)
	}
	if sess.Seed != 11 {
		t.Fatalf("seed = %d, want 11", sess.Seed)
	}
	if sess.EnemyName == "" {
		t.Fatalf("enemy display name not set")
	}

	startGold := run.Gold
	outcome := playUntilOver(t, repo, sessions, run, cfg, tun)

	if outcome.Winner != game.SidePlayer {
		t.Fatalf("winner = %q, want player", outcome.Winner)
	}
	if sessions.Get(run.ID) != nil {
		t.Fatalf("session not removed after settlement")
	}
	if run.FightsFought != 1 || run.FightsWon != 1 || run.FightsLost != 0 {
		t.Fatalf("run tallies = %d/%d/%d", run.FightsFought, run.FightsWon, run.FightsLost)
	}
	if run.Gold <= startGold {
		t.Fatalf("gold = %d, want more than %d", run.Gold, startGold)
	}
	if run.Renown <= 0 {
		t.Fatalf("renown = %d, want positive", run.Renown)
	}

	f := &run.Fighters[0]
	if f.Wins != 1 || f.Losses != 0 {
		t.Fatalf("fighter tallies = %d/%d", f.Wins, f.Losses)
	}
	if f.Kills != 1 {
		t.Fatalf("kills = %d, want 1", f.Kills)
	}
	if f.Fatigue != fatiguePerFight {
		t.Fatalf("fatigue = %d, want %d", f.Fatigue, fatiguePerFight)
	}
	if outcome.LevelsGained == 0 && f.Experience != outcome.Rewards.XP {
		t.Fatalf("experience = %d, want %d", f.Experience, outcome.Rewards.XP)
	}
	if f.Status != game.FighterHealthy {
		t.Fatalf("winner's status = %q, want healthy", f.Status)
	}

	if len(repo.records) != 1 {
		t.Fatalf("records = %d, want 1", len(repo.records))
	}
	rec := repo.records[0]
	if rec.Seed != 11 || rec.EnemyKey != "pit_dog" || rec.League != "dust" {
		t.Fatalf("record identity = %d/%q/%q", rec.Seed, rec.EnemyKey, rec.League)
	}
	if rec.Winner != game.SidePlayer || rec.Forfeited {
		t.Fatalf("record outcome = %q forfeited=%v", rec.Winner, rec.Forfeited)
	}
	if rec.Rounds < 1 {
		t.Fatalf("rounds = %d", rec.Rounds)
	}
	if rec.LogText == "" {
		t.Fatalf("log text not recorded")
	}
	if rec.GoldEarned != outcome.Rewards.Gold || rec.XPEarned != outcome.Rewards.XP {
		t.Fatalf("record payout mismatch")
	}
	if len(repo.outcomes) != 1 || !repo.outcomes[0] {
		t.Fatalf("aggregate outcome = %v, want one win", repo.outcomes)
	}
	if repo.statsEnded != 0 {
		t.Fatalf("run-end stats folded for a run still going")
	}
}

func TestFightFlowWinPromotesLeague(t *testing.T) {
	repo, sessions, run := flowFixture(strongStats(), weakStats(1), 20, 30, 1, 2)
	run.FightsWon = 2
	cfg := testLoadedConfig()
	tun := balance.Default()

	if _, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog", Seed: 3}, tun, 0); err != nil {
		t.Fatalf("StartFight: %v", err)
	}
	outcome := playUntilOver(t, repo, sessions, run, cfg, tun)
	if outcome.Winner != game.SidePlayer {
		t.Fatalf("winner = %q, want player", outcome.Winner)
	}
	if outcome.NewLeague != "bronze" || run.League != "bronze" {
		t.Fatalf("league = %q (outcome %q), want bronze", run.League, outcome.NewLeague)
	}
}

func TestFightFlowLossEndsRunWhenRosterFalls(t *testing.T) {
	repo, sessions, run := flowFixture(weakStats(10), strongStats(), 1, 1, 50, 60)
	cfg := testLoadedConfig()
	tun := balance.Default()

	if _, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog", Seed: 21}, tun, 0); err != nil {
		t.Fatalf("StartFight: %v", err)
	}
	outcome := playUntilOver(t, repo, sessions, run, cfg, tun)

	if outcome.Winner != game.SideEnemy {
		t.Fatalf("winner = %q, want enemy", outcome.Winner)
	}
	f := &run.Fighters[0]
	if f.Losses != 1 || run.FightsLost != 1 {
		t.Fatalf("loss tallies = %d/%d", f.Losses, run.FightsLost)
	}
	if outcome.Injury != nil {
		if len(f.Injuries) == 0 {
			t.Fatalf("outcome carries an injury the fighter does not")
		}
		if outcome.Fatal && f.Status != game.FighterDead {
			t.Fatalf("fatal wound but status = %q", f.Status)
		}
		if !outcome.Fatal && f.Status != game.FighterInjured {
			t.Fatalf("injured but status = %q", f.Status)
		}
	} else if f.Status != game.FighterHealthy {
		t.Fatalf("clean loss but status = %q", f.Status)
	}

	// A dead sole fighter collapses the run; anything else keeps it
	// alive for another fight.
	if f.Status == game.FighterDead {
		if !outcome.RunOver || run.Status != game.RunFallen {
			t.Fatalf("dead roster but run = %q over=%v", run.Status, outcome.RunOver)
		}
		if repo.statsEnded != 1 || !run.StatsCounted {
			t.Fatalf("run end not folded into stats exactly once")
		}
	} else {
		if outcome.RunOver || run.Status != game.RunActive {
			t.Fatalf("run = %q over=%v with a standing fighter", run.Status, outcome.RunOver)
		}
	}
	if len(repo.outcomes) != 1 || repo.outcomes[0] {
		t.Fatalf("aggregate outcome = %v, want one loss", repo.outcomes)
	}
}

func TestForfeitSettlesWithoutInjury(t *testing.T) {
	repo, sessions, run := flowFixture(strongStats(), weakStats(1), 20, 30, 1, 2)
	cfg := testLoadedConfig()
	tun := balance.Default()

	if _, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog", Seed: 9}, tun, 0); err != nil {
		t.Fatalf("StartFight: %v", err)
	}
	outcome, err := ForfeitFight(repo, sessions, run, cfg, tun)
	if err != nil {
		t.Fatalf("ForfeitFight: %v", err)
	}
	if outcome.Winner != game.SideEnemy || !outcome.Forfeited {
		t.Fatalf("outcome = %q forfeited=%v", outcome.Winner, outcome.Forfeited)
	}
	if outcome.Injury != nil {
		t.Fatalf("forfeit rolled an injury")
	}
	if sessions.Get(run.ID) != nil {
		t.Fatalf("session not removed")
	}
	if len(repo.records) != 1 || !repo.records[0].Forfeited {
		t.Fatalf("forfeit not recorded")
	}
	if run.FightsLost != 1 {
		t.Fatalf("fights lost = %d, want 1", run.FightsLost)
	}
	if _, err := ForfeitFight(repo, sessions, run, cfg, tun); !errors.Is(err, ErrNoFight) {
		t.Fatalf("second forfeit err = %v, want ErrNoFight", err)
	}
}

func TestStartFightValidation(t *testing.T) {
	tun := balance.Default()

	t.Run("enemy from another league", func(t *testing.T) {
		repo, sessions, run := flowFixture(strongStats(), weakStats(1), 20, 30, 1, 2)
		repo.enemies["pit_dog"].League = "bronze"
		_, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog"}, tun, 0)
		if !errors.Is(err, ErrEnemyWrongLeague) {
			t.Fatalf("err = %v, want ErrEnemyWrongLeague", err)
		}
	})

	t.Run("unknown enemy", func(t *testing.T) {
		repo, sessions, run := flowFixture(strongStats(), weakStats(1), 20, 30, 1, 2)
		_, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "nobody"}, tun, 0)
		if !errors.Is(err, ErrEnemyNotFound) {
			t.Fatalf("err = %v, want ErrEnemyNotFound", err)
		}
	})

	t.Run("fight already underway", func(t *testing.T) {
		repo, sessions, run := flowFixture(strongStats(), weakStats(1), 20, 30, 1, 2)
		if _, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog"}, tun, 0); err != nil {
			t.Fatalf("first StartFight: %v", err)
		}
		_, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog"}, tun, 0)
		if !errors.Is(err, ErrFightInProgress) {
			t.Fatalf("err = %v, want ErrFightInProgress", err)
		}
	})

	t.Run("retired run", func(t *testing.T) {
		repo, sessions, run := flowFixture(strongStats(), weakStats(1), 20, 30, 1, 2)
		run.Status = game.RunRetired
		_, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog"}, tun, 0)
		if !errors.Is(err, ErrRunNotActive) {
			t.Fatalf("err = %v, want ErrRunNotActive", err)
		}
	})

	t.Run("no standing fighter", func(t *testing.T) {
		repo, sessions, run := flowFixture(strongStats(), weakStats(1), 20, 30, 1, 2)
		run.Fighters[0].Status = game.FighterDead
		_, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog"}, tun, 0)
		if !errors.Is(err, ErrNoFighterFit) {
			t.Fatalf("err = %v, want ErrNoFighterFit", err)
		}
	})

	t.Run("injured fighter can still fight", func(t *testing.T) {
		repo, sessions, run := flowFixture(strongStats(), weakStats(1), 20, 30, 1, 2)
		run.Fighters[0].Status = game.FighterInjured
		run.Fighters[0].Injuries = []game.Injury{{
			Name: "Twisted Ankle", Zone: game.ZoneLegs,
			Severity: game.InjuryMinor, PenaltyPercent: 10, FightsToHeal: 1,
		}}
		sess, err := StartFight(repo, sessions, run, StartFightRequest{EnemyKey: "pit_dog"}, tun, 0)
		if err != nil {
			t.Fatalf("StartFight: %v", err)
		}
		st := sess.Controller.Snapshot()
		want := run.Fighters[0].EffectiveStats().Speed
		if st.Player.Stats.Speed != want {
			t.Fatalf("runtime speed = %d, want injured %d", st.Player.Stats.Speed, want)
		}
	})
}

func TestSubmitActionWithoutFight(t *testing.T) {
	sessions := NewSessions()
	if _, err := SubmitAction(sessions, 42, game.ActionLightAttack, game.ZoneBody, 0); !errors.Is(err, ErrNoFight) {
		t.Fatalf("err = %v, want ErrNoFight", err)
	}
}

func TestFatiguedRegen(t *testing.T) {
	cases := []struct {
		fatigue, want int
	}{
		{0, 15}, {10, 13}, {50, 7}, {100, 1}, {-5, 15}, {200, 1},
	}
	for _, tc := range cases {
		if got := fatiguedRegen(15, tc.fatigue); got != tc.want {
			t.Fatalf("fatiguedRegen(15, %d) = %d, want %d", tc.fatigue, got, tc.want)
		}
	}
}

func TestTickInjuries(t *testing.T) {
	f := &game.Fighter{
		Injuries: []game.Injury{
			{Name: "Twisted Ankle", Zone: game.ZoneLegs, Severity: game.InjuryMinor, FightsToHeal: 2},
			{Name: "Pierced Lung", Zone: game.ZoneBody, Severity: game.InjurySevere, FightsToHeal: 1},
			{Name: "Cracked Brow", Zone: game.ZoneHead, Severity: game.InjuryMinor, FightsToHeal: 0, Healed: true},
		},
	}
	tickInjuries(f)

	if f.Injuries[0].Healed || f.Injuries[0].FightsToHeal != 1 {
		t.Fatalf("minor injury = %+v", f.Injuries[0])
	}
	if !f.Injuries[1].Healed {
		t.Fatalf("severe injury did not close")
	}
	if len(f.Scars) != 1 || f.Scars[0].Zone != game.ZoneBody {
		t.Fatalf("scars = %+v, want one body scar", f.Scars)
	}
}

func TestPromotedLeague(t *testing.T) {
	cfg := testLoadedConfig()
	run := &game.Run{League: "dust"}

	run.FightsWon = 2
	if got := promotedLeague(run, cfg); got != "" {
		t.Fatalf("promoted at 2 wins to %q", got)
	}
	run.FightsWon = 3
	if got := promotedLeague(run, cfg); got != "bronze" {
		t.Fatalf("promotion = %q, want bronze", got)
	}

	// Far more wins than tiers pins the run to the top league.
	run.League = "gold"
	run.FightsWon = 40
	if got := promotedLeague(run, cfg); got != "champions" {
		t.Fatalf("promotion = %q, want champions", got)
	}

	// Never demote, even when the win count says a lower tier.
	run.League = "champions"
	run.FightsWon = 3
	if got := promotedLeague(run, cfg); got != "" {
		t.Fatalf("demotion to %q", got)
	}
}
