package service

import (
	"errors"
	"testing"

	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/config"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

type mockRunRepo struct {
	active  *game.Run
	created []*game.Run
	users   map[string]*game.User

	createErr error
}

func (m *mockRunRepo) CreateRun(r *game.Run) error {
	if m.createErr != nil {
		return m.createErr
	}
	r.ID = uint(len(m.created) + 1)
	m.created = append(m.created, r)
	return nil
}

func (m *mockRunRepo) FindActiveRunByOwner(email string) (*game.Run, error) {
	return m.active, nil
}

func (m *mockRunRepo) GetStatsByEmail(email string) (*game.User, error) {
	if m.users == nil {
		m.users = map[string]*game.User{}
	}
	u, ok := m.users[email]
	if !ok {
		u = &game.User{Email: email}
		m.users[email] = u
	}
	return u, nil
}

func (m *mockRunRepo) SaveUser(u *game.User) error {
	if m.users == nil {
		m.users = map[string]*game.User{}
	}
	m.users[u.Email] = u
	return nil
}

func testLoadedConfig() *config.LoadedConfig {
	return &config.LoadedConfig{
		Leagues: []string{"dust", "bronze", "silver", "gold", "champions"},
	}
}

func TestCreateRunBuildsStarter(t *testing.T) {
	repo := &mockRunRepo{}
	tun := balance.Default()
	run, err := CreateRun(repo, CreateRunRequest{
		Email:       "owner@example.com",
		OwnerName:   "Owner",
		FighterName: "Atrox Coldiron",
	}, rng.New(1), tun, testLoadedConfig())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	if run.Status != game.RunActive {
		t.Fatalf("status = %q, want active", run.Status)
	}
	if run.League != "dust" {
		t.Fatalf("league = %q, want dust", run.League)
	}
	if run.Gold != tun.Starter.Gold {
		t.Fatalf("gold = %d, want %d", run.Gold, tun.Starter.Gold)
	}
	if len(run.Code) != codeLength {
		t.Fatalf("code %q has length %d, want %d", run.Code, len(run.Code), codeLength)
	}
	if run.RunUUID == "" {
		t.Fatalf("run uuid not set")
	}
	if len(run.Fighters) != 1 {
		t.Fatalf("fighters = %d, want 1", len(run.Fighters))
	}
	f := run.Fighters[0]
	if f.Name != "Atrox Coldiron" || f.Key != "atrox_coldiron" {
		t.Fatalf("fighter identity = %q/%q", f.Name, f.Key)
	}
	if f.Level != 1 || f.Status != game.FighterHealthy {
		t.Fatalf("fighter level/status = %d/%q", f.Level, f.Status)
	}
	if f.Base != tun.Starter.Stats || f.Current != tun.Starter.Stats {
		t.Fatalf("starter stats not applied")
	}
	if f.DamageMin != tun.Starter.DamageMin || f.DamageMax != tun.Starter.DamageMax {
		t.Fatalf("starter damage = [%d,%d]", f.DamageMin, f.DamageMax)
	}
	if repo.users["owner@example.com"].RunsPlayed != 1 {
		t.Fatalf("runs played = %d, want 1", repo.users["owner@example.com"].RunsPlayed)
	}
}

func TestCreateRunGeneratesNameWhenBlank(t *testing.T) {
	repo := &mockRunRepo{}
	run, err := CreateRun(repo, CreateRunRequest{Email: "owner@example.com"},
		rng.New(7), balance.Default(), testLoadedConfig())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if run.Fighters[0].Name == "" {
		t.Fatalf("expected a generated fighter name")
	}
	if run.Fighters[0].Key == "" {
		t.Fatalf("expected a derived fighter key")
	}
}

func TestCreateRunRejectsSecondActive(t *testing.T) {
	repo := &mockRunRepo{active: &game.Run{Status: game.RunActive}}
	_, err := CreateRun(repo, CreateRunRequest{Email: "owner@example.com", FighterName: "Atrox"},
		rng.New(1), balance.Default(), testLoadedConfig())
	if !errors.Is(err, ErrRunAlreadyActive) {
		t.Fatalf("err = %v, want ErrRunAlreadyActive", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("run was created despite an active one")
	}
}

func TestCreateRunValidation(t *testing.T) {
	cases := []struct {
		name    string
		req     CreateRunRequest
		wantErr error
	}{
		{"missing email", CreateRunRequest{FighterName: "Atrox"}, ErrMissingOwner},
		{"name too short", CreateRunRequest{Email: "o@e.com", FighterName: "Ax"}, ErrInvalidFighterName},
		{"name too long", CreateRunRequest{Email: "o@e.com", FighterName: "Abcdefghijklmnopqrstuvwxy"}, ErrInvalidFighterName},
		{"name with digits", CreateRunRequest{Email: "o@e.com", FighterName: "Atrox99"}, ErrInvalidFighterName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRunRepo{}
			_, err := CreateRun(repo, tc.req, rng.New(1), balance.Default(), testLoadedConfig())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}

	t.Run("apostrophes and spaces are fine", func(t *testing.T) {
		repo := &mockRunRepo{}
		run, err := CreateRun(repo, CreateRunRequest{Email: "o@e.com", FighterName: "Mort d'Arena"},
			rng.New(1), balance.Default(), testLoadedConfig())
		if err != nil {
			t.Fatalf("CreateRun: %v", err)
		}
		if run.Fighters[0].Name != "Mort d'Arena" {
			t.Fatalf("name = %q", run.Fighters[0].Name)
		}
	})
}
