package service

import (
	"errors"
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/config"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/keys"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub002/internal/namegen"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

// RunRepo is the minimal repository interface required by CreateRun.
// Using a small interface simplifies testing.
type RunRepo interface {
	CreateRun(r *game.Run) error
	FindActiveRunByOwner(email string) (*game.Run, error)
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
}

type CreateRunRequest struct {
	Email     string
	OwnerName string
	// FighterName is optional; empty mints a generated recruit name.
	FighterName string
}

var (
	ErrMissingOwner       = errors.New("run owner email is required")
	ErrRunAlreadyActive   = errors.New("an active run already exists for this account")
	ErrInvalidFighterName = errors.New("fighter name must be 3-24 letters")
)

var fighterNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z' -]{2,23}$`)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// generateRunCode creates a short alphanumeric code for sharing runs.
func generateRunCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

// CreateRun starts a fresh career: one starter fighter, the starter
// purse and the bottom league. The rng only draws when the caller left
// the fighter name blank.
func CreateRun(repo RunRepo, req CreateRunRequest, r *rng.RNG, tun *balance.Tuning, cfg *config.LoadedConfig) (*game.Run, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, ErrMissingOwner
	}
	existing, err := repo.FindActiveRunByOwner(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRunAlreadyActive
	}

	name := strings.TrimSpace(req.FighterName)
	if name == "" {
		name = namegen.FighterName(r)
	} else if !fighterNameRegex.MatchString(name) {
		return nil, ErrInvalidFighterName
	}

	starter := tun.Starter
	fighter := game.Fighter{
		Name:      name,
		Key:       keys.FighterKey(name),
		Level:     1,
		Status:    game.FighterHealthy,
		Base:      starter.Stats,
		Current:   starter.Stats,
		DamageMin: starter.DamageMin,
		DamageMax: starter.DamageMax,
	}

	run := &game.Run{
		RunUUID:    uuid.NewString(),
		Code:       generateRunCode(),
		OwnerEmail: req.Email,
		OwnerName:  req.OwnerName,
		League:     cfg.Leagues[0],
		Gold:       starter.Gold,
		Status:     game.RunActive,
		Fighters:   []game.Fighter{fighter},
		Message:    name + " steps into the dust league.",
	}
	if err := repo.CreateRun(run); err != nil {
		return nil, err
	}

	// Best-effort aggregate bump; the run itself is already committed.
	if u, err := repo.GetStatsByEmail(req.Email); err == nil {
		u.RunsPlayed++
		if err := repo.SaveUser(u); err != nil {
			logging.Error("failed to bump runs played", err, logging.Fields{"email_set": u.Email != ""})
		}
	}
	return run, nil
}
