package api

import (
	"time"

	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/config"
	"github.com/LachyC123/bloodline-arena-sub002/internal/service"
	"github.com/LachyC123/bloodline-arena-sub002/internal/storage"
)

// ArenaHandler groups all run and fight HTTP handlers.
type ArenaHandler struct {
	repo          storage.Repository
	sessions      *service.Sessions
	cfg           *config.LoadedConfig
	tun           *balance.Tuning
	actionTimeout time.Duration
}

// NewArenaHandler creates an ArenaHandler wired to the repository, the
// live fight session registry and the loaded configuration.
func NewArenaHandler(repo storage.Repository, sessions *service.Sessions, cfg *config.LoadedConfig, tun *balance.Tuning, actionTimeout time.Duration) *ArenaHandler {
	return &ArenaHandler{
		repo:          repo,
		sessions:      sessions,
		cfg:           cfg,
		tun:           tun,
		actionTimeout: actionTimeout,
	}
}
