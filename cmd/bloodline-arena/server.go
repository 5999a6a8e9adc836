package main

import (
	"time"

	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/config"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub002/internal/service"
)

// startTimeoutScanner sweeps expired fight sessions and delegates each to
// service.HandleTimedOutFight via ScanExpiredFights.
func startTimeoutScanner(repo service.TimeoutRepo, sessions *service.Sessions, cfg *config.LoadedConfig, tun *balance.Tuning) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if n := service.ScanExpiredFights(repo, sessions, cfg, tun, cfg.ActionTimeout); n > 0 {
				logging.Info("auto-played timed-out fights", logging.Fields{"count": n})
			}
		}
	}()
}
