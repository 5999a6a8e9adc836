package main

import (
	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/config"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"
	"github.com/LachyC123/bloodline-arena-sub002/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": path, "hint": "create an arena_config.json with an 'enemy_list' array of enemy objects (key,name,title,league,archetype,level,stats,damage_min,damage_max) and optional keys: league_list, server.address, action_timeout_seconds, balance_file"})
	}
	return cfg
}

// loadTuningOrExit layers an optional balance override file over the
// embedded defaults.
func loadTuningOrExit(path string) *balance.Tuning {
	tun, err := balance.Load(path)
	if err != nil {
		logging.Fatal("Missing or invalid balance tuning", err, logging.Fields{"balance_file": path})
	}
	return tun
}

func createRepositoryOrExit(dbPath string, enemies []game.EnemyTemplate) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, enemies)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, enemies)
}
