package storage

import (
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
)

type Repository interface {
	// Enemy roster. Rows carry persisted identity; stats, archetype and
	// damage ranges are overlaid from config on every read.
	GetEnemies() ([]game.EnemyTemplate, error)
	GetEnemiesByLeague(league string) ([]game.EnemyTemplate, error)
	// GetEnemyByKey returns (nil, nil) when no such enemy exists.
	GetEnemyByKey(key string) (*game.EnemyTemplate, error)

	// Runs
	CreateRun(r *game.Run) error
	GetRunByID(id uint) (*game.Run, error)
	// FindRunByCode returns (nil, nil) when no run has the code.
	FindRunByCode(code string) (*game.Run, error)
	// FindActiveRunByOwner returns (nil, nil) when the owner has no
	// active run.
	FindActiveRunByOwner(email string) (*game.Run, error)
	GetPublicRuns(limit int) ([]game.Run, error)
	UpdateRun(r *game.Run) error

	// Fighters
	SaveFighter(f *game.Fighter) error

	// Fight history
	CreateFightRecord(rec *game.FightRecord) error
	GetFightRecords(runID uint) ([]game.FightRecord, error)

	// Users / aggregate stats
	UpsertUser(email, uuid, name string) error
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	GetTopPlayers(limit int) ([]game.User, error)
	// RecordFightOutcome bumps the per-fight win/loss tallies.
	RecordFightOutcome(email string, won bool) error
	// UpdateStatsOnRunEnd folds a finished run into the owner's
	// aggregates. Callers guard with Run.StatsCounted so a run is only
	// counted once.
	UpdateStatsOnRunEnd(r *game.Run) error
}
