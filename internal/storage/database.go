package storage

import (
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string, enemiesFromConfig []game.EnemyTemplate) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.EnemyTemplate{}, &game.Fighter{}, &game.Injury{}, &game.Scar{},
		&game.Run{}, &game.FightRecord{}, &game.User{},
	)
	if err != nil {
		return nil, err
	}

	// One active run per account. AutoMigrate cannot express a partial
	// unique index, so create it explicitly.
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_runs_one_active_per_owner ON runs(owner_email) WHERE status = 'active' AND deleted_at IS NULL;").Error; execErr != nil {
		return nil, execErr
	}

	seedEnemyTemplates(db, enemiesFromConfig)
	return db, nil
}

// seedEnemyTemplates inserts the identity rows for configured enemies on
// first start. Only Key/Name/League persist; stats always come from the
// config file on read.
func seedEnemyTemplates(db *gorm.DB, enemiesFromConfig []game.EnemyTemplate) {
	var count int64
	db.Model(&game.EnemyTemplate{}).Count(&count)
	if count > 0 {
		return
	}
	rows := make([]game.EnemyTemplate, 0, len(enemiesFromConfig))
	for _, e := range enemiesFromConfig {
		rows = append(rows, game.EnemyTemplate{Key: e.Key, Name: e.Name, League: e.League})
	}
	if len(rows) == 0 {
		return
	}
	if err := db.Create(&rows).Error; err != nil {
		logging.Error("failed to seed enemy templates", err, nil)
	}
}
