package storage

import (
	"strings"

	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByKey maps enemy key -> config definition (stats, archetype,
	// damage). Config is the source of truth for everything but identity.
	configByKey map[string]game.EnemyTemplate
}

func NewSQLiteRepository(db *gorm.DB, configEnemies []game.EnemyTemplate) Repository {
	m := make(map[string]game.EnemyTemplate, len(configEnemies))
	for _, e := range configEnemies {
		m[strings.ToLower(e.Key)] = e
	}
	return &sqliteRepository{db: db, configByKey: m}
}

func (r *sqliteRepository) overlayConfig(e *game.EnemyTemplate) {
	if r.configByKey == nil {
		return
	}
	if conf, ok := r.configByKey[strings.ToLower(e.Key)]; ok {
		e.Title = conf.Title
		e.Archetype = conf.Archetype
		e.Level = conf.Level
		e.Stats = conf.Stats
		e.DamageMin = conf.DamageMin
		e.DamageMax = conf.DamageMax
	}
}

func (r *sqliteRepository) GetEnemies() ([]game.EnemyTemplate, error) {
	var enemies []game.EnemyTemplate
	if err := r.db.Find(&enemies).Error; err != nil {
		return nil, err
	}
	for i := range enemies {
		r.overlayConfig(&enemies[i])
	}
	return enemies, nil
}

func (r *sqliteRepository) GetEnemiesByLeague(league string) ([]game.EnemyTemplate, error) {
	var enemies []game.EnemyTemplate
	if err := r.db.Where("league = ?", strings.ToLower(league)).Find(&enemies).Error; err != nil {
		return nil, err
	}
	for i := range enemies {
		r.overlayConfig(&enemies[i])
	}
	return enemies, nil
}

func (r *sqliteRepository) GetEnemyByKey(key string) (*game.EnemyTemplate, error) {
	var e game.EnemyTemplate
	if err := r.db.Where("key = ?", strings.ToLower(key)).First(&e).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	r.overlayConfig(&e)
	return &e, nil
}

func (r *sqliteRepository) CreateRun(run *game.Run) error {
	return r.db.Create(run).Error
}

func (r *sqliteRepository) GetRunByID(id uint) (*game.Run, error) {
	var run game.Run
	err := r.db.Preload("Fighters.Injuries").Preload("Fighters.Scars").First(&run, id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *sqliteRepository) FindRunByCode(code string) (*game.Run, error) {
	var run game.Run
	err := r.db.Preload("Fighters.Injuries").Preload("Fighters.Scars").
		Where("code = ?", code).First(&run).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *sqliteRepository) FindActiveRunByOwner(email string) (*game.Run, error) {
	var run game.Run
	err := r.db.Preload("Fighters.Injuries").Preload("Fighters.Scars").
		Where("owner_email = ? AND status = ?", email, string(game.RunActive)).
		First(&run).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// GetPublicRuns returns the most renowned active runs for the spectator
// list.
func (r *sqliteRepository) GetPublicRuns(limit int) ([]game.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []game.Run
	if err := r.db.Preload("Fighters").
		Where("status = ?", string(game.RunActive)).
		Order("renown DESC").Order("created_at DESC").
		Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *sqliteRepository) UpdateRun(run *game.Run) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(run).Error
}

func (r *sqliteRepository) SaveFighter(f *game.Fighter) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(f).Error
}

func (r *sqliteRepository) CreateFightRecord(rec *game.FightRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetFightRecords(runID uint) ([]game.FightRecord, error) {
	var recs []game.FightRecord
	if err := r.db.Where("run_id = ?", runID).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// UpsertUser creates the profile row on first login. An existing row
// keeps its UUID and any display name the player chose themselves.
func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
			return r.db.Create(&u).Error
		}
		return err
	}
	if u.PlayerName == "" {
		u.PlayerName = name
	}
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

// GetTopPlayers returns top N players ordered by BestRenown desc, then
// FightsWon desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("best_renown DESC").
		Order("fights_won DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) RecordFightOutcome(email string, won bool) error {
	u, err := r.GetStatsByEmail(email)
	if err != nil {
		return err
	}
	if won {
		u.FightsWon++
	} else {
		u.FightsLost++
	}
	return r.db.Save(u).Error
}

func (r *sqliteRepository) UpdateStatsOnRunEnd(run *game.Run) error {
	u, err := r.GetStatsByEmail(run.OwnerEmail)
	if err != nil {
		return err
	}
	switch run.Status {
	case game.RunFallen:
		u.RunsFallen++
	case game.RunRetired:
		u.Retirements++
	}
	if run.Renown > u.BestRenown {
		u.BestRenown = run.Renown
	}
	return r.db.Save(u).Error
}
