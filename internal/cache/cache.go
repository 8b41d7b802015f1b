// Package cache is the best-effort durable local cache behind the task
// store: a SQLite file holding the last {tasks, history} snapshot plus the
// goals blob. It is a fallback source for hydration, not a source of truth;
// the remote task API wins whenever it is reachable.
package cache

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskdeck/taskdeck/internal/errs"
	"github.com/taskdeck/taskdeck/internal/goals"
	"github.com/taskdeck/taskdeck/internal/models"
)

// Cache wraps the SQLite handle.
type Cache struct {
	db *gorm.DB
}

// goalsRow is the single-row table backing the goals snapshot.
type goalsRow struct {
	ID         uint `gorm:"primarykey"`
	WeeklyGoal int
	StreakDays int
	LastDoneAt *time.Time
}

func (goalsRow) TableName() string { return "goals" }

// Open opens (creating if needed) the cache database at path and runs
// migrations.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errs.Wrap(err, "failed to create cache directory")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to open cache database")
	}

	if err := db.AutoMigrate(&models.Task{}, &models.HistoryEntry{}, &goalsRow{}); err != nil {
		return nil, errs.Wrap(err, "failed to migrate cache schema")
	}

	return &Cache{db: db}, nil
}

// Save writes the whole {tasks, history} snapshot in one transaction,
// replacing whatever was cached before. Slice order is preserved via the
// position column.
func (c *Cache) Save(tasks []models.Task, history []models.HistoryEntry) error {
	err := c.db.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := wipe.Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := wipe.Delete(&models.HistoryEntry{}).Error; err != nil {
			return err
		}

		if len(tasks) > 0 {
			rows := make([]models.Task, len(tasks))
			copy(rows, tasks)
			for i := range rows {
				rows[i].Position = i
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(history) > 0 {
			rows := make([]models.HistoryEntry, len(history))
			copy(rows, history)
			for i := range rows {
				rows[i].Position = i
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return errs.Wrap(err, "failed to save snapshot")
}

// Load returns the cached snapshot in stored order. An empty database yields
// empty slices, not an error.
func (c *Cache) Load() ([]models.Task, []models.HistoryEntry, error) {
	var tasks []models.Task
	if err := c.db.Order("position ASC").Find(&tasks).Error; err != nil {
		return nil, nil, errs.Wrap(err, "failed to load tasks")
	}
	var history []models.HistoryEntry
	if err := c.db.Order("position ASC").Find(&history).Error; err != nil {
		return nil, nil, errs.Wrap(err, "failed to load history")
	}
	return tasks, history, nil
}

// SaveGoals upserts the goals snapshot.
func (c *Cache) SaveGoals(s goals.Snapshot) error {
	row := goalsRow{
		ID:         1,
		WeeklyGoal: s.WeeklyGoal,
		StreakDays: s.StreakDays,
		LastDoneAt: s.LastDoneAt,
	}
	err := c.db.Save(&row).Error
	return errs.Wrap(err, "failed to save goals")
}

// LoadGoals returns the goals snapshot and whether one was stored.
func (c *Cache) LoadGoals() (goals.Snapshot, bool, error) {
	var row goalsRow
	err := c.db.First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return goals.Snapshot{}, false, nil
	}
	if err != nil {
		return goals.Snapshot{}, false, errs.Wrap(err, "failed to load goals")
	}
	return goals.Snapshot{
		WeeklyGoal: row.WeeklyGoal,
		StreakDays: row.StreakDays,
		LastDoneAt: row.LastDoneAt,
	}, true, nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
