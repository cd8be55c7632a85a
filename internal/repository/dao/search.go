package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type SearchEntry struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Type      string `gorm:"not null"`
	Slug      string `gorm:"not null"`
	Label     string `gorm:"not null"`
	CreatedAt time.Time
}

type SearchDAO struct {
	db *gorm.DB
}

func NewSearchDAO(db *gorm.DB) *SearchDAO {
	return &SearchDAO{
		db: db,
	}
}

func (d *SearchDAO) FindHistory(ctx context.Context, userID uint, limit int) ([]SearchEntry, error) {
	var entries []SearchEntry
	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// RecordSelection prepends an entry, deduplicating by (type, slug) and
// trimming the history to the cap in the same transaction.
func (d *SearchDAO) RecordSelection(ctx context.Context, entry SearchEntry, cap int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND type = ? AND slug = ?", entry.UserID, entry.Type, entry.Slug).
			Delete(&SearchEntry{}).Error; err != nil {
			return err
		}

		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var stale []uint
		if err := tx.Model(&SearchEntry{}).
			Where("user_id = ?", entry.UserID).
			Order("created_at DESC, id DESC").
			Offset(cap).
			Pluck("id", &stale).Error; err != nil {
			return err
		}
		if len(stale) == 0 {
			return nil
		}
		return tx.Delete(&SearchEntry{}, stale).Error
	})
}
