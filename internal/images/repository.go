package images

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists image cache entries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get loads the entry for a product code. A missing entry returns nil
// without an error.
func (r *Repository) Get(ctx context.Context, code string) (*CacheEntry, error) {
	var entry CacheEntry
	err := r.db.WithContext(ctx).First(&entry, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert writes the entry, replacing any previous result for the code.
func (r *Repository) Upsert(ctx context.Context, entry *CacheEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			UpdateAll: true,
		}).
		Create(entry).Error
}

// EvictNotIn deletes every entry whose code is absent from activeCodes and
// returns the number removed. An empty active set clears the table.
func (r *Repository) EvictNotIn(ctx context.Context, activeCodes []string) (int, error) {
	query := r.db.WithContext(ctx)
	if len(activeCodes) > 0 {
		query = query.Where("code NOT IN ?", activeCodes)
	} else {
		query = query.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	result := query.Delete(&CacheEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// Stats counts cached entries by lookup outcome.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := r.db.WithContext(ctx).Model(&CacheEntry{}).Count(&stats.TotalEntries).Error; err != nil {
		return Stats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&CacheEntry{}).Where("found = ?", true).Count(&stats.WithImages).Error; err != nil {
		return Stats{}, err
	}
	stats.WithoutImages = stats.TotalEntries - stats.WithImages
	return stats, nil
}

// Clear drops every entry.
func (r *Repository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&CacheEntry{}).Error
}
