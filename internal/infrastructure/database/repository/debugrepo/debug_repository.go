package debugrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/debuglog"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/dbschema"
)

// Repository persists debug log summary rows in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

var _ debuglog.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, entry *debuglog.Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	row := dbschema.NewSchemaDebugLog(entry)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create debug log: %w", err)
	}
	entry.ID = row.ID
	return nil
}

func (r *Repository) FindByDebugID(ctx context.Context, debugID string) (*debuglog.Entry, error) {
	var row dbschema.DebugLog
	if err := r.db.WithContext(ctx).
		Where("debug_id = ?", debugID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query debug log: %w", err)
	}
	return row.EtoD(), nil
}

func (r *Repository) FindRecent(ctx context.Context, limit int) ([]*debuglog.Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []dbschema.DebugLog
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list debug logs: %w", err)
	}

	entries := make([]*debuglog.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].EtoD())
	}
	return entries, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&dbschema.DebugLog{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count debug logs: %w", err)
	}
	return count, nil
}

func (r *Repository) ClearAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&dbschema.DebugLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("clear debug logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
