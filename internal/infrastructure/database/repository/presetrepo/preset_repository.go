package presetrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/preset"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/dbschema"
)

// Repository persists presets in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

var _ preset.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*preset.Preset, error) {
	var row dbschema.Preset
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query preset: %w", err)
	}
	return row.EtoD(), nil
}

func (r *Repository) FindAllOrdered(ctx context.Context) ([]*preset.Preset, error) {
	var rows []dbschema.Preset
	if err := r.db.WithContext(ctx).
		Order("is_active DESC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}

	presets := make([]*preset.Preset, 0, len(rows))
	for i := range rows {
		presets = append(presets, rows[i].EtoD())
	}
	return presets, nil
}

func (r *Repository) FindActive(ctx context.Context) (*preset.Preset, error) {
	var row dbschema.Preset
	if err := r.db.WithContext(ctx).
		Where("is_active = true").
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query active preset: %w", err)
	}
	return row.EtoD(), nil
}

func (r *Repository) Create(ctx context.Context, p *preset.Preset) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	row := dbschema.NewSchemaPreset(p)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create preset: %w", err)
	}
	p.ID = row.ID
	return nil
}

func (r *Repository) Update(ctx context.Context, p *preset.Preset) error {
	p.UpdatedAt = time.Now()

	row := dbschema.NewSchemaPreset(p)
	result := r.db.WithContext(ctx).
		Model(&dbschema.Preset{}).
		Where("id = ?", row.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if result.Error != nil {
		return fmt.Errorf("update preset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("preset %d not found", p.ID)
	}
	return nil
}

func (r *Repository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Preset{})
	if result.Error != nil {
		return fmt.Errorf("delete preset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("preset %d not found", id)
	}
	return nil
}

// Activate flips the active flag to the given preset inside one transaction so
// there is never more than one active preset.
func (r *Repository) Activate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if err := tx.Model(&dbschema.Preset{}).
			Where("is_active = true AND id <> ?", id).
			Updates(map[string]any{"is_active": false, "updated_at": now}).Error; err != nil {
			return fmt.Errorf("deactivate presets: %w", err)
		}

		result := tx.Model(&dbschema.Preset{}).
			Where("id = ?", id).
			Updates(map[string]any{"is_active": true, "updated_at": now})
		if result.Error != nil {
			return fmt.Errorf("activate preset: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("preset %d not found", id)
		}
		return nil
	})
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&dbschema.Preset{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count presets: %w", err)
	}
	return count, nil
}
