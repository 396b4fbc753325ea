package modelrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/dbschema"
)

// Repository persists per-model overrides in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

var _ model.OverrideRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByModelID(ctx context.Context, modelID string) (*model.Override, error) {
	var row dbschema.ModelOverride
	if err := r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query model override: %w", err)
	}
	return row.EtoD(), nil
}

func (r *Repository) FindAll(ctx context.Context) ([]*model.Override, error) {
	var rows []dbschema.ModelOverride
	if err := r.db.WithContext(ctx).
		Order("model_id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list model overrides: %w", err)
	}

	overrides := make([]*model.Override, 0, len(rows))
	for i := range rows {
		overrides = append(overrides, rows[i].EtoD())
	}
	return overrides, nil
}

func (r *Repository) Create(ctx context.Context, o *model.Override) error {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	row := dbschema.NewSchemaModelOverride(o)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create model override: %w", err)
	}
	o.ID = row.ID
	return nil
}

func (r *Repository) Update(ctx context.Context, o *model.Override) error {
	o.UpdatedAt = time.Now()

	row := dbschema.NewSchemaModelOverride(o)
	result := r.db.WithContext(ctx).
		Model(&dbschema.ModelOverride{}).
		Where("id = ?", row.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if result.Error != nil {
		return fmt.Errorf("update model override: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("model override %d not found", o.ID)
	}
	return nil
}
