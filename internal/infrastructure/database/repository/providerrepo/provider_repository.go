package providerrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/provider"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/dbschema"
)

// Repository persists providers in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

var _ provider.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByName(ctx context.Context, name string) (*provider.Provider, error) {
	var row dbschema.Provider
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query provider: %w", err)
	}
	return row.EtoD(), nil
}

func (r *Repository) FindAllOrdered(ctx context.Context) ([]*provider.Provider, error) {
	var rows []dbschema.Provider
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}

	providers := make([]*provider.Provider, 0, len(rows))
	for i := range rows {
		providers = append(providers, rows[i].EtoD())
	}
	return providers, nil
}

func (r *Repository) Create(ctx context.Context, p *provider.Provider) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	row := dbschema.NewSchemaProvider(p)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	p.ID = row.ID
	return nil
}

func (r *Repository) Update(ctx context.Context, p *provider.Provider) error {
	p.UpdatedAt = time.Now()

	row := dbschema.NewSchemaProvider(p)
	result := r.db.WithContext(ctx).
		Model(&dbschema.Provider{}).
		Where("id = ?", row.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if result.Error != nil {
		return fmt.Errorf("update provider: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("provider %d not found", p.ID)
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&dbschema.Provider{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count providers: %w", err)
	}
	return count, nil
}
