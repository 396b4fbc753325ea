package memoryrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/memory"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/dbschema"
)

// Repository reads and prunes confirmed memories. The admin console never
// creates memories, it only inspects and deletes them.
type Repository struct {
	db *gorm.DB
}

var _ memory.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindPage(ctx context.Context, limit, offset int) ([]*memory.Item, error) {
	if limit <= 0 {
		limit = memory.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var rows []dbschema.MemoryItem
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}

	items := make([]*memory.Item, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].EtoD())
	}
	return items, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&dbschema.MemoryItem{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count memories: %w", err)
	}
	return count, nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*memory.Item, error) {
	var row dbschema.MemoryItem
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query memory: %w", err)
	}
	return row.EtoD(), nil
}

func (r *Repository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.MemoryItem{})
	if result.Error != nil {
		return fmt.Errorf("delete memory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("memory %d not found", id)
	}
	return nil
}
