package memory

import (
	"context"
	"time"
)

// DefaultPageSize is the admin listing page size.
const DefaultPageSize = 25

// Item is one confirmed long-term memory shown in the admin console.
type Item struct {
	ID        uint
	UserID    string
	Content   string
	Source    string
	CreatedAt time.Time
}

// Repository abstracts persistence for confirmed memories.
type Repository interface {
	FindPage(ctx context.Context, limit, offset int) ([]*Item, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uint) (*Item, error)
	DeleteByID(ctx context.Context, id uint) error
}
