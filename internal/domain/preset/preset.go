package preset

import (
	"context"
	"time"
)

// Preset is a named bundle of provider + model + generation parameters. At
// most one preset is active across the whole system; the repository enforces
// that inside Activate.
type Preset struct {
	ID               uint
	Name             string
	ProviderName     string
	Model            string
	Temperature      float64
	TopP             float64
	TopK             *int
	MaxOutputTokens  *int
	StopSequences    []string
	StreamingEnabled bool
	ProviderOptions  ProviderOptions
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Repository abstracts persistence for presets.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*Preset, error)
	FindAllOrdered(ctx context.Context) ([]*Preset, error)
	FindActive(ctx context.Context) (*Preset, error)
	Create(ctx context.Context, preset *Preset) error
	Update(ctx context.Context, preset *Preset) error
	DeleteByID(ctx context.Context, id uint) error
	// Activate deactivates every other preset and activates the given one in a
	// single transaction.
	Activate(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
