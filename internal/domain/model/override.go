package model

import (
	"context"
	"time"
)

// Override carries per-model admin state layered over the static registry:
// the enabled flag, a display label and pricing. A model without an override
// row is enabled with its identifier as label and no pricing.
type Override struct {
	ID            uint
	ModelID       string
	ProviderName  string
	Label         string
	Enabled       bool
	PricingInput  *float64 // price per 1M input tokens
	PricingOutput *float64 // price per 1M output tokens
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OverrideRepository abstracts persistence for model overrides.
type OverrideRepository interface {
	FindByModelID(ctx context.Context, modelID string) (*Override, error)
	FindAll(ctx context.Context) ([]*Override, error)
	Create(ctx context.Context, override *Override) error
	Update(ctx context.Context, override *Override) error
}
