package provider

import (
	"context"
	"time"
)

// Provider is an upstream LLM vendor account: base URL plus credentials. The
// API key is encrypted at rest; only a short hint is ever returned to callers.
type Provider struct {
	ID              uint
	Name            string // stable key, e.g. "gemini", "ovh"
	Label           string // display name
	BaseURL         string
	EncryptedAPIKey string
	APIKeyHint      string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsConfigured reports whether the provider can be called: it needs an
// endpoint and stored credentials.
func (p *Provider) IsConfigured() bool {
	return p != nil && p.BaseURL != "" && p.EncryptedAPIKey != ""
}

// Repository abstracts persistence for providers.
type Repository interface {
	FindByName(ctx context.Context, name string) (*Provider, error)
	FindAllOrdered(ctx context.Context) ([]*Provider, error)
	Create(ctx context.Context, provider *Provider) error
	Update(ctx context.Context, provider *Provider) error
	Count(ctx context.Context) (int64, error)
}
