package provider

import (
	"context"
	"strings"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/crypto"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

// Service owns provider credential management. API keys are encrypted with the
// configured secret before they reach the repository.
type Service struct {
	repo   Repository
	secret string
}

func NewService(repo Repository, secret string) *Service {
	return &Service{repo: repo, secret: secret}
}

// UpsertInput carries the mutable provider fields. An empty APIKey leaves the
// stored credentials untouched.
type UpsertInput struct {
	Label   string
	BaseURL string
	APIKey  string
	Active  *bool
}

// FindByName returns the provider for a name, nil when absent.
func (s *Service) FindByName(ctx context.Context, name string) (*Provider, error) {
	p, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "find provider")
	}
	return p, nil
}

// FindAllOrdered lists providers in display order.
func (s *Service) FindAllOrdered(ctx context.Context) ([]*Provider, error) {
	providers, err := s.repo.FindAllOrdered(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list providers")
	}
	return providers, nil
}

// Upsert creates or updates a provider identified by name.
func (s *Service) Upsert(ctx context.Context, name string, input UpsertInput) (*Provider, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "provider name is required", nil)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "find provider")
	}

	target := existing
	if target == nil {
		target = &Provider{Name: name, Label: name, Active: true}
	}

	if input.Label != "" {
		target.Label = input.Label
	}
	if input.BaseURL != "" {
		target.BaseURL = strings.TrimRight(input.BaseURL, "/")
	}
	if input.Active != nil {
		target.Active = *input.Active
	}
	if input.APIKey != "" {
		encrypted, err := crypto.EncryptString(s.secret, input.APIKey)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "encrypt provider key")
		}
		target.EncryptedAPIKey = encrypted
		target.APIKeyHint = crypto.MaskKey(input.APIKey)
	}

	if existing == nil {
		err = s.repo.Create(ctx, target)
	} else {
		err = s.repo.Update(ctx, target)
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "save provider")
	}
	return target, nil
}

// DecryptAPIKey returns the provider's plaintext API key for outbound calls.
func (s *Service) DecryptAPIKey(ctx context.Context, p *Provider) (string, error) {
	if p == nil || p.EncryptedAPIKey == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "provider has no stored credentials", nil)
	}
	key, err := crypto.DecryptString(s.secret, p.EncryptedAPIKey)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "decrypt provider key")
	}
	return key, nil
}
