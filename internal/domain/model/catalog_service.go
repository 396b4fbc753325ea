package model

import (
	"context"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

// CatalogService combines the static capability registry with the persisted
// per-model overrides. It is the "known, enabled model" authority used by the
// preset validity checker and the admin model endpoints.
type CatalogService struct {
	registry  *Registry
	overrides OverrideRepository
}

func NewCatalogService(registry *Registry, overrides OverrideRepository) *CatalogService {
	return &CatalogService{registry: registry, overrides: overrides}
}

// Registry exposes the underlying capability directory.
func (s *CatalogService) Registry() *Registry {
	return s.registry
}

// IsModelEnabled reports whether the model is known to the registry and not
// disabled by an override. Absent override rows count as enabled.
func (s *CatalogService) IsModelEnabled(ctx context.Context, modelID string) (bool, error) {
	if !s.registry.IsKnownModel(modelID) {
		return false, nil
	}

	override, err := s.overrides.FindByModelID(ctx, modelID)
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load model override")
	}
	if override == nil {
		return true, nil
	}
	return override.Enabled, nil
}

// OverridesByModelID loads every override row keyed by model identifier, for
// merging into a catalog listing in one query.
func (s *CatalogService) OverridesByModelID(ctx context.Context) (map[string]*Override, error) {
	rows, err := s.overrides.FindAll(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load model overrides")
	}

	result := make(map[string]*Override, len(rows))
	for _, row := range rows {
		result[row.ModelID] = row
	}
	return result, nil
}

// ToggleModel flips the enabled flag for a model, creating the override row on
// first use. Returns the resulting enabled state.
func (s *CatalogService) ToggleModel(ctx context.Context, modelID string) (bool, error) {
	if !s.registry.IsKnownModel(modelID) {
		return false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "model not found in capability registry", nil)
	}

	override, err := s.overrides.FindByModelID(ctx, modelID)
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load model override")
	}

	if override == nil {
		caps := s.registry.GetCapabilities(modelID)
		override = &Override{
			ModelID:      modelID,
			ProviderName: caps.Provider,
			Label:        modelID,
			// First toggle of a default-enabled model disables it.
			Enabled: false,
		}
		if err := s.overrides.Create(ctx, override); err != nil {
			return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create model override")
		}
		return override.Enabled, nil
	}

	override.Enabled = !override.Enabled
	if err := s.overrides.Update(ctx, override); err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "update model override")
	}
	return override.Enabled, nil
}

// UpdatePricingInput captures the label and pricing fields of a pricing update.
type UpdatePricingInput struct {
	Label         string
	PricingInput  *float64
	PricingOutput *float64
}

// UpdatePricing sets label and per-1M-token prices for a model, creating the
// override row (enabled) when missing.
func (s *CatalogService) UpdatePricing(ctx context.Context, modelID string, input UpdatePricingInput) (*Override, error) {
	if !s.registry.IsKnownModel(modelID) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "model not found in capability registry", nil)
	}

	override, err := s.overrides.FindByModelID(ctx, modelID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load model override")
	}

	created := false
	if override == nil {
		caps := s.registry.GetCapabilities(modelID)
		override = &Override{
			ModelID:      modelID,
			ProviderName: caps.Provider,
			Label:        modelID,
			Enabled:      true,
		}
		created = true
	}

	if input.Label != "" {
		override.Label = input.Label
	}
	override.PricingInput = input.PricingInput
	override.PricingOutput = input.PricingOutput

	if created {
		err = s.overrides.Create(ctx, override)
	} else {
		err = s.overrides.Update(ctx, override)
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "save model override")
	}
	return override, nil
}

// ChatModelsByProvider groups non-embedding model identifiers under their provider.
func (s *CatalogService) ChatModelsByProvider() map[string][]string {
	result := make(map[string][]string)
	for _, modelID := range s.registry.KnownModels() {
		caps := s.registry.GetCapabilities(modelID)
		if caps.Type != "embedding" {
			result[caps.Provider] = append(result[caps.Provider], modelID)
		}
	}
	return result
}

// FullCapabilities returns the capability map for every known model.
func (s *CatalogService) FullCapabilities() map[string]Capabilities {
	result := make(map[string]Capabilities)
	for _, modelID := range s.registry.KnownModels() {
		result[modelID] = s.registry.GetCapabilities(modelID)
	}
	return result
}
