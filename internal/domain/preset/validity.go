package preset

import (
	"context"
	"fmt"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/provider"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

// ProviderDirectory is the provider lookup needed by the validity checker.
type ProviderDirectory interface {
	FindByName(ctx context.Context, name string) (*provider.Provider, error)
}

// ModelDirectory answers whether a model is known and enabled.
type ModelDirectory interface {
	IsModelEnabled(ctx context.Context, modelID string) (bool, error)
}

// Validity is the result of checking a preset against the provider and model
// directories. Valid is true iff Reason is empty.
type Validity struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidityChecker decides whether a preset is activatable and testable right
// now, and if not, why. It gates activation and test starts.
type ValidityChecker struct {
	providers ProviderDirectory
	models    ModelDirectory
}

func NewValidityChecker(providers ProviderDirectory, models ModelDirectory) *ValidityChecker {
	return &ValidityChecker{providers: providers, models: models}
}

// Check returns the validity verdict for a preset. Reasons are ordered: both
// fields missing, missing provider, missing model, unknown provider,
// unconfigured provider, unknown or disabled model.
func (c *ValidityChecker) Check(ctx context.Context, p *Preset) (Validity, error) {
	reason, err := c.invalidReason(ctx, p)
	if err != nil {
		return Validity{}, err
	}
	return Validity{Valid: reason == "", Reason: reason}, nil
}

func (c *ValidityChecker) invalidReason(ctx context.Context, p *Preset) (string, error) {
	if p.ProviderName == "" || p.Model == "" {
		if p.ProviderName == "" && p.Model == "" {
			return "no provider or model configured", nil
		}
		if p.ProviderName == "" {
			return "no provider defined", nil
		}
		return "no model defined", nil
	}

	prov, err := c.providers.FindByName(ctx, p.ProviderName)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "find provider")
	}
	if prov == nil {
		return fmt.Sprintf("provider %q not found", p.ProviderName), nil
	}
	if !prov.IsConfigured() {
		return fmt.Sprintf("provider %q not configured", prov.Label), nil
	}

	enabled, err := c.models.IsModelEnabled(ctx, p.Model)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "check model")
	}
	if !enabled {
		return fmt.Sprintf("model %q unknown or disabled", p.Model), nil
	}

	return "", nil
}
