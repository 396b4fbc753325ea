package preset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/provider"
)

type stubProviderDirectory struct {
	providers map[string]*provider.Provider
}

func (d *stubProviderDirectory) FindByName(ctx context.Context, name string) (*provider.Provider, error) {
	return d.providers[name], nil
}

type stubModelDirectory struct {
	enabled map[string]bool
}

func (d *stubModelDirectory) IsModelEnabled(ctx context.Context, modelID string) (bool, error) {
	return d.enabled[modelID], nil
}

func newTestChecker() *ValidityChecker {
	providers := &stubProviderDirectory{providers: map[string]*provider.Provider{
		"gemini": {
			Name:            "gemini",
			Label:           "Google Gemini",
			BaseURL:         "https://generativelanguage.googleapis.com",
			EncryptedAPIKey: "encrypted",
		},
		"ovh": {
			Name:  "ovh",
			Label: "OVHcloud AI",
			// No base URL or key: present but not configured.
		},
	}}
	models := &stubModelDirectory{enabled: map[string]bool{
		"gemini-2.5-flash": true,
	}}
	return NewValidityChecker(providers, models)
}

func TestValidityReasonOrdering(t *testing.T) {
	checker := newTestChecker()

	tests := []struct {
		name   string
		preset Preset
		reason string
	}{
		{
			name:   "both empty",
			preset: Preset{},
			reason: "no provider or model configured",
		},
		{
			name:   "provider empty",
			preset: Preset{Model: "gemini-2.5-flash"},
			reason: "no provider defined",
		},
		{
			name:   "model empty",
			preset: Preset{ProviderName: "gemini"},
			reason: "no model defined",
		},
		{
			name:   "unknown provider",
			preset: Preset{ProviderName: "mistral", Model: "gemini-2.5-flash"},
			reason: `provider "mistral" not found`,
		},
		{
			name:   "unconfigured provider",
			preset: Preset{ProviderName: "ovh", Model: "gemini-2.5-flash"},
			reason: `provider "OVHcloud AI" not configured`,
		},
		{
			name:   "unknown model",
			preset: Preset{ProviderName: "gemini", Model: "gemini-1.0-ultra"},
			reason: `model "gemini-1.0-ultra" unknown or disabled`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validity, err := checker.Check(context.Background(), &tt.preset)
			require.NoError(t, err)
			assert.False(t, validity.Valid)
			assert.Equal(t, tt.reason, validity.Reason)
		})
	}
}

func TestValidityValidPreset(t *testing.T) {
	checker := newTestChecker()

	validity, err := checker.Check(context.Background(), &Preset{
		ProviderName: "gemini",
		Model:        "gemini-2.5-flash",
	})
	require.NoError(t, err)
	assert.True(t, validity.Valid)
	assert.Empty(t, validity.Reason)
}

func TestValidityMissingFieldsCheckedBeforeDirectories(t *testing.T) {
	// Directories that would blow up if consulted: missing fields must
	// short-circuit before any lookup.
	checker := NewValidityChecker(nil, nil)

	validity, err := checker.Check(context.Background(), &Preset{})
	require.NoError(t, err)
	assert.Equal(t, "no provider or model configured", validity.Reason)
}
