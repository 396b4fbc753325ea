package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

type fakeOverrideRepo struct {
	rows    map[string]*Override
	nextID  uint
	creates int
	updates int
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{rows: make(map[string]*Override), nextID: 1}
}

func (r *fakeOverrideRepo) FindByModelID(ctx context.Context, modelID string) (*Override, error) {
	row, ok := r.rows[modelID]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *fakeOverrideRepo) FindAll(ctx context.Context) ([]*Override, error) {
	out := make([]*Override, 0, len(r.rows))
	for _, row := range r.rows {
		copied := *row
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeOverrideRepo) Create(ctx context.Context, override *Override) error {
	override.ID = r.nextID
	r.nextID++
	r.creates++
	copied := *override
	r.rows[override.ModelID] = &copied
	return nil
}

func (r *fakeOverrideRepo) Update(ctx context.Context, override *Override) error {
	r.updates++
	copied := *override
	r.rows[override.ModelID] = &copied
	return nil
}

func newTestCatalog() (*CatalogService, *fakeOverrideRepo) {
	repo := newFakeOverrideRepo()
	return NewCatalogService(NewRegistry(""), repo), repo
}

func TestIsModelEnabled(t *testing.T) {
	catalog, repo := newTestCatalog()
	ctx := context.Background()

	enabled, err := catalog.IsModelEnabled(ctx, "gemini-2.5-flash")
	require.NoError(t, err)
	assert.True(t, enabled, "model without an override row is enabled")

	repo.rows["gemini-2.5-flash"] = &Override{ModelID: "gemini-2.5-flash", Enabled: false}
	enabled, err = catalog.IsModelEnabled(ctx, "gemini-2.5-flash")
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = catalog.IsModelEnabled(ctx, "claude-3-opus")
	require.NoError(t, err)
	assert.False(t, enabled, "unknown model is never enabled")
}

func TestToggleModelCreatesDisabledRow(t *testing.T) {
	catalog, repo := newTestCatalog()
	ctx := context.Background()

	enabled, err := catalog.ToggleModel(ctx, "gemini-2.5-flash")
	require.NoError(t, err)
	assert.False(t, enabled, "first toggle of a default-enabled model disables it")
	assert.Equal(t, 1, repo.creates)

	row := repo.rows["gemini-2.5-flash"]
	require.NotNil(t, row)
	assert.Equal(t, "gemini", row.ProviderName)
	assert.False(t, row.Enabled)

	enabled, err = catalog.ToggleModel(ctx, "gemini-2.5-flash")
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, 1, repo.updates)
}

func TestToggleUnknownModel(t *testing.T) {
	catalog, _ := newTestCatalog()

	_, err := catalog.ToggleModel(context.Background(), "claude-3-opus")
	require.Error(t, err)
	assert.Equal(t, platformerrors.ErrorTypeNotFound, platformerrors.TypeOf(err))
}

func TestUpdatePricingCreatesThenUpdates(t *testing.T) {
	catalog, repo := newTestCatalog()
	ctx := context.Background()

	in := 0.30
	out := 2.50
	override, err := catalog.UpdatePricing(ctx, "gemini-2.5-flash", UpdatePricingInput{
		Label:         "Gemini 2.5 Flash",
		PricingInput:  &in,
		PricingOutput: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.creates)
	assert.True(t, override.Enabled, "pricing update on a missing row keeps the model enabled")
	assert.Equal(t, "Gemini 2.5 Flash", override.Label)
	require.NotNil(t, override.PricingInput)
	assert.Equal(t, 0.30, *override.PricingInput)

	in2 := 0.15
	override, err = catalog.UpdatePricing(ctx, "gemini-2.5-flash", UpdatePricingInput{PricingInput: &in2})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, "Gemini 2.5 Flash", override.Label, "empty label leaves the stored label alone")
	require.NotNil(t, override.PricingInput)
	assert.Equal(t, 0.15, *override.PricingInput)
	assert.Nil(t, override.PricingOutput)
}

func TestUpdatePricingUnknownModel(t *testing.T) {
	catalog, _ := newTestCatalog()

	_, err := catalog.UpdatePricing(context.Background(), "claude-3-opus", UpdatePricingInput{})
	require.Error(t, err)
	assert.Equal(t, platformerrors.ErrorTypeNotFound, platformerrors.TypeOf(err))
}

func TestOverridesByModelID(t *testing.T) {
	catalog, repo := newTestCatalog()
	repo.rows["gpt-oss-120b"] = &Override{ModelID: "gpt-oss-120b", Enabled: false}

	overrides, err := catalog.OverridesByModelID(context.Background())
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	require.NotNil(t, overrides["gpt-oss-120b"])
	assert.False(t, overrides["gpt-oss-120b"].Enabled)
}
