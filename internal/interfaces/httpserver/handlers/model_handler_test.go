package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
)

type memOverrideRepo struct {
	mu     sync.Mutex
	rows   map[string]*model.Override
	nextID uint
}

func newMemOverrideRepo() *memOverrideRepo {
	return &memOverrideRepo{rows: make(map[string]*model.Override), nextID: 1}
}

func (r *memOverrideRepo) FindByModelID(ctx context.Context, modelID string) (*model.Override, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[modelID]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *memOverrideRepo) FindAll(ctx context.Context) ([]*model.Override, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Override, 0, len(r.rows))
	for _, row := range r.rows {
		copied := *row
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memOverrideRepo) Create(ctx context.Context, override *model.Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	override.ID = r.nextID
	r.nextID++
	copied := *override
	r.rows[override.ModelID] = &copied
	return nil
}

func (r *memOverrideRepo) Update(ctx context.Context, override *model.Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *override
	r.rows[override.ModelID] = &copied
	return nil
}

func newModelRouter(repo model.OverrideRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	catalog := model.NewCatalogService(model.NewRegistry(""), repo)
	handler := NewModelHandler(catalog)

	router := gin.New()
	router.GET("/models", handler.List)
	router.POST("/models/:id/toggle", handler.Toggle)
	router.PUT("/models/:id/pricing", handler.UpdatePricing)
	return router
}

func floatPtr(v float64) *float64 { return &v }

func listModels(t *testing.T, router *gin.Engine) map[string]map[string]any {
	t.Helper()

	rec := doRequest(router, http.MethodGet, "/models", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Models []map[string]any `json:"models"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	byID := make(map[string]map[string]any, len(body.Models))
	for _, m := range body.Models {
		byID[m["model_id"].(string)] = m
	}
	return byID
}

func TestListModelsMergesStoredOverrides(t *testing.T) {
	repo := newMemOverrideRepo()
	require.NoError(t, repo.Create(context.Background(), &model.Override{
		ModelID:       "gemini-2.5-flash",
		ProviderName:  "gemini",
		Label:         "Gemini 2.5 Flash",
		Enabled:       true,
		PricingInput:  floatPtr(0.30),
		PricingOutput: floatPtr(2.50),
	}))
	require.NoError(t, repo.Create(context.Background(), &model.Override{
		ModelID:      "gpt-oss-120b",
		ProviderName: "ovh",
		Label:        "gpt-oss-120b",
		Enabled:      false,
	}))

	models := listModels(t, newModelRouter(repo))

	flash := models["gemini-2.5-flash"]
	require.NotNil(t, flash)
	assert.Equal(t, "Gemini 2.5 Flash", flash["label"])
	assert.Equal(t, true, flash["enabled"])
	assert.Equal(t, 0.30, flash["pricing_input"])
	assert.Equal(t, 2.50, flash["pricing_output"])

	disabled := models["gpt-oss-120b"]
	require.NotNil(t, disabled)
	assert.Equal(t, false, disabled["enabled"])
}

func TestListModelsWithoutOverridesUsesDefaults(t *testing.T) {
	models := listModels(t, newModelRouter(newMemOverrideRepo()))

	pro := models["gemini-2.5-pro"]
	require.NotNil(t, pro)
	assert.Equal(t, "gemini-2.5-pro", pro["label"])
	assert.Equal(t, true, pro["enabled"])
	assert.Nil(t, pro["pricing_input"])
	assert.Nil(t, pro["pricing_output"])
}

func TestUpdatePricingSurfacesInListing(t *testing.T) {
	router := newModelRouter(newMemOverrideRepo())

	rec := doRequest(router, http.MethodPut, "/models/gemini-2.5-flash/pricing",
		`{"label":"Gemini 2.5 Flash","pricing_input":0.30,"pricing_output":2.50}`)
	require.Equal(t, http.StatusOK, rec.Code)

	flash := listModels(t, router)["gemini-2.5-flash"]
	require.NotNil(t, flash)
	assert.Equal(t, "Gemini 2.5 Flash", flash["label"])
	assert.Equal(t, 0.30, flash["pricing_input"])
	assert.Equal(t, 2.50, flash["pricing_output"])
}

func TestToggleModelSurfacesInListing(t *testing.T) {
	router := newModelRouter(newMemOverrideRepo())

	rec := doRequest(router, http.MethodPost, "/models/gemini-2.5-flash/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["enabled"])

	flash := listModels(t, router)["gemini-2.5-flash"]
	require.NotNil(t, flash)
	assert.Equal(t, false, flash["enabled"])
}

func TestUpdatePricingRejectsNegativePrice(t *testing.T) {
	router := newModelRouter(newMemOverrideRepo())

	rec := doRequest(router, http.MethodPut, "/models/gemini-2.5-flash/pricing",
		`{"pricing_input":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
