package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/responses"
)

// ModelHandler exposes the model catalog: capabilities, enabled state and
// pricing overrides.
type ModelHandler struct {
	catalog  *model.CatalogService
	validate *validator.Validate
}

func NewModelHandler(catalog *model.CatalogService) *ModelHandler {
	return &ModelHandler{
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type modelView struct {
	ModelID       string             `json:"model_id"`
	ProviderName  string             `json:"provider_name"`
	Label         string             `json:"label"`
	Enabled       bool               `json:"enabled"`
	PricingInput  *float64           `json:"pricing_input"`
	PricingOutput *float64           `json:"pricing_output"`
	Capabilities  model.Capabilities `json:"capabilities"`
}

// List returns every known model with its override state merged in. Overrides
// are loaded once; a model without a row is enabled with its identifier as
// label and no pricing.
func (h *ModelHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	overrides, err := h.catalog.OverridesByModelID(ctx)
	if err != nil {
		responses.Error(c, err)
		return
	}

	capabilities := h.catalog.FullCapabilities()
	modelIDs := make([]string, 0, len(capabilities))
	for modelID := range capabilities {
		modelIDs = append(modelIDs, modelID)
	}
	sort.Strings(modelIDs)

	views := make([]modelView, 0, len(modelIDs))
	for _, modelID := range modelIDs {
		caps := capabilities[modelID]
		view := modelView{
			ModelID:      modelID,
			ProviderName: caps.Provider,
			Label:        modelID,
			Enabled:      true,
			Capabilities: caps,
		}

		if override, ok := overrides[modelID]; ok {
			view.Enabled = override.Enabled
			if override.Label != "" {
				view.Label = override.Label
			}
			view.PricingInput = override.PricingInput
			view.PricingOutput = override.PricingOutput
		}

		views = append(views, view)
	}

	responses.JSON(c, http.StatusOK, gin.H{
		"models":           views,
		"chat_by_provider": h.catalog.ChatModelsByProvider(),
	})
}

// Toggle flips the enabled flag of a model.
func (h *ModelHandler) Toggle(c *gin.Context) {
	modelID := c.Param("id")

	enabled, err := h.catalog.ToggleModel(c.Request.Context(), modelID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, gin.H{
		"model_id": modelID,
		"enabled":  enabled,
	})
}

type updatePricingRequest struct {
	Label         string   `json:"label"`
	PricingInput  *float64 `json:"pricing_input" validate:"omitempty,gte=0"`
	PricingOutput *float64 `json:"pricing_output" validate:"omitempty,gte=0"`
}

// UpdatePricing sets label and per-1M-token prices for a model.
func (h *ModelHandler) UpdatePricing(c *gin.Context) {
	modelID := c.Param("id")

	var req updatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		responses.BadRequest(c, "invalid pricing: "+err.Error())
		return
	}

	override, err := h.catalog.UpdatePricing(c.Request.Context(), modelID, model.UpdatePricingInput{
		Label:         req.Label,
		PricingInput:  req.PricingInput,
		PricingOutput: req.PricingOutput,
	})
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, gin.H{
		"model_id":       override.ModelID,
		"label":          override.Label,
		"enabled":        override.Enabled,
		"pricing_input":  override.PricingInput,
		"pricing_output": override.PricingOutput,
	})
}
