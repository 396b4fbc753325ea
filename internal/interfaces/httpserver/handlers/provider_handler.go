package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/provider"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/responses"
)

// ProviderHandler manages upstream provider credentials. Plaintext API keys
// never leave this handler; responses carry the masked hint only.
type ProviderHandler struct {
	providers *provider.Service
	validate  *validator.Validate
}

func NewProviderHandler(providers *provider.Service) *ProviderHandler {
	return &ProviderHandler{
		providers: providers,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

type providerView struct {
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	BaseURL    string    `json:"base_url"`
	APIKeyHint string    `json:"api_key_hint"`
	Configured bool      `json:"configured"`
	Active     bool      `json:"active"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newProviderView(p *provider.Provider) providerView {
	return providerView{
		Name:       p.Name,
		Label:      p.Label,
		BaseURL:    p.BaseURL,
		APIKeyHint: p.APIKeyHint,
		Configured: p.IsConfigured(),
		Active:     p.Active,
		UpdatedAt:  p.UpdatedAt,
	}
}

// List returns every provider in display order.
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.providers.FindAllOrdered(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}

	views := make([]providerView, 0, len(providers))
	for _, p := range providers {
		views = append(views, newProviderView(p))
	}

	responses.JSON(c, http.StatusOK, gin.H{"providers": views})
}

type upsertProviderRequest struct {
	Label   string `json:"label"`
	BaseURL string `json:"base_url" validate:"omitempty,url"`
	APIKey  string `json:"api_key"`
	Active  *bool  `json:"active"`
}

// Upsert creates or updates the provider identified by the path name.
func (h *ProviderHandler) Upsert(c *gin.Context) {
	name := c.Param("name")

	var req upsertProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		responses.BadRequest(c, "invalid provider: "+err.Error())
		return
	}

	p, err := h.providers.Upsert(c.Request.Context(), name, provider.UpsertInput{
		Label:   req.Label,
		BaseURL: req.BaseURL,
		APIKey:  req.APIKey,
		Active:  req.Active,
	})
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, newProviderView(p))
}
