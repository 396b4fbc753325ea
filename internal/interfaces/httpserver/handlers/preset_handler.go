package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/preset"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/validation"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/responses"
)

// PresetHandler exposes preset CRUD, activation and the validation test
// endpoints.
type PresetHandler struct {
	presets *preset.Service
	runner  *validation.Runner
}

func NewPresetHandler(presets *preset.Service, runner *validation.Runner) *PresetHandler {
	return &PresetHandler{presets: presets, runner: runner}
}

type presetView struct {
	ID               uint                   `json:"id"`
	Name             string                 `json:"name"`
	ProviderName     string                 `json:"provider_name"`
	Model            string                 `json:"model"`
	Temperature      float64                `json:"generation_temperature"`
	TopP             float64                `json:"generation_top_p"`
	TopK             *int                   `json:"generation_top_k"`
	MaxOutputTokens  *int                   `json:"generation_max_output_tokens"`
	StopSequences    []string               `json:"generation_stop_sequences"`
	StreamingEnabled bool                   `json:"streaming_enabled"`
	ProviderOptions  preset.ProviderOptions `json:"provider_options"`
	Active           bool                   `json:"is_active"`
	Validity         *preset.Validity       `json:"validity,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func newPresetView(p *preset.Preset, validity *preset.Validity) presetView {
	return presetView{
		ID:               p.ID,
		Name:             p.Name,
		ProviderName:     p.ProviderName,
		Model:            p.Model,
		Temperature:      p.Temperature,
		TopP:             p.TopP,
		TopK:             p.TopK,
		MaxOutputTokens:  p.MaxOutputTokens,
		StopSequences:    p.StopSequences,
		StreamingEnabled: p.StreamingEnabled,
		ProviderOptions:  p.ProviderOptions,
		Active:           p.Active,
		Validity:         validity,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// List returns every preset with its validity verdict, active first.
func (h *PresetHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	presets, err := h.presets.FindAllOrdered(ctx)
	if err != nil {
		responses.Error(c, err)
		return
	}

	views := make([]presetView, 0, len(presets))
	for _, p := range presets {
		validity, err := h.presets.Checker().Check(ctx, p)
		if err != nil {
			responses.Error(c, err)
			return
		}
		views = append(views, newPresetView(p, &validity))
	}

	responses.JSON(c, http.StatusOK, gin.H{"presets": views})
}

// Get returns one preset with its validity verdict.
func (h *PresetHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := presetID(c)
	if !ok {
		return
	}

	p, err := h.presets.FindByID(ctx, id)
	if err != nil {
		responses.Error(c, err)
		return
	}

	validity, err := h.presets.Checker().Check(ctx, p)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, newPresetView(p, &validity))
}

// Create persists a new inactive preset from form input.
func (h *PresetHandler) Create(c *gin.Context) {
	var input preset.FormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		responses.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.presets.Create(c.Request.Context(), input)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusCreated, newPresetView(p, nil))
}

// Update applies form input to an existing preset.
func (h *PresetHandler) Update(c *gin.Context) {
	id, ok := presetID(c)
	if !ok {
		return
	}

	var input preset.FormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		responses.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.presets.Update(c.Request.Context(), id, input)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, newPresetView(p, nil))
}

// Activate makes a preset the single active one.
func (h *PresetHandler) Activate(c *gin.Context) {
	id, ok := presetID(c)
	if !ok {
		return
	}

	p, err := h.presets.Activate(c.Request.Context(), id)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, newPresetView(p, nil))
}

// Clone duplicates a preset as an inactive copy.
func (h *PresetHandler) Clone(c *gin.Context) {
	id, ok := presetID(c)
	if !ok {
		return
	}

	clone, err := h.presets.Clone(c.Request.Context(), id)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusCreated, newPresetView(clone, nil))
}

// Delete removes a preset. Deleting the active preset is refused.
func (h *PresetHandler) Delete(c *gin.Context) {
	id, ok := presetID(c)
	if !ok {
		return
	}

	if err := h.presets.Delete(c.Request.Context(), id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

// Test starts (or restarts) a validation run for the preset.
func (h *PresetHandler) Test(c *gin.Context) {
	id, ok := presetID(c)
	if !ok {
		return
	}

	if err := h.runner.StartTest(c.Request.Context(), id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusAccepted, gin.H{"status": validation.StatusPending})
}

// TestStatus polls the validation run. The first poll to find the run still
// pending executes it within this request.
func (h *PresetHandler) TestStatus(c *gin.Context) {
	id, ok := presetID(c)
	if !ok {
		return
	}

	status, err := h.runner.PollStatus(c.Request.Context(), id)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, status)
}

func presetID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid preset id")
		return 0, false
	}
	return uint(id), true
}
