package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/config"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/debuglog"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/memory"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/preset"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/provider"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/usage"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/responses"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

// SystemHandler serves the dashboard, the GDPR data summary and the about
// endpoint.
type SystemHandler struct {
	cfg       *config.Config
	version   string
	startedAt time.Time

	presetRepo   preset.Repository
	providerRepo provider.Repository
	memories     memory.Repository
	usageRepo    usage.Repository
	debugRepo    debuglog.Repository
}

func NewSystemHandler(
	cfg *config.Config,
	version string,
	presetRepo preset.Repository,
	providerRepo provider.Repository,
	memories memory.Repository,
	usageRepo usage.Repository,
	debugRepo debuglog.Repository,
) *SystemHandler {
	return &SystemHandler{
		cfg:          cfg,
		version:      version,
		startedAt:    time.Now(),
		presetRepo:   presetRepo,
		providerRepo: providerRepo,
		memories:     memories,
		usageRepo:    usageRepo,
		debugRepo:    debugRepo,
	}
}

// Dashboard aggregates the landing-page numbers: 30-day usage, entity counts
// and the active preset.
func (h *SystemHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	end := time.Now()
	start := end.AddDate(0, 0, -30)

	stats, err := h.usageRepo.GlobalStats(ctx, start, end)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "load usage stats"))
		return
	}

	presetCount, err := h.presetRepo.Count(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "count presets"))
		return
	}

	providerCount, err := h.providerRepo.Count(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "count providers"))
		return
	}

	memoryCount, err := h.memories.Count(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "count memories"))
		return
	}

	active, err := h.presetRepo.FindActive(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "find active preset"))
		return
	}

	payload := gin.H{
		"usage_30d":      stats,
		"preset_count":   presetCount,
		"provider_count": providerCount,
		"memory_count":   memoryCount,
		"active_preset":  nil,
	}
	if active != nil {
		payload["active_preset"] = gin.H{
			"id":            active.ID,
			"name":          active.Name,
			"provider_name": active.ProviderName,
			"model":         active.Model,
		}
	}

	responses.JSON(c, http.StatusOK, payload)
}

// Gdpr summarizes what personal data the system stores and for how long.
func (h *SystemHandler) Gdpr(c *gin.Context) {
	ctx := c.Request.Context()

	memoryCount, err := h.memories.Count(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "count memories"))
		return
	}

	callCount, err := h.usageRepo.Count(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "count llm calls"))
		return
	}

	debugCount, err := h.debugRepo.Count(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "count debug logs"))
		return
	}

	responses.JSON(c, http.StatusOK, gin.H{
		"retention": gin.H{
			"debug_trace_ttl": time.Hour.String(),
			"test_slot_ttl":   h.cfg.TestSlotTTL.String(),
		},
		"stored_data": gin.H{
			"memories":   memoryCount,
			"llm_calls":  callCount,
			"debug_logs": debugCount,
		},
	})
}

// About reports build and runtime information.
func (h *SystemHandler) About(c *gin.Context) {
	responses.JSON(c, http.StatusOK, gin.H{
		"name":       "synapse-admin",
		"version":    h.version,
		"go_version": runtime.Version(),
		"cache_type": h.cfg.CacheType,
		"started_at": h.startedAt,
		"uptime":     time.Since(h.startedAt).String(),
	})
}
