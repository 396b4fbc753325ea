package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/usage"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/responses"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

// AnalyticsHandler serves the usage aggregations.
type AnalyticsHandler struct {
	usage usage.Repository
}

func NewAnalyticsHandler(usageRepo usage.Repository) *AnalyticsHandler {
	return &AnalyticsHandler{usage: usageRepo}
}

// Overview returns the full analytics payload for a period of 7, 30 or 90
// days. Any other period value falls back to 30.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	days, _ := strconv.Atoi(c.DefaultQuery("period", "30"))
	days = usage.ClampPeriod(days)

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	global, err := h.usage.GlobalStats(ctx, start, end)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "load global stats"))
		return
	}

	daily, err := h.usage.DailyUsage(ctx, start, end)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "load daily usage"))
		return
	}

	byModule, err := h.usage.UsageByModule(ctx, start, end)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "load usage by module"))
		return
	}

	byModel, err := h.usage.UsageByModel(ctx, start, end)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "load usage by model"))
		return
	}

	responses.JSON(c, http.StatusOK, gin.H{
		"period_days": days,
		"global":      global,
		"daily":       daily,
		"by_module":   byModule,
		"by_model":    byModel,
	})
}
