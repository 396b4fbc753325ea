package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/debuglog"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/responses"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

const (
	debugListLimit = 100
	auditListLimit = 200
)

// DebugHandler serves the debug log rows and their cached trace payloads.
type DebugHandler struct {
	debugRepo debuglog.Repository
	traces    debuglog.TraceStore
}

func NewDebugHandler(debugRepo debuglog.Repository, traces debuglog.TraceStore) *DebugHandler {
	return &DebugHandler{debugRepo: debugRepo, traces: traces}
}

type debugView struct {
	ID         uint      `json:"id"`
	DebugID    string    `json:"debug_id"`
	Module     string    `json:"module"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Status     string    `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

func newDebugView(e *debuglog.Entry) debugView {
	return debugView{
		ID:         e.ID,
		DebugID:    e.DebugID,
		Module:     e.Module,
		Provider:   e.Provider,
		Model:      e.Model,
		Status:     e.Status,
		DurationMs: e.DurationMs,
		CreatedAt:  e.CreatedAt,
	}
}

// List returns the most recent debug rows plus the total count.
func (h *DebugHandler) List(c *gin.Context) {
	h.list(c, debugListLimit)
}

// Audit is the audit view over the same rows, with a deeper window.
func (h *DebugHandler) Audit(c *gin.Context) {
	h.list(c, auditListLimit)
}

func (h *DebugHandler) list(c *gin.Context, limit int) {
	ctx := c.Request.Context()

	entries, err := h.debugRepo.FindRecent(ctx, limit)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "list debug logs"))
		return
	}

	total, err := h.debugRepo.Count(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "count debug logs"))
		return
	}

	views := make([]debugView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newDebugView(e))
	}

	responses.JSON(c, http.StatusOK, gin.H{
		"entries": views,
		"total":   total,
	})
}

// Detail returns one debug row together with its cached trace payload. The
// payload expires independently of the row.
func (h *DebugHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	debugID := c.Param("debugId")

	entry, err := h.debugRepo.FindByDebugID(ctx, debugID)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "find debug log"))
		return
	}
	if entry == nil {
		responses.NotFound(c, "debug log not found")
		return
	}

	trace, err := h.traces.FindTrace(ctx, debugID)
	if err != nil {
		if errors.Is(err, debuglog.ErrTraceNotFound) {
			responses.NotFound(c, "debug trace expired or not found")
			return
		}
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "load debug trace"))
		return
	}

	responses.JSON(c, http.StatusOK, gin.H{
		"entry": newDebugView(entry),
		"trace": trace,
	})
}

// ClearAll removes every debug row and reports how many were deleted.
func (h *DebugHandler) ClearAll(c *gin.Context) {
	ctx := c.Request.Context()

	deleted, err := h.debugRepo.ClearAll(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "clear debug logs"))
		return
	}

	responses.JSON(c, http.StatusOK, gin.H{"deleted": deleted})
}
