package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/memory"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/responses"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

// MemoryHandler lets admins inspect and prune confirmed long-term memories.
type MemoryHandler struct {
	memories memory.Repository
}

func NewMemoryHandler(memories memory.Repository) *MemoryHandler {
	return &MemoryHandler{memories: memories}
}

type memoryView struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns one page of memories, newest first.
func (h *MemoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * memory.DefaultPageSize

	items, err := h.memories.FindPage(ctx, memory.DefaultPageSize, offset)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "list memories"))
		return
	}

	total, err := h.memories.Count(ctx)
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "count memories"))
		return
	}

	views := make([]memoryView, 0, len(items))
	for _, item := range items {
		views = append(views, memoryView{
			ID:        item.ID,
			UserID:    item.UserID,
			Content:   item.Content,
			Source:    item.Source,
			CreatedAt: item.CreatedAt,
		})
	}

	pages := int(total) / memory.DefaultPageSize
	if int(total)%memory.DefaultPageSize != 0 || pages == 0 {
		pages++
	}

	responses.JSON(c, http.StatusOK, gin.H{
		"memories": views,
		"total":    total,
		"page":     page,
		"pages":    pages,
	})
}

// Delete removes one memory by id.
func (h *MemoryHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid memory id")
		return
	}

	item, err := h.memories.FindByID(ctx, uint(id))
	if err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "find memory"))
		return
	}
	if item == nil {
		responses.NotFound(c, "memory not found")
		return
	}

	if err := h.memories.DeleteByID(ctx, uint(id)); err != nil {
		responses.Error(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "delete memory"))
		return
	}

	responses.JSON(c, http.StatusOK, gin.H{"deleted": true})
}
