package dbschema

import (
	"time"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/debuglog"
)

type DebugLog struct {
	ID         uint   `gorm:"primaryKey"`
	DebugID    string `gorm:"column:debug_id;uniqueIndex"`
	Module     string `gorm:"column:module"`
	Provider   string `gorm:"column:provider"`
	Model      string `gorm:"column:model"`
	Status     string `gorm:"column:status"`
	DurationMs int64  `gorm:"column:duration_ms"`
	CreatedAt  time.Time
}

func (DebugLog) TableName() string { return "synapse_debug_logs" }

func NewSchemaDebugLog(d *debuglog.Entry) *DebugLog {
	if d == nil {
		return nil
	}

	return &DebugLog{
		ID:         d.ID,
		DebugID:    d.DebugID,
		Module:     d.Module,
		Provider:   d.Provider,
		Model:      d.Model,
		Status:     d.Status,
		DurationMs: d.DurationMs,
		CreatedAt:  d.CreatedAt,
	}
}

func (s *DebugLog) EtoD() *debuglog.Entry {
	if s == nil {
		return nil
	}

	return &debuglog.Entry{
		ID:         s.ID,
		DebugID:    s.DebugID,
		Module:     s.Module,
		Provider:   s.Provider,
		Model:      s.Model,
		Status:     s.Status,
		DurationMs: s.DurationMs,
		CreatedAt:  s.CreatedAt,
	}
}
