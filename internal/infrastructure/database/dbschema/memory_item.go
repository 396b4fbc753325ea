package dbschema

import (
	"time"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/memory"
)

type MemoryItem struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"column:user_id"`
	Content   string `gorm:"column:content"`
	Source    string `gorm:"column:source"`
	CreatedAt time.Time
}

func (MemoryItem) TableName() string { return "synapse_memories" }

func (s *MemoryItem) EtoD() *memory.Item {
	if s == nil {
		return nil
	}

	return &memory.Item{
		ID:        s.ID,
		UserID:    s.UserID,
		Content:   s.Content,
		Source:    s.Source,
		CreatedAt: s.CreatedAt,
	}
}
