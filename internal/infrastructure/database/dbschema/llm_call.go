package dbschema

import (
	"time"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/usage"
)

type LlmCall struct {
	ID               uint    `gorm:"primaryKey"`
	Module           string  `gorm:"column:module"`
	ProviderName     string  `gorm:"column:provider_name"`
	Model            string  `gorm:"column:model"`
	PromptTokens     int64   `gorm:"column:prompt_tokens"`
	CompletionTokens int64   `gorm:"column:completion_tokens"`
	TotalTokens      int64   `gorm:"column:total_tokens"`
	Cost             float64 `gorm:"column:cost"`
	Currency         string  `gorm:"column:currency"`
	CreatedAt        time.Time
}

func (LlmCall) TableName() string { return "synapse_llm_calls" }

func NewSchemaLlmCall(d *usage.LlmCall) *LlmCall {
	if d == nil {
		return nil
	}

	return &LlmCall{
		ID:               d.ID,
		Module:           d.Module,
		ProviderName:     d.ProviderName,
		Model:            d.Model,
		PromptTokens:     d.PromptTokens,
		CompletionTokens: d.CompletionTokens,
		TotalTokens:      d.TotalTokens,
		Cost:             d.Cost,
		Currency:         d.Currency,
		CreatedAt:        d.CreatedAt,
	}
}
