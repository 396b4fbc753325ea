package dbschema

import (
	"time"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
)

type ModelOverride struct {
	ID            uint     `gorm:"primaryKey"`
	ModelID       string   `gorm:"column:model_id;uniqueIndex"`
	ProviderName  string   `gorm:"column:provider_name"`
	Label         string   `gorm:"column:label"`
	IsEnabled     bool     `gorm:"column:is_enabled"`
	PricingInput  *float64 `gorm:"column:pricing_input"`
	PricingOutput *float64 `gorm:"column:pricing_output"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ModelOverride) TableName() string { return "synapse_models" }

func NewSchemaModelOverride(d *model.Override) *ModelOverride {
	if d == nil {
		return nil
	}

	return &ModelOverride{
		ID:            d.ID,
		ModelID:       d.ModelID,
		ProviderName:  d.ProviderName,
		Label:         d.Label,
		IsEnabled:     d.Enabled,
		PricingInput:  d.PricingInput,
		PricingOutput: d.PricingOutput,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (s *ModelOverride) EtoD() *model.Override {
	if s == nil {
		return nil
	}

	return &model.Override{
		ID:            s.ID,
		ModelID:       s.ModelID,
		ProviderName:  s.ProviderName,
		Label:         s.Label,
		Enabled:       s.IsEnabled,
		PricingInput:  s.PricingInput,
		PricingOutput: s.PricingOutput,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
