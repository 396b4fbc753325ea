package dbschema

import (
	"encoding/json"
	"time"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/preset"
)

type Preset struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"column:name"`
	ProviderName     string `gorm:"column:provider_name"`
	Model            string `gorm:"column:model"`
	Temperature      float64 `gorm:"column:generation_temperature"`
	TopP             float64 `gorm:"column:generation_top_p"`
	TopK             *int    `gorm:"column:generation_top_k"`
	MaxOutputTokens  *int    `gorm:"column:generation_max_output_tokens"`
	StopSequences    string  `gorm:"column:generation_stop_sequences"`
	StreamingEnabled bool    `gorm:"column:streaming_enabled"`
	ProviderOptions  string  `gorm:"column:provider_options"`
	IsActive         bool    `gorm:"column:is_active"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Preset) TableName() string { return "synapse_presets" }

func NewSchemaPreset(d *preset.Preset) *Preset {
	if d == nil {
		return nil
	}

	stopSequences, _ := json.Marshal(d.StopSequences)
	providerOptions, _ := json.Marshal(d.ProviderOptions)

	return &Preset{
		ID:               d.ID,
		Name:             d.Name,
		ProviderName:     d.ProviderName,
		Model:            d.Model,
		Temperature:      d.Temperature,
		TopP:             d.TopP,
		TopK:             d.TopK,
		MaxOutputTokens:  d.MaxOutputTokens,
		StopSequences:    string(stopSequences),
		StreamingEnabled: d.StreamingEnabled,
		ProviderOptions:  string(providerOptions),
		IsActive:         d.Active,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (s *Preset) EtoD() *preset.Preset {
	if s == nil {
		return nil
	}

	var stopSequences []string
	if s.StopSequences != "" {
		_ = json.Unmarshal([]byte(s.StopSequences), &stopSequences)
	}
	providerOptions := preset.ParseProviderOptions([]byte(s.ProviderOptions))

	return &preset.Preset{
		ID:               s.ID,
		Name:             s.Name,
		ProviderName:     s.ProviderName,
		Model:            s.Model,
		Temperature:      s.Temperature,
		TopP:             s.TopP,
		TopK:             s.TopK,
		MaxOutputTokens:  s.MaxOutputTokens,
		StopSequences:    stopSequences,
		StreamingEnabled: s.StreamingEnabled,
		ProviderOptions:  providerOptions,
		Active:           s.IsActive,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
