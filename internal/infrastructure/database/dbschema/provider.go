package dbschema

import (
	"time"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/provider"
)

type Provider struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"column:name;uniqueIndex"`
	Label           string `gorm:"column:label"`
	BaseURL         string `gorm:"column:base_url"`
	EncryptedAPIKey string `gorm:"column:encrypted_api_key"`
	APIKeyHint      string `gorm:"column:api_key_hint"`
	Active          bool   `gorm:"column:active"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Provider) TableName() string { return "synapse_providers" }

func NewSchemaProvider(d *provider.Provider) *Provider {
	if d == nil {
		return nil
	}

	return &Provider{
		ID:              d.ID,
		Name:            d.Name,
		Label:           d.Label,
		BaseURL:         d.BaseURL,
		EncryptedAPIKey: d.EncryptedAPIKey,
		APIKeyHint:      d.APIKeyHint,
		Active:          d.Active,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (s *Provider) EtoD() *provider.Provider {
	if s == nil {
		return nil
	}

	return &provider.Provider{
		ID:              s.ID,
		Name:            s.Name,
		Label:           s.Label,
		BaseURL:         s.BaseURL,
		EncryptedAPIKey: s.EncryptedAPIKey,
		APIKeyHint:      s.APIKeyHint,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
