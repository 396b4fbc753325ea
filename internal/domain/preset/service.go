package preset

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

const (
	defaultProviderName = "gemini"
	defaultModel        = "gemini-2.5-flash"
	defaultTemperature  = 1.0
	defaultTopP         = 0.95
	defaultTopK         = 40
)

// FormInput is the submitted preset form. Pointer fields distinguish
// "absent" from zero values; ProviderOptions is the raw payload as submitted.
type FormInput struct {
	Name             string          `json:"name"`
	ProviderName     string          `json:"provider_name"`
	Model            string          `json:"model"`
	Temperature      *float64        `json:"generation_temperature"`
	TopP             *float64        `json:"generation_top_p"`
	TopK             *int            `json:"generation_top_k"`
	MaxOutputTokens  *int            `json:"generation_max_output_tokens"`
	StopSequences    string          `json:"generation_stop_sequences"`
	StreamingEnabled bool            `json:"streaming_enabled"`
	ProviderOptions  json.RawMessage `json:"provider_options"`
}

// Service owns preset CRUD and the activation rules.
type Service struct {
	repo     Repository
	registry *model.Registry
	checker  *ValidityChecker
}

func NewService(repo Repository, registry *model.Registry, checker *ValidityChecker) *Service {
	return &Service{repo: repo, registry: registry, checker: checker}
}

// Checker exposes the validity checker for callers that only need the verdict.
func (s *Service) Checker() *ValidityChecker {
	return s.checker
}

// FindByID returns a preset or a NOT_FOUND error.
func (s *Service) FindByID(ctx context.Context, id uint) (*Preset, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "find preset")
	}
	if p == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "preset not found", nil)
	}
	return p, nil
}

// FindAllOrdered lists presets in display order.
func (s *Service) FindAllOrdered(ctx context.Context) ([]*Preset, error) {
	presets, err := s.repo.FindAllOrdered(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list presets")
	}
	return presets, nil
}

// FindActive returns the active preset, nil when none is active.
func (s *Service) FindActive(ctx context.Context) (*Preset, error) {
	p, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "find active preset")
	}
	return p, nil
}

// Create builds a preset from form input and persists it inactive.
func (s *Service) Create(ctx context.Context, input FormInput) (*Preset, error) {
	p := &Preset{}
	s.applyForm(p, input)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create preset")
	}
	return p, nil
}

// Update applies form input to an existing preset.
func (s *Service) Update(ctx context.Context, id uint, input FormInput) (*Preset, error) {
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.applyForm(p, input)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "update preset")
	}
	return p, nil
}

// Clone duplicates a preset under "<name> (copy)", always inactive.
func (s *Service) Clone(ctx context.Context, id uint) (*Preset, error) {
	source, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := &Preset{
		Name:             source.Name + " (copy)",
		ProviderName:     source.ProviderName,
		Model:            source.Model,
		Temperature:      source.Temperature,
		TopP:             source.TopP,
		StreamingEnabled: source.StreamingEnabled,
		ProviderOptions:  source.ProviderOptions.clone(),
		Active:           false,
	}
	if source.TopK != nil {
		topK := *source.TopK
		clone.TopK = &topK
	}
	if source.MaxOutputTokens != nil {
		maxTokens := *source.MaxOutputTokens
		clone.MaxOutputTokens = &maxTokens
	}
	clone.StopSequences = append([]string(nil), source.StopSequences...)

	if err := s.repo.Create(ctx, clone); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "clone preset")
	}
	return clone, nil
}

// Activate makes the preset the single active one. Invalid presets are
// refused with the validity reason.
func (s *Service) Activate(ctx context.Context, id uint) (*Preset, error) {
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	validity, err := s.checker.Check(ctx, p)
	if err != nil {
		return nil, err
	}
	if !validity.Valid {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, validity.Reason, nil)
	}

	if err := s.repo.Activate(ctx, id); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "activate preset")
	}
	p.Active = true
	return p, nil
}

// Delete removes a preset. The active preset cannot be deleted.
func (s *Service) Delete(ctx context.Context, id uint) error {
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Active {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "cannot delete the active preset, activate another preset first", nil)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "delete preset")
	}
	return nil
}

// applyForm maps form input onto the preset, sanitizing provider options
// against the model capabilities and dropping top-k when unsupported.
func (s *Service) applyForm(p *Preset, input FormInput) {
	p.Name = input.Name
	if p.Name == "" {
		p.Name = "Preset"
	}

	p.ProviderName = input.ProviderName
	if p.ProviderName == "" {
		p.ProviderName = defaultProviderName
	}
	p.Model = input.Model
	if p.Model == "" {
		p.Model = defaultModel
	}

	caps := s.registry.GetCapabilities(p.Model)
	p.ProviderOptions = Sanitize(ParseProviderOptions(input.ProviderOptions), p.ProviderName, caps)

	p.Temperature = defaultTemperature
	if input.Temperature != nil {
		p.Temperature = *input.Temperature
	}
	p.TopP = defaultTopP
	if input.TopP != nil {
		p.TopP = *input.TopP
	}

	if caps.TopK {
		topK := defaultTopK
		if input.TopK != nil {
			topK = *input.TopK
		}
		p.TopK = &topK
	} else {
		p.TopK = nil
	}

	p.MaxOutputTokens = nil
	if input.MaxOutputTokens != nil && *input.MaxOutputTokens > 0 {
		maxTokens := *input.MaxOutputTokens
		p.MaxOutputTokens = &maxTokens
	}

	p.StopSequences = splitStopSequences(input.StopSequences)
	p.StreamingEnabled = input.StreamingEnabled
}

func splitStopSequences(raw string) []string {
	var sequences []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sequences = append(sequences, trimmed)
		}
	}
	return sequences
}
