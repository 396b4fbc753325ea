package model

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/logger"
)

// Capabilities describes the static feature set of a model. Sourced from the
// capability registry, never mutated at runtime.
type Capabilities struct {
	Provider        string `json:"provider"`
	Type            string `json:"type"` // chat | embedding
	Dimensions      *int   `json:"dimensions,omitempty"`
	Thinking        bool   `json:"thinking"`
	SafetySettings  bool   `json:"safetySettings"`
	TopK            bool   `json:"topK"`
	FunctionCalling bool   `json:"functionCalling"`
	Streaming       bool   `json:"streaming"`
}

// Registry is the read-only capability directory keyed by model identifier.
type Registry struct {
	mu     sync.RWMutex
	models map[string]Capabilities
}

// NewRegistry loads the capability registry from a JSON file. A missing or
// unreadable file falls back to the hardcoded defaults.
func NewRegistry(configPath string) *Registry {
	registry := &Registry{models: hardcodedCapabilities()}

	if configPath == "" {
		return registry
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		log := logger.GetLogger()
		log.Warn().
			Str("path", configPath).
			Err(err).
			Msg("Could not load model capabilities file, using hardcoded defaults")
		return registry
	}

	var models map[string]Capabilities
	if err := json.Unmarshal(data, &models); err != nil {
		log := logger.GetLogger()
		log.Warn().
			Str("path", configPath).
			Err(err).
			Msg("Could not parse model capabilities file, using hardcoded defaults")
		return registry
	}

	registry.models = models

	log := logger.GetLogger()
	log.Info().
		Str("path", configPath).
		Int("models", len(models)).
		Msg("Loaded model capabilities")

	return registry
}

// GetCapabilities returns the capabilities for a model identifier. Unknown
// models resolve to a zero Capabilities value.
func (r *Registry) GetCapabilities(modelID string) Capabilities {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.models[modelID]
}

// IsKnownModel reports whether the registry carries the model identifier.
func (r *Registry) IsKnownModel(modelID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.models[modelID]
	return ok
}

// KnownModels returns all registered model identifiers, sorted.
func (r *Registry) KnownModels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.models))
	for id := range r.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func intPtr(v int) *int { return &v }

func hardcodedCapabilities() map[string]Capabilities {
	return map[string]Capabilities{
		"gemini-2.5-flash": {
			Provider:        "gemini",
			Type:            "chat",
			Thinking:        true,
			SafetySettings:  true,
			TopK:            true,
			FunctionCalling: true,
			Streaming:       true,
		},
		"gemini-2.5-pro": {
			Provider:        "gemini",
			Type:            "chat",
			Thinking:        true,
			SafetySettings:  true,
			TopK:            true,
			FunctionCalling: true,
			Streaming:       true,
		},
		"gemini-2.0-flash": {
			Provider:        "gemini",
			Type:            "chat",
			SafetySettings:  true,
			TopK:            true,
			FunctionCalling: true,
			Streaming:       true,
		},
		"text-embedding-004": {
			Provider:   "gemini",
			Type:       "embedding",
			Dimensions: intPtr(768),
		},
		"gpt-oss-120b": {
			Provider:  "ovh",
			Type:      "chat",
			Thinking:  true,
			Streaming: true,
		},
		"llama-3.3-70b-instruct": {
			Provider:        "ovh",
			Type:            "chat",
			FunctionCalling: true,
			Streaming:       true,
		},
		"bge-multilingual-gemma2": {
			Provider:   "ovh",
			Type:       "embedding",
			Dimensions: intPtr(3584),
		},
	}
}
