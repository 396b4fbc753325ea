package preset

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
)

// Provider-specific option enums.
var (
	validBlockLevels = map[string]bool{
		"BLOCK_NONE":             true,
		"BLOCK_ONLY_HIGH":        true,
		"BLOCK_MEDIUM_AND_ABOVE": true,
		"BLOCK_LOW_AND_ABOVE":    true,
	}
	validReasoningEfforts = map[string]bool{
		"low":    true,
		"medium": true,
		"high":   true,
	}
)

const (
	geminiBudgetMin     = 128
	geminiBudgetMax     = 32000
	geminiBudgetDefault = 1024
)

// ThinkingOptions configures reasoning behaviour. Budget is a token budget
// (gemini); ReasoningEffort is a qualitative level (ovh).
type ThinkingOptions struct {
	Budget          *int   `json:"budget,omitempty"`
	ReasoningEffort string `json:"reasoning_effort,omitempty"`
}

// UnmarshalJSON accepts the budget as a JSON number or a numeric string, the
// two shapes the admin form submits. Empty strings count as absent; other
// non-numeric values coerce to zero, which the sanitizer treats as empty.
func (t *ThinkingOptions) UnmarshalJSON(data []byte) error {
	var raw struct {
		Budget          json.RawMessage `json:"budget"`
		ReasoningEffort string          `json:"reasoning_effort"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.ReasoningEffort = raw.ReasoningEffort
	t.Budget = flexInt(raw.Budget)
	return nil
}

func flexInt(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		v := int(n)
		return &v
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			v = 0
		}
		return &v
	}

	return nil
}

// SafetyThresholds carries the per-category block levels.
type SafetyThresholds struct {
	HateSpeech       string `json:"hate_speech,omitempty"`
	DangerousContent string `json:"dangerous_content,omitempty"`
	Harassment       string `json:"harassment,omitempty"`
	SexuallyExplicit string `json:"sexually_explicit,omitempty"`
}

// SafetySettings configures content filtering for providers that support it.
type SafetySettings struct {
	DefaultThreshold string            `json:"default_threshold,omitempty"`
	Thresholds       *SafetyThresholds `json:"thresholds,omitempty"`
}

// ProviderOptions is the typed form of the per-preset provider option payload.
type ProviderOptions struct {
	Thinking       *ThinkingOptions `json:"thinking,omitempty"`
	SafetySettings *SafetySettings  `json:"safety_settings,omitempty"`
}

// ParseProviderOptions decodes a free-form payload. Malformed input resolves
// to empty options rather than an error.
func ParseProviderOptions(raw []byte) ProviderOptions {
	if len(raw) == 0 {
		return ProviderOptions{}
	}
	var opts ProviderOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return ProviderOptions{}
	}
	return opts
}

func (o ProviderOptions) clone() ProviderOptions {
	out := ProviderOptions{}
	if o.Thinking != nil {
		t := *o.Thinking
		if o.Thinking.Budget != nil {
			b := *o.Thinking.Budget
			t.Budget = &b
		}
		out.Thinking = &t
	}
	if o.SafetySettings != nil {
		s := *o.SafetySettings
		if o.SafetySettings.Thresholds != nil {
			th := *o.SafetySettings.Thresholds
			s.Thresholds = &th
		}
		out.SafetySettings = &s
	}
	return out
}

// Sanitize normalizes provider options against the provider and the model's
// capabilities. It is pure, never fails, and is idempotent: invalid fields are
// dropped or corrected to safe defaults. It runs identically on preset
// creation, edit and before a validation run.
func Sanitize(opts ProviderOptions, providerName string, caps model.Capabilities) ProviderOptions {
	out := opts.clone()

	if !caps.Thinking {
		out.Thinking = nil
	}
	if !caps.SafetySettings {
		out.SafetySettings = nil
	}

	switch providerName {
	case "gemini":
		if out.Thinking != nil && out.Thinking.Budget != nil {
			// A zero budget counts as empty and passes through untouched.
			budget := *out.Thinking.Budget
			if budget != 0 && (budget < geminiBudgetMin || budget > geminiBudgetMax) {
				corrected := geminiBudgetDefault
				out.Thinking.Budget = &corrected
			}
		}
		if out.SafetySettings != nil {
			if out.SafetySettings.DefaultThreshold != "" && !validBlockLevels[out.SafetySettings.DefaultThreshold] {
				out.SafetySettings.DefaultThreshold = ""
			}
			if th := out.SafetySettings.Thresholds; th != nil {
				if th.HateSpeech != "" && !validBlockLevels[th.HateSpeech] {
					th.HateSpeech = ""
				}
				if th.DangerousContent != "" && !validBlockLevels[th.DangerousContent] {
					th.DangerousContent = ""
				}
				if th.Harassment != "" && !validBlockLevels[th.Harassment] {
					th.Harassment = ""
				}
				if th.SexuallyExplicit != "" && !validBlockLevels[th.SexuallyExplicit] {
					th.SexuallyExplicit = ""
				}
			}
		}
	case "ovh":
		if out.Thinking != nil {
			if out.Thinking.ReasoningEffort != "" && !validReasoningEfforts[out.Thinking.ReasoningEffort] {
				out.Thinking.ReasoningEffort = ""
			}
			out.Thinking.Budget = nil
		}
		out.SafetySettings = nil
	}

	return out
}
