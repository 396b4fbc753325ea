package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
)

func geminiCaps() model.Capabilities {
	return model.Capabilities{
		Provider:       "gemini",
		Type:           "chat",
		Thinking:       true,
		SafetySettings: true,
		TopK:           true,
		Streaming:      true,
	}
}

func ovhCaps() model.Capabilities {
	return model.Capabilities{
		Provider:  "ovh",
		Type:      "chat",
		Thinking:  true,
		Streaming: true,
	}
}

func intPtr(v int) *int { return &v }

func TestSanitizeGeminiBudgetRange(t *testing.T) {
	tests := []struct {
		name   string
		budget int
		want   int
	}{
		{"below minimum", 50, 1024},
		{"inside range", 5000, 5000},
		{"at maximum", 32000, 32000},
		{"above maximum", 32001, 1024},
		{"at minimum", 128, 128},
		{"zero left alone", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ProviderOptions{Thinking: &ThinkingOptions{Budget: intPtr(tt.budget)}}
			out := Sanitize(opts, "gemini", geminiCaps())
			require.NotNil(t, out.Thinking)
			require.NotNil(t, out.Thinking.Budget)
			assert.Equal(t, tt.want, *out.Thinking.Budget)
		})
	}
}

func TestSanitizeGeminiSafetyThresholds(t *testing.T) {
	opts := ProviderOptions{
		SafetySettings: &SafetySettings{
			DefaultThreshold: "INVALID",
			Thresholds: &SafetyThresholds{
				HateSpeech:       "BLOCK_ONLY_HIGH",
				DangerousContent: "SOMETHING_ELSE",
			},
		},
	}

	out := Sanitize(opts, "gemini", geminiCaps())

	require.NotNil(t, out.SafetySettings)
	assert.Empty(t, out.SafetySettings.DefaultThreshold)
	require.NotNil(t, out.SafetySettings.Thresholds)
	assert.Equal(t, "BLOCK_ONLY_HIGH", out.SafetySettings.Thresholds.HateSpeech)
	assert.Empty(t, out.SafetySettings.Thresholds.DangerousContent)
}

func TestSanitizeOvhDropsSafetyAndBudget(t *testing.T) {
	opts := ProviderOptions{
		Thinking: &ThinkingOptions{
			Budget:          intPtr(2048),
			ReasoningEffort: "medium",
		},
		SafetySettings: &SafetySettings{DefaultThreshold: "BLOCK_NONE"},
	}

	// Even with a capability set that claims safety support, ovh never
	// carries safety settings.
	caps := ovhCaps()
	caps.SafetySettings = true

	out := Sanitize(opts, "ovh", caps)

	assert.Nil(t, out.SafetySettings)
	require.NotNil(t, out.Thinking)
	assert.Nil(t, out.Thinking.Budget)
	assert.Equal(t, "medium", out.Thinking.ReasoningEffort)
}

func TestSanitizeOvhInvalidReasoningEffort(t *testing.T) {
	opts := ProviderOptions{Thinking: &ThinkingOptions{ReasoningEffort: "extreme"}}
	out := Sanitize(opts, "ovh", ovhCaps())
	require.NotNil(t, out.Thinking)
	assert.Empty(t, out.Thinking.ReasoningEffort)
}

func TestSanitizeStripsUnsupportedSections(t *testing.T) {
	opts := ProviderOptions{
		Thinking:       &ThinkingOptions{Budget: intPtr(1024)},
		SafetySettings: &SafetySettings{DefaultThreshold: "BLOCK_NONE"},
	}

	caps := geminiCaps()
	caps.Thinking = false
	caps.SafetySettings = false

	out := Sanitize(opts, "gemini", caps)

	assert.Nil(t, out.Thinking)
	assert.Nil(t, out.SafetySettings)
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []ProviderOptions{
		{},
		{Thinking: &ThinkingOptions{Budget: intPtr(50)}},
		{Thinking: &ThinkingOptions{Budget: intPtr(5000), ReasoningEffort: "weird"}},
		{SafetySettings: &SafetySettings{
			DefaultThreshold: "NOT_A_LEVEL",
			Thresholds:       &SafetyThresholds{Harassment: "BLOCK_LOW_AND_ABOVE", SexuallyExplicit: "nope"},
		}},
	}

	for _, provider := range []string{"gemini", "ovh", "unknown"} {
		for _, opts := range inputs {
			once := Sanitize(opts, provider, geminiCaps())
			twice := Sanitize(once, provider, geminiCaps())
			assert.Equal(t, once, twice, "provider %s", provider)
		}
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	opts := ProviderOptions{Thinking: &ThinkingOptions{Budget: intPtr(50)}}
	_ = Sanitize(opts, "gemini", geminiCaps())
	assert.Equal(t, 50, *opts.Thinking.Budget)
}

func TestParseProviderOptionsMalformed(t *testing.T) {
	assert.Equal(t, ProviderOptions{}, ParseProviderOptions([]byte("not json")))
	assert.Equal(t, ProviderOptions{}, ParseProviderOptions(nil))
}

func TestThinkingBudgetFlexibleDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{"number", `{"thinking":{"budget":2048}}`, intPtr(2048)},
		{"numeric string", `{"thinking":{"budget":"2048"}}`, intPtr(2048)},
		{"empty string", `{"thinking":{"budget":""}}`, nil},
		{"non-numeric string", `{"thinking":{"budget":"lots"}}`, intPtr(0)},
		{"null", `{"thinking":{"budget":null}}`, nil},
		{"absent", `{"thinking":{}}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ParseProviderOptions([]byte(tt.raw))
			require.NotNil(t, opts.Thinking)
			if tt.want == nil {
				assert.Nil(t, opts.Thinking.Budget)
			} else {
				require.NotNil(t, opts.Thinking.Budget)
				assert.Equal(t, *tt.want, *opts.Thinking.Budget)
			}
		})
	}
}

func TestNonNumericBudgetTreatedAsEmptyByGeminiSanitize(t *testing.T) {
	opts := ParseProviderOptions([]byte(`{"thinking":{"budget":"INVALID"}}`))
	out := Sanitize(opts, "gemini", geminiCaps())
	require.NotNil(t, out.Thinking)
	require.NotNil(t, out.Thinking.Budget)
	assert.Equal(t, 0, *out.Thinking.Budget)
}
