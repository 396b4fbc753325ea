package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/debuglog"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/preset"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/provider"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/usage"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/validation"
)

const (
	testPrompt    = "Reply with the single word: pong"
	traceTTL      = time.Hour
	testModule    = "preset_test"
	testMaxTokens = 64
)

// PresetValidator runs a preset against its real provider endpoint: it checks
// the configuration against the model capabilities, performs one live chat
// completion, and verifies the exchange can be traced end to end.
type PresetValidator struct {
	providers *provider.Service
	registry  *model.Registry
	debugRepo debuglog.Repository
	traces    debuglog.TraceStore
	usageRepo usage.Repository
}

var _ validation.Agent = (*PresetValidator)(nil)

func NewPresetValidator(
	providers *provider.Service,
	registry *model.Registry,
	debugRepo debuglog.Repository,
	traces debuglog.TraceStore,
	usageRepo usage.Repository,
) *PresetValidator {
	return &PresetValidator{
		providers: providers,
		registry:  registry,
		debugRepo: debugRepo,
		traces:    traces,
		usageRepo: usageRepo,
	}
}

// RunAll executes the full validation sequence. Only a failure to even reach
// the provider returns an error; check failures are reported inside the
// report with AllCriticalOK false.
func (v *PresetValidator) RunAll(ctx context.Context, p *preset.Preset) (*validation.Report, error) {
	report := &validation.Report{
		Analysis: "validation completed",
		CriticalChecks: map[string]bool{
			validation.CheckResponseNotEmpty: false,
			validation.CheckDebugSavedInDB:   false,
		},
		ConfigChecks: map[string]bool{},
		ConfigErrors: []string{},
		PresetInfo:   validation.PresetInfo{Name: p.Name},
	}

	v.runConfigChecks(p, report)

	prov, err := v.providers.FindByName(ctx, p.ProviderName)
	if err != nil {
		return nil, err
	}
	if !prov.IsConfigured() {
		return nil, fmt.Errorf("provider %q is not configured", p.ProviderName)
	}

	apiKey, err := v.providers.DecryptAPIKey(ctx, prov)
	if err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = prov.BaseURL
	client := openai.NewClientWithConfig(clientConfig)

	content, callUsage, chatErr := v.runChatCheck(ctx, client, p)
	report.CriticalChecks[validation.CheckResponseNotEmpty] = chatErr == nil && content != ""

	if chatErr != nil {
		report.ConfigErrors = append(report.ConfigErrors, "chat completion failed: "+chatErr.Error())
	} else {
		v.recordUsage(ctx, p, callUsage)
	}

	status := "success"
	if chatErr != nil {
		status = "error"
	}
	report.CriticalChecks[validation.CheckDebugSavedInDB] = v.runTraceCheck(ctx, p, status, content, chatErr)

	report.ConfigOK = len(report.ConfigErrors) == 0
	report.AllCriticalOK = report.CriticalChecks[validation.CheckResponseNotEmpty] &&
		report.CriticalChecks[validation.CheckDebugSavedInDB]

	if !report.AllCriticalOK {
		report.Analysis = "validation failed: " + v.summarize(report)
	}

	return report, nil
}

// runConfigChecks compares the stored options against the model capabilities.
// These are advisory: they never abort the live checks.
func (v *PresetValidator) runConfigChecks(p *preset.Preset, report *validation.Report) {
	caps := v.registry.GetCapabilities(p.Model)

	report.ConfigChecks["model_known"] = v.registry.IsKnownModel(p.Model)
	if !report.ConfigChecks["model_known"] {
		report.ConfigErrors = append(report.ConfigErrors, fmt.Sprintf("model %q is not in the capability registry", p.Model))
	}

	report.ConfigChecks["thinking_supported"] = p.ProviderOptions.Thinking == nil || caps.Thinking
	if !report.ConfigChecks["thinking_supported"] {
		report.ConfigErrors = append(report.ConfigErrors, fmt.Sprintf("model %q does not support thinking options", p.Model))
	}

	report.ConfigChecks["safety_settings_supported"] = p.ProviderOptions.SafetySettings == nil || caps.SafetySettings
	if !report.ConfigChecks["safety_settings_supported"] {
		report.ConfigErrors = append(report.ConfigErrors, fmt.Sprintf("model %q does not support safety settings", p.Model))
	}

	report.ConfigChecks["streaming_supported"] = !p.StreamingEnabled || caps.Streaming
	if !report.ConfigChecks["streaming_supported"] {
		report.ConfigErrors = append(report.ConfigErrors, fmt.Sprintf("model %q does not support streaming", p.Model))
	}
}

// runChatCheck performs one non-streaming completion with the preset's
// generation parameters.
func (v *PresetValidator) runChatCheck(ctx context.Context, client *openai.Client, p *preset.Preset) (string, *openai.Usage, error) {
	req := openai.ChatCompletionRequest{
		Model: p.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: testPrompt},
		},
		Temperature: float32(p.Temperature),
		TopP:        float32(p.TopP),
		MaxTokens:   testMaxTokens,
	}
	if p.MaxOutputTokens != nil && *p.MaxOutputTokens > 0 && *p.MaxOutputTokens < testMaxTokens {
		req.MaxTokens = *p.MaxOutputTokens
	}
	if len(p.StopSequences) > 0 {
		req.Stop = p.StopSequences
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", &resp.Usage, nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), &resp.Usage, nil
}

// runTraceCheck persists a debug row plus its trace payload and reads the row
// back, proving the debug pipeline works for this preset.
func (v *PresetValidator) runTraceCheck(ctx context.Context, p *preset.Preset, status, content string, chatErr error) bool {
	debugID := uuid.New().String()

	entry := &debuglog.Entry{
		DebugID:  debugID,
		Module:   testModule,
		Provider: p.ProviderName,
		Model:    p.Model,
		Status:   status,
	}
	if err := v.debugRepo.Create(ctx, entry); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("debug_id", debugID).Msg("Failed to persist validation debug row")
		return false
	}

	payload := map[string]any{
		"prompt":   testPrompt,
		"response": content,
	}
	if chatErr != nil {
		payload["error"] = chatErr.Error()
	}
	if err := v.traces.SaveTrace(ctx, debugID, payload, traceTTL); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("debug_id", debugID).Msg("Failed to store validation trace payload")
	}

	stored, err := v.debugRepo.FindByDebugID(ctx, debugID)
	return err == nil && stored != nil
}

func (v *PresetValidator) recordUsage(ctx context.Context, p *preset.Preset, u *openai.Usage) {
	if u == nil {
		return
	}
	call := &usage.LlmCall{
		Module:           testModule,
		ProviderName:     p.ProviderName,
		Model:            p.Model,
		PromptTokens:     int64(u.PromptTokens),
		CompletionTokens: int64(u.CompletionTokens),
		TotalTokens:      int64(u.TotalTokens),
	}
	if err := v.usageRepo.Record(ctx, call); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to record validation usage")
	}
}

func (v *PresetValidator) summarize(report *validation.Report) string {
	var failed []string
	for name, ok := range report.CriticalChecks {
		if !ok {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return "failed checks: " + strings.Join(failed, ", ")
}
