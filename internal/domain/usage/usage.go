package usage

import (
	"context"
	"time"
)

// LlmCall is one recorded upstream LLM invocation, the unit of the usage
// analytics.
type LlmCall struct {
	ID               uint
	Module           string // calling subsystem, e.g. "chat", "memory", "preset_test"
	ProviderName     string
	Model            string
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
	Cost             float64
	Currency         string
	CreatedAt        time.Time
}

// GlobalStats aggregates calls over a period. Costs is keyed by currency.
type GlobalStats struct {
	Calls            int64              `json:"count"`
	PromptTokens     int64              `json:"prompt_tokens"`
	CompletionTokens int64              `json:"completion_tokens"`
	TotalTokens      int64              `json:"total_tokens"`
	Costs            map[string]float64 `json:"costs"`
}

// DailyUsage is one day of aggregated usage.
type DailyUsage struct {
	Day         string `json:"day"`
	Calls       int64  `json:"count"`
	TotalTokens int64  `json:"total_tokens"`
}

// ModuleUsage aggregates usage per calling subsystem.
type ModuleUsage struct {
	Module      string `json:"module"`
	Calls       int64  `json:"count"`
	TotalTokens int64  `json:"total_tokens"`
}

// ModelUsage aggregates usage per model.
type ModelUsage struct {
	Model       string  `json:"model"`
	Calls       int64   `json:"count"`
	TotalTokens int64   `json:"total_tokens"`
	Cost        float64 `json:"cost"`
}

// Repository abstracts the usage aggregations over llm_calls.
type Repository interface {
	Record(ctx context.Context, call *LlmCall) error
	GlobalStats(ctx context.Context, start, end time.Time) (*GlobalStats, error)
	DailyUsage(ctx context.Context, start, end time.Time) ([]DailyUsage, error)
	UsageByModule(ctx context.Context, start, end time.Time) ([]ModuleUsage, error)
	UsageByModel(ctx context.Context, start, end time.Time) ([]ModelUsage, error)
	Count(ctx context.Context) (int64, error)
}

// ClampPeriod restricts the analytics period to the supported windows,
// defaulting to 30 days.
func ClampPeriod(days int) int {
	switch days {
	case 7, 30, 90:
		return days
	default:
		return 30
	}
}
