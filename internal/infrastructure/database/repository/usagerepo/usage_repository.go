package usagerepo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/usage"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/dbschema"
)

// Repository records LLM calls and runs the analytics aggregations over them.
type Repository struct {
	db *gorm.DB
}

var _ usage.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Record(ctx context.Context, call *usage.LlmCall) error {
	if call.CreatedAt.IsZero() {
		call.CreatedAt = time.Now()
	}
	if call.Currency == "" {
		call.Currency = "USD"
	}

	row := dbschema.NewSchemaLlmCall(call)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("record llm call: %w", err)
	}
	call.ID = row.ID
	return nil
}

func (r *Repository) GlobalStats(ctx context.Context, start, end time.Time) (*usage.GlobalStats, error) {
	var totals struct {
		Calls            int64
		PromptTokens     int64
		CompletionTokens int64
		TotalTokens      int64
	}
	if err := r.db.WithContext(ctx).
		Model(&dbschema.LlmCall{}).
		Select("COUNT(*) AS calls, COALESCE(SUM(prompt_tokens), 0) AS prompt_tokens, COALESCE(SUM(completion_tokens), 0) AS completion_tokens, COALESCE(SUM(total_tokens), 0) AS total_tokens").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("aggregate usage totals: %w", err)
	}

	var costRows []struct {
		Currency string
		Cost     float64
	}
	if err := r.db.WithContext(ctx).
		Model(&dbschema.LlmCall{}).
		Select("currency, COALESCE(SUM(cost), 0) AS cost").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("currency").
		Scan(&costRows).Error; err != nil {
		return nil, fmt.Errorf("aggregate usage costs: %w", err)
	}

	stats := &usage.GlobalStats{
		Calls:            totals.Calls,
		PromptTokens:     totals.PromptTokens,
		CompletionTokens: totals.CompletionTokens,
		TotalTokens:      totals.TotalTokens,
		Costs:            make(map[string]float64, len(costRows)),
	}
	for _, row := range costRows {
		stats.Costs[row.Currency] = row.Cost
	}
	return stats, nil
}

func (r *Repository) DailyUsage(ctx context.Context, start, end time.Time) ([]usage.DailyUsage, error) {
	var rows []usage.DailyUsage
	if err := r.db.WithContext(ctx).
		Model(&dbschema.LlmCall{}).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS day, COUNT(*) AS calls, COALESCE(SUM(total_tokens), 0) AS total_tokens").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate daily usage: %w", err)
	}
	return rows, nil
}

func (r *Repository) UsageByModule(ctx context.Context, start, end time.Time) ([]usage.ModuleUsage, error) {
	var rows []usage.ModuleUsage
	if err := r.db.WithContext(ctx).
		Model(&dbschema.LlmCall{}).
		Select("module, COUNT(*) AS calls, COALESCE(SUM(total_tokens), 0) AS total_tokens").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("module").
		Order("calls DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate usage by module: %w", err)
	}
	return rows, nil
}

func (r *Repository) UsageByModel(ctx context.Context, start, end time.Time) ([]usage.ModelUsage, error) {
	var rows []usage.ModelUsage
	if err := r.db.WithContext(ctx).
		Model(&dbschema.LlmCall{}).
		Select("model, COUNT(*) AS calls, COALESCE(SUM(total_tokens), 0) AS total_tokens, COALESCE(SUM(cost), 0) AS cost").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("model").
		Order("calls DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate usage by model: %w", err)
	}
	return rows, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&dbschema.LlmCall{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count llm calls: %w", err)
	}
	return count, nil
}
