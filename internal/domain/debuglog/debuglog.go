package debuglog

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Entry is the persisted summary row of one traced LLM exchange. The full
// payload lives in the trace store under DebugID and expires with it.
type Entry struct {
	ID         uint
	DebugID    string
	Module     string
	Provider   string
	Model      string
	Status     string
	DurationMs int64
	CreatedAt  time.Time
}

// Repository abstracts persistence for debug log rows.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	FindByDebugID(ctx context.Context, debugID string) (*Entry, error)
	FindRecent(ctx context.Context, limit int) ([]*Entry, error)
	Count(ctx context.Context) (int64, error)
	// ClearAll removes every row and returns how many were deleted.
	ClearAll(ctx context.Context) (int64, error)
}

// ErrTraceNotFound is returned when a trace payload has expired or was never
// stored.
var ErrTraceNotFound = errors.New("debug trace expired or not found")

// TraceStore holds the full request/response payload of a traced exchange,
// keyed by debug id, with a bounded lifetime.
type TraceStore interface {
	SaveTrace(ctx context.Context, debugID string, payload any, ttl time.Duration) error
	FindTrace(ctx context.Context, debugID string) (json.RawMessage, error)
}
