package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/debuglog"
)

// TraceStore keeps full debug trace payloads in the shared cache. Rows in the
// database outlive the payload; a read after expiry reports the trace gone.
type TraceStore struct {
	cache Cache
}

var _ debuglog.TraceStore = (*TraceStore)(nil)

func NewTraceStore(cache Cache) *TraceStore {
	return &TraceStore{cache: cache}
}

func traceKey(debugID string) string {
	return "synapse_debug_trace_" + debugID
}

func (s *TraceStore) SaveTrace(ctx context.Context, debugID string, payload any, ttl time.Duration) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, traceKey(debugID), string(raw), ttl)
}

func (s *TraceStore) FindTrace(ctx context.Context, debugID string) (json.RawMessage, error) {
	raw, err := s.cache.Get(ctx, traceKey(debugID))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, debuglog.ErrTraceNotFound
		}
		return nil, err
	}
	return json.RawMessage(raw), nil
}
