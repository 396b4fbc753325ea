package validation

import (
	"context"
	"errors"
	"time"
)

// Status of a validation slot.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Slot is the cache-resident state of one validation run, keyed by preset id.
// It transitions exactly once from pending to completed and vanishes on
// expiry.
type Slot struct {
	Status   Status  `json:"status"`
	Progress int     `json:"progress"`
	Report   *Report `json:"report,omitempty"`
}

// ErrSlotNotFound is returned by SlotStore.Get when no slot exists for the
// preset (expired or never started).
var ErrSlotNotFound = errors.New("validation slot not found")

// SlotStore is the keyed, time-limited cache used as the only coordination
// primitive between pollers. No compare-and-swap is assumed.
type SlotStore interface {
	Get(ctx context.Context, presetID uint) (*Slot, error)
	Put(ctx context.Context, presetID uint, slot *Slot, ttl time.Duration) error
	Delete(ctx context.Context, presetID uint) error
}

// Locker provides a best-effort per-key lease around the expensive pending
// branch. The external contract tolerates duplicate execution; the lease only
// narrows the window.
type Locker interface {
	WithLease(ctx context.Context, key string, ttl time.Duration, fn func() error) error
}

// NoopLocker satisfies Locker without coordination, for single-process
// deployments and tests.
type NoopLocker struct{}

func (NoopLocker) WithLease(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	return fn()
}
