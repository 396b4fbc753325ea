package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/preset"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/metrics"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

// PresetDirectory resolves presets for the runner.
type PresetDirectory interface {
	FindByID(ctx context.Context, id uint) (*preset.Preset, error)
}

// ValidityChecker gates test starts the same way activation is gated.
type ValidityChecker interface {
	Check(ctx context.Context, p *preset.Preset) (preset.Validity, error)
}

// StatusResponse is what pollers receive.
type StatusResponse struct {
	Status   Status  `json:"status"`
	Progress int     `json:"progress"`
	Report   *Report `json:"report,omitempty"`
}

// Runner is the validation run state machine. It owns one time-limited cache
// slot per preset and drives it pending -> completed: the first poll to
// observe pending executes the agent synchronously within that call and
// writes the terminal report back, every later poll just reads the slot.
//
// Coordination is a shared cache with no check-and-set, so two pollers can
// both observe pending and both run the agent. The per-key lease narrows that
// window but the contract does not require closing it: polling is
// client-paced, a duplicate run just produces a duplicate report, and the
// last write to the slot wins.
type Runner struct {
	slots      SlotStore
	locks      Locker
	agent      Agent
	presets    PresetDirectory
	checker    ValidityChecker
	slotTTL    time.Duration
	runTimeout time.Duration
}

func NewRunner(
	slots SlotStore,
	locks Locker,
	agent Agent,
	presets PresetDirectory,
	checker ValidityChecker,
	slotTTL time.Duration,
	runTimeout time.Duration,
) *Runner {
	if slotTTL <= 0 {
		slotTTL = time.Hour
	}
	if runTimeout <= 0 {
		runTimeout = 5 * time.Minute
	}
	return &Runner{
		slots:      slots,
		locks:      locks,
		agent:      agent,
		presets:    presets,
		checker:    checker,
		slotTTL:    slotTTL,
		runTimeout: runTimeout,
	}
}

// StartTest discards any existing slot for the preset and creates a fresh
// pending one. Calling it twice simply restarts the test; an in-flight run
// for the old slot is abandoned (its late write still lands, last write
// wins). Invalid presets are refused before anything expensive happens.
func (r *Runner) StartTest(ctx context.Context, presetID uint) error {
	p, err := r.presets.FindByID(ctx, presetID)
	if err != nil {
		return err
	}

	validity, err := r.checker.Check(ctx, p)
	if err != nil {
		return err
	}
	if !validity.Valid {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, validity.Reason, nil)
	}

	if err := r.slots.Delete(ctx, presetID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "discard previous validation slot")
	}

	slot := &Slot{Status: StatusPending, Progress: 0}
	if err := r.slots.Put(ctx, presetID, slot, r.slotTTL); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create validation slot")
	}

	log.Ctx(ctx).Info().Uint("preset_id", presetID).Msg("Preset validation test started")
	return nil
}

// PollStatus reads the slot for a preset. The first poll to observe pending
// runs the full validation inside this call, which can take the whole agent
// budget; callers must allow for that.
func (r *Runner) PollStatus(ctx context.Context, presetID uint) (*StatusResponse, error) {
	slot, err := r.slots.Get(ctx, presetID)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "no validation run found for preset", err)
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "read validation slot")
	}

	if slot.Status == StatusCompleted {
		return &StatusResponse{Status: slot.Status, Progress: slot.Progress, Report: slot.Report}, nil
	}

	result := slot
	leaseKey := fmt.Sprintf("synapse_preset_test_lock_%d", presetID)
	leaseErr := r.locks.WithLease(ctx, leaseKey, r.runTimeout, func() error {
		// Re-read under the lease: a concurrent poller may have finished the
		// run while we waited.
		current, err := r.slots.Get(ctx, presetID)
		if err == nil && current.Status == StatusCompleted {
			result = current
			return nil
		}
		result = r.execute(ctx, presetID)
		return nil
	})
	if leaseErr != nil {
		// The lease is best effort: losing it means running unguarded and
		// accepting the documented duplicate-execution race.
		log.Ctx(ctx).Warn().Err(leaseErr).Uint("preset_id", presetID).Msg("Validation lease unavailable, running unguarded")
		result = r.execute(ctx, presetID)
	}

	return &StatusResponse{Status: result.Status, Progress: result.Progress, Report: result.Report}, nil
}

// execute runs the agent and persists the completed slot. It always produces
// a terminal slot: an agent failure becomes a synthesized failure report, so
// the run can never stay wedged in pending.
func (r *Runner) execute(ctx context.Context, presetID uint) *Slot {
	runCtx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	presetName := ""
	var report *Report

	start := time.Now()
	p, err := r.presets.FindByID(runCtx, presetID)
	if err == nil {
		presetName = p.Name
		report, err = r.agent.RunAll(runCtx, p)
	}
	duration := time.Since(start)

	status := "succeeded"
	if err != nil {
		status = "failed"
		report = FailureReport(presetName, err)
		log.Ctx(ctx).Error().Err(err).Uint("preset_id", presetID).Msg("Preset validation agent failed")
	}
	metrics.TestRunsTotal.WithLabelValues(status).Inc()
	metrics.TestRunDuration.Observe(duration.Seconds())

	completed := &Slot{Status: StatusCompleted, Progress: 100, Report: report}

	// Discard-then-recreate instead of mutating in place, to avoid stale-read
	// races against the cache backend. Same key, same TTL.
	if err := r.slots.Delete(ctx, presetID); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("preset_id", presetID).Msg("Failed to discard pending validation slot")
	}
	if err := r.slots.Put(ctx, presetID, completed, r.slotTTL); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("preset_id", presetID).Msg("Failed to persist completed validation slot")
	}

	return completed
}
