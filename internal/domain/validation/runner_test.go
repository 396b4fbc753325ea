package validation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/preset"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

type mapSlotStore struct {
	mu    sync.Mutex
	slots map[uint]*Slot
}

func newMapSlotStore() *mapSlotStore {
	return &mapSlotStore{slots: make(map[uint]*Slot)}
}

func (s *mapSlotStore) Get(ctx context.Context, presetID uint) (*Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[presetID]
	if !ok {
		return nil, ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (s *mapSlotStore) Put(ctx context.Context, presetID uint, slot *Slot, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *slot
	s.slots[presetID] = &copied
	return nil
}

func (s *mapSlotStore) Delete(ctx context.Context, presetID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, presetID)
	return nil
}

type countingAgent struct {
	mu     sync.Mutex
	runs   int
	report *Report
	err    error
}

func (a *countingAgent) RunAll(ctx context.Context, p *preset.Preset) (*Report, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runs++
	if a.err != nil {
		return nil, a.err
	}
	return a.report, nil
}

func (a *countingAgent) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runs
}

type stubPresetDirectory struct {
	preset *preset.Preset
}

func (d *stubPresetDirectory) FindByID(ctx context.Context, id uint) (*preset.Preset, error) {
	if d.preset == nil || d.preset.ID != id {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "preset not found", nil)
	}
	return d.preset, nil
}

type stubChecker struct {
	validity preset.Validity
}

func (c *stubChecker) Check(ctx context.Context, p *preset.Preset) (preset.Validity, error) {
	return c.validity, nil
}

func newTestRunner(agent Agent) (*Runner, *mapSlotStore) {
	slots := newMapSlotStore()
	presets := &stubPresetDirectory{preset: &preset.Preset{
		ID:           7,
		Name:         "Production",
		ProviderName: "gemini",
		Model:        "gemini-2.5-flash",
	}}
	checker := &stubChecker{validity: preset.Validity{Valid: true}}
	runner := NewRunner(slots, NoopLocker{}, agent, presets, checker, time.Hour, time.Minute)
	return runner, slots
}

func successReport() *Report {
	return &Report{
		AllCriticalOK: true,
		Analysis:      "validation completed",
		CriticalChecks: map[string]bool{
			CheckResponseNotEmpty: true,
			CheckDebugSavedInDB:   true,
		},
		ConfigChecks: map[string]bool{},
		ConfigErrors: []string{},
		ConfigOK:     true,
		PresetInfo:   PresetInfo{Name: "Production"},
	}
}

func TestStartThenPollRunsAgentOnce(t *testing.T) {
	agent := &countingAgent{report: successReport()}
	runner, _ := newTestRunner(agent)
	ctx := context.Background()

	require.NoError(t, runner.StartTest(ctx, 7))

	status, err := runner.PollStatus(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status.Status)
	assert.Equal(t, 100, status.Progress)
	require.NotNil(t, status.Report)
	assert.True(t, status.Report.AllCriticalOK)
	assert.Equal(t, "Production", status.Report.PresetInfo.Name)
	assert.Equal(t, 1, agent.count())
}

func TestRepeatedPollsDoNotRerunAgent(t *testing.T) {
	agent := &countingAgent{report: successReport()}
	runner, _ := newTestRunner(agent)
	ctx := context.Background()

	require.NoError(t, runner.StartTest(ctx, 7))

	for i := 0; i < 5; i++ {
		status, err := runner.PollStatus(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, status.Status)
	}

	assert.Equal(t, 1, agent.count())
}

func TestAgentFailureProducesSynthesizedReport(t *testing.T) {
	agent := &countingAgent{err: errors.New("boom")}
	runner, _ := newTestRunner(agent)
	ctx := context.Background()

	require.NoError(t, runner.StartTest(ctx, 7))

	status, err := runner.PollStatus(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status.Status)
	require.NotNil(t, status.Report)
	assert.False(t, status.Report.AllCriticalOK)
	assert.Equal(t, "boom", status.Report.SyncError)
	assert.False(t, status.Report.CriticalChecks[CheckResponseNotEmpty])
	assert.False(t, status.Report.CriticalChecks[CheckDebugSavedInDB])
	assert.Equal(t, "Production", status.Report.PresetInfo.Name)
}

func TestPollWithoutStartIsNotFound(t *testing.T) {
	agent := &countingAgent{report: successReport()}
	runner, _ := newTestRunner(agent)

	_, err := runner.PollStatus(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, platformerrors.ErrorTypeNotFound, platformerrors.TypeOf(err))
	assert.Equal(t, 0, agent.count())
}

func TestStartTestResetsCompletedSlot(t *testing.T) {
	agent := &countingAgent{report: successReport()}
	runner, slots := newTestRunner(agent)
	ctx := context.Background()

	require.NoError(t, runner.StartTest(ctx, 7))
	_, err := runner.PollStatus(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, agent.count())

	// Restarting discards the completed slot and runs again on next poll.
	require.NoError(t, runner.StartTest(ctx, 7))

	slot, err := slots.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, slot.Status)

	status, err := runner.PollStatus(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status.Status)
	assert.Equal(t, 2, agent.count())
}

func TestStartTestRefusesInvalidPreset(t *testing.T) {
	agent := &countingAgent{report: successReport()}
	slots := newMapSlotStore()
	presets := &stubPresetDirectory{preset: &preset.Preset{ID: 7, Name: "Broken"}}
	checker := &stubChecker{validity: preset.Validity{Valid: false, Reason: "no provider or model configured"}}
	runner := NewRunner(slots, NoopLocker{}, agent, presets, checker, time.Hour, time.Minute)

	err := runner.StartTest(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, platformerrors.ErrorTypeValidation, platformerrors.TypeOf(err))
	assert.Contains(t, err.Error(), "no provider or model configured")

	_, err = slots.Get(context.Background(), 7)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestConcurrentPollsObserveTerminalSlot(t *testing.T) {
	agent := &countingAgent{report: successReport()}
	runner, _ := newTestRunner(agent)
	ctx := context.Background()

	require.NoError(t, runner.StartTest(ctx, 7))

	var wg sync.WaitGroup
	results := make([]*StatusResponse, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, err := runner.PollStatus(ctx, 7)
			require.NoError(t, err)
			results[i] = status
		}(i)
	}
	wg.Wait()

	for _, status := range results {
		assert.Equal(t, StatusCompleted, status.Status)
		require.NotNil(t, status.Report)
		assert.True(t, status.Report.AllCriticalOK)
	}
	// Duplicate execution is tolerated under concurrency, never more than
	// one run per racing poller.
	assert.LessOrEqual(t, agent.count(), 4)
	assert.GreaterOrEqual(t, agent.count(), 1)
}
