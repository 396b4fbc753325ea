package preset

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/utils/platformerrors"
)

type fakeRepo struct {
	presets map[uint]*Preset
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{presets: make(map[uint]*Preset), nextID: 1}
}

func (r *fakeRepo) FindByID(ctx context.Context, id uint) (*Preset, error) {
	p, ok := r.presets[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) FindAllOrdered(ctx context.Context) ([]*Preset, error) {
	out := make([]*Preset, 0, len(r.presets))
	for _, p := range r.presets {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepo) FindActive(ctx context.Context) (*Preset, error) {
	for _, p := range r.presets {
		if p.Active {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) Create(ctx context.Context, p *Preset) error {
	p.ID = r.nextID
	r.nextID++
	copied := *p
	r.presets[p.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, p *Preset) error {
	copied := *p
	r.presets[p.ID] = &copied
	return nil
}

func (r *fakeRepo) DeleteByID(ctx context.Context, id uint) error {
	delete(r.presets, id)
	return nil
}

func (r *fakeRepo) Activate(ctx context.Context, id uint) error {
	for _, p := range r.presets {
		p.Active = p.ID == id
	}
	return nil
}

func (r *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.presets)), nil
}

func newTestService(repo Repository) *Service {
	registry := model.NewRegistry("")
	checker := newTestChecker()
	return NewService(repo, registry, checker)
}

func TestActivateInvalidPresetBlockedWithReason(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Preset{
		Name:         "Broken",
		ProviderName: "mistral",
		Model:        "gemini-2.5-flash",
	}))

	_, err := svc.Activate(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, platformerrors.ErrorTypeValidation, platformerrors.TypeOf(err))
	assert.Contains(t, err.Error(), `provider "mistral" not found`)

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestActivateValidPresetDeactivatesOthers(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Preset{
		Name: "Old", ProviderName: "gemini", Model: "gemini-2.5-flash", Active: true,
	}))
	require.NoError(t, repo.Create(ctx, &Preset{
		Name: "New", ProviderName: "gemini", Model: "gemini-2.5-flash",
	}))

	activated, err := svc.Activate(ctx, 2)
	require.NoError(t, err)
	assert.True(t, activated.Active)

	old, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, old.Active)
}

func TestDeleteActivePresetRefused(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Preset{
		Name: "Live", ProviderName: "gemini", Model: "gemini-2.5-flash", Active: true,
	}))

	err := svc.Delete(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, platformerrors.ErrorTypeConflict, platformerrors.TypeOf(err))

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestDeleteInactivePreset(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Preset{Name: "Stale"}))
	require.NoError(t, svc.Delete(ctx, 1))

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeleteMissingPresetIsNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())
	err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, platformerrors.ErrorTypeNotFound, platformerrors.TypeOf(err))
}

func TestCloneCopiesEverythingButActivation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	topK := 40
	require.NoError(t, repo.Create(ctx, &Preset{
		Name:         "Prod",
		ProviderName: "gemini",
		Model:        "gemini-2.5-flash",
		Temperature:  0.7,
		TopP:         0.9,
		TopK:         &topK,
		ProviderOptions: ProviderOptions{
			Thinking: &ThinkingOptions{Budget: intPtr(2048)},
		},
		Active: true,
	}))

	clone, err := svc.Clone(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Prod (copy)", clone.Name)
	assert.False(t, clone.Active)
	assert.Equal(t, 0.7, clone.Temperature)
	require.NotNil(t, clone.TopK)
	assert.Equal(t, 40, *clone.TopK)

	// Deep copy: mutating the clone's options leaves the source alone.
	*clone.ProviderOptions.Thinking.Budget = 1
	source, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2048, *source.ProviderOptions.Thinking.Budget)
}

func TestApplyFormDefaultsAndSanitizes(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, FormInput{
		Name:            "Tuned",
		ProviderName:    "gemini",
		Model:           "gemini-2.5-flash",
		StopSequences:   "END, STOP , ,",
		ProviderOptions: json.RawMessage(`{"thinking":{"budget":50}}`),
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, created.Temperature)
	assert.Equal(t, 0.95, created.TopP)
	assert.Equal(t, []string{"END", "STOP"}, created.StopSequences)
	require.NotNil(t, created.ProviderOptions.Thinking)
	require.NotNil(t, created.ProviderOptions.Thinking.Budget)
	assert.Equal(t, 1024, *created.ProviderOptions.Thinking.Budget)
}

func TestApplyFormDropsTopKWhenUnsupported(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	topK := 64
	created, err := svc.Create(ctx, FormInput{
		Name:         "OVH",
		ProviderName: "ovh",
		Model:        "gpt-oss-120b",
		TopK:         &topK,
	})
	require.NoError(t, err)
	assert.Nil(t, created.TopK)
}
