package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/validation"
)

// SlotStore persists validation slots as JSON in the shared cache, one key
// per preset id.
type SlotStore struct {
	cache Cache
}

var _ validation.SlotStore = (*SlotStore)(nil)

func NewSlotStore(cache Cache) *SlotStore {
	return &SlotStore{cache: cache}
}

func slotKey(presetID uint) string {
	return fmt.Sprintf("synapse_preset_test_%d", presetID)
}

func (s *SlotStore) Get(ctx context.Context, presetID uint) (*validation.Slot, error) {
	raw, err := s.cache.Get(ctx, slotKey(presetID))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, validation.ErrSlotNotFound
		}
		return nil, err
	}

	var slot validation.Slot
	if err := json.Unmarshal([]byte(raw), &slot); err != nil {
		return nil, fmt.Errorf("decode validation slot: %w", err)
	}
	return &slot, nil
}

func (s *SlotStore) Put(ctx context.Context, presetID uint, slot *validation.Slot, ttl time.Duration) error {
	raw, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("encode validation slot: %w", err)
	}
	return s.cache.Set(ctx, slotKey(presetID), string(raw), ttl)
}

func (s *SlotStore) Delete(ctx context.Context, presetID uint) error {
	return s.cache.Delete(ctx, slotKey(presetID))
}
