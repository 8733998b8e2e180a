package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

func TestSlots_OrderedByStart(t *testing.T) {
	store := newMemStore()
	svc := NewTurfSvc(turfStore{store})
	turf := store.addTurf("Blue Arena")
	base := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	third := store.addSlot(turf.ID, base.Add(3*time.Hour))
	first := store.addSlot(turf.ID, base.Add(time.Hour))
	second := store.addSlot(turf.ID, base.Add(2*time.Hour))
	store.addSlot(store.addTurf("Green Field").ID, base)

	slots, err := svc.Slots(context.Background(), turf.ID)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, []uint{first.ID, second.ID, third.ID}, []uint{slots[0].ID, slots[1].ID, slots[2].ID})
}

func TestSlots_EmptyTurf(t *testing.T) {
	svc := NewTurfSvc(turfStore{newMemStore()})

	for _, id := range []uint{0, 77} {
		slots, err := svc.Slots(context.Background(), id)
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	}
}

func TestTurfLookups(t *testing.T) {
	store := newMemStore()
	svc := NewTurfSvc(turfStore{store})
	turf := store.addTurf("Green Field")
	slot := store.addSlot(turf.ID, time.Now())

	got, err := svc.Get(context.Background(), turf.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Field", got.Name)

	_, err = svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s, err := svc.Slot(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, turf.ID, s.TurfID)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
