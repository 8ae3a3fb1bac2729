package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReapStaleDeletesOldRoomsRegardlessOfStatus(t *testing.T) {
	store := NewStore()
	mgr := NewManager(store, 32)

	// An in-flight match older than the TTL still gets reaped.
	out := mgr.CreateRoom("a1", "Ann")
	oldCode := out[0].Payload.(RoomCreatedPayload).RoomID
	_, err := mgr.JoinRoom("b1", oldCode, "Bo")
	require.NoError(t, err)
	mgr.ToggleReady("a1")
	mgr.ToggleReady("b1")

	oldRoom, _ := store.Get(oldCode)
	require.Equal(t, StatusPlaying, oldRoom.Status)
	oldRoom.CreatedAt = time.Now().Add(-31 * time.Minute)

	out = mgr.CreateRoom("c1", "Cy")
	youngCode := out[0].Payload.(RoomCreatedPayload).RoomID

	reaped := mgr.ReapStale(30 * time.Minute)
	require.Equal(t, []string{oldCode}, reaped)

	_, ok := store.Get(oldCode)
	assert.False(t, ok)
	_, ok = store.Get(youngCode)
	assert.True(t, ok)

	// Occupants of the reaped room are gone from the registry too; their
	// next event is a plain no-op.
	assert.Empty(t, mgr.ToggleReady("a1"))
	assert.Empty(t, mgr.Leave("b1"))
}

func TestReaperRunSweepsOnTicks(t *testing.T) {
	store := NewStore()
	mgr := NewManager(store, 32)

	out := mgr.CreateRoom("a1", "Ann")
	code := out[0].Payload.(RoomCreatedPayload).RoomID
	room, _ := store.Get(code)
	room.CreatedAt = time.Now().Add(-time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reaper := NewReaper(mgr, 10*time.Millisecond, 30*time.Minute)
	go reaper.Run(ctx)

	require.Eventually(t, func() bool {
		return mgr.RoomCount() == 0
	}, time.Second, 10*time.Millisecond)
}
