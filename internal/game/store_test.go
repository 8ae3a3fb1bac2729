package game

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *Room) {
	t.Helper()
	store := NewStore()
	rng := rand.New(rand.NewSource(7))
	room := store.Create(&Player{ID: "host", Name: "Host"}, rng, time.Now())
	return store, room
}

func TestStoreGetIsCaseInsensitive(t *testing.T) {
	store, room := newTestStore(t)

	got, ok := store.Get(strings.ToLower(room.Code))
	require.True(t, ok)
	assert.Same(t, room, got)

	_, ok = store.Get("NOPE")
	assert.False(t, ok)
}

func TestStoreCreateIndexesHost(t *testing.T) {
	store, room := newTestStore(t)

	got, ok := store.RoomFor("host")
	require.True(t, ok)
	assert.Same(t, room, got)
}

func TestStoreDeleteClearsRegistry(t *testing.T) {
	store, room := newTestStore(t)
	room.addPlayer(&Player{ID: "guest", Name: "Guest"})
	store.Bind("guest", room.Code)

	store.Delete(room.Code)

	_, ok := store.Get(room.Code)
	assert.False(t, ok)
	_, ok = store.RoomFor("host")
	assert.False(t, ok)
	_, ok = store.RoomFor("guest")
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestStoreStaleCodes(t *testing.T) {
	store := NewStore()
	rng := rand.New(rand.NewSource(7))
	now := time.Now()

	old := store.Create(&Player{ID: "a"}, rng, now.Add(-31*time.Minute))
	young := store.Create(&Player{ID: "b"}, rng, now.Add(-5*time.Minute))

	stale := store.StaleCodes(now.Add(-30 * time.Minute))
	require.Len(t, stale, 1)
	assert.Equal(t, old.Code, stale[0])
	assert.NotEqual(t, young.Code, stale[0])
}
