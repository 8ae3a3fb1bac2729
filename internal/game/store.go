package game

import (
	"math/rand"
	"strings"
	"time"
)

// Store holds every live room plus the connection → room reverse index.
// It does no locking of its own: the Manager (and through it the Reaper)
// serializes all access behind a single mutex, which is enough because
// cross-room transactions never occur and critical sections are short.
type Store struct {
	rooms  map[string]*Room
	byConn map[ConnID]string
}

func NewStore() *Store {
	return &Store{
		rooms:  make(map[string]*Room),
		byConn: make(map[ConnID]string),
	}
}

// Create allocates a fresh non-colliding code, builds the room with the
// given player as host and indexes the host connection.
func (s *Store) Create(host *Player, rng *rand.Rand, now time.Time) *Room {
	var code string
	for {
		code = randomCode(rng)
		if _, exists := s.rooms[code]; !exists {
			break
		}
	}
	room := newRoom(code, host, now)
	s.rooms[code] = room
	s.byConn[host.ID] = code
	return room
}

// Get looks a room up by code, case-insensitively.
func (s *Store) Get(code string) (*Room, bool) {
	room, ok := s.rooms[strings.ToUpper(code)]
	return room, ok
}

// Delete removes the room and every registry entry pointing at it.
func (s *Store) Delete(code string) {
	room, ok := s.rooms[code]
	if !ok {
		return
	}
	for id := range room.players {
		delete(s.byConn, id)
	}
	delete(s.rooms, code)
}

// RoomFor resolves the room a connection currently belongs to.
func (s *Store) RoomFor(id ConnID) (*Room, bool) {
	code, ok := s.byConn[id]
	if !ok {
		return nil, false
	}
	room, ok := s.rooms[code]
	return room, ok
}

// Bind indexes a joining connection; Unbind drops a leaver. Create and
// Delete maintain the index themselves.
func (s *Store) Bind(id ConnID, code string) { s.byConn[id] = code }
func (s *Store) Unbind(id ConnID)            { delete(s.byConn, id) }

func (s *Store) Len() int { return len(s.rooms) }

// StaleCodes returns the codes of rooms created before the cutoff,
// regardless of status or occupancy.
func (s *Store) StaleCodes(cutoff time.Time) []string {
	var codes []string
	for code, room := range s.rooms {
		if room.CreatedAt.Before(cutoff) {
			codes = append(codes, code)
		}
	}
	return codes
}
