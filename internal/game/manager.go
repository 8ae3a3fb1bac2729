package game

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultHostName  = "Player 1"
	defaultGuestName = "Player 2"
)

// Manager is the room lifecycle state machine. One method per inbound
// event; each validates, mutates the store and returns the deliveries the
// transport should make. Events that reference a nonexistent room or
// arrive in the wrong status return an empty slice rather than an error:
// the protocol has no bad-request signal.
//
// A single mutex serializes every event (and the Reaper's sweep) against
// the whole store; per-event work is a handful of map operations.
type Manager struct {
	mu    sync.Mutex
	store *Store
	rng   *rand.Rand
	// campaign is the number of selectable levels; game start picks one
	// uniformly from [1, campaign].
	campaign int
	now      func() time.Time
}

func NewManager(store *Store, campaignLevels int) *Manager {
	return &Manager{
		store:    store,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		campaign: campaignLevels,
		now:      time.Now,
	}
}

// CreateRoom allocates a room with the requester as host. A connection
// already seated somewhere is dropped silently; honoring it would leave
// the registry pointing at two rooms at once.
func (m *Manager) CreateRoom(conn ConnID, playerName string) []Outgoing {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, seated := m.store.RoomFor(conn); seated {
		return nil
	}

	host := NewPlayer(conn, playerName, defaultHostName)
	room := m.store.Create(host, m.rng, m.now())

	zap.L().Info("room created",
		zap.String("room", room.Code), zap.String("player", host.Name))

	return []Outgoing{unicast(conn, EventRoomCreated, RoomCreatedPayload{
		RoomID:  room.Code,
		Players: room.views(),
	})}
}

// JoinRoom adds the requester to an existing waiting room. On failure the
// room is left untouched and the error is reported to the requester only.
func (m *Manager) JoinRoom(conn ConnID, code, playerName string) ([]Outgoing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, seated := m.store.RoomFor(conn); seated {
		return nil, nil
	}

	room, ok := m.store.Get(code)
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.Status != StatusWaiting {
		return nil, ErrGameInProgress
	}
	if room.isFull() {
		return nil, ErrRoomFull
	}

	player := NewPlayer(conn, playerName, defaultGuestName)
	room.addPlayer(player)
	m.store.Bind(conn, room.Code)

	zap.L().Info("player joined",
		zap.String("room", room.Code), zap.String("player", player.Name))

	views := room.views()
	out := []Outgoing{
		unicast(conn, EventRoomJoined, RoomJoinedPayload{RoomID: room.Code, Players: views}),
		{To: room.otherIDs(conn), Event: EventPlayerJoined, Payload: PlayerJoinedPayload{Players: views}},
	}
	return out, nil
}

// ToggleReady flips the requester's ready flag. Readiness is the sole
// admission gate: the moment both seats are taken and both flags are up,
// the match starts.
func (m *Manager) ToggleReady(conn ConnID) []Outgoing {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.store.RoomFor(conn)
	if !ok {
		return nil
	}
	player, ok := room.player(conn)
	if !ok {
		return nil
	}

	player.Ready = !player.Ready
	zap.L().Info("ready toggled",
		zap.String("room", room.Code), zap.String("player", player.Name),
		zap.Bool("ready", player.Ready))

	out := []Outgoing{{
		To:      room.allIDs(),
		Event:   EventPlayersUpdated,
		Payload: PlayersUpdatedPayload{Players: room.views()},
	}}

	if room.playerCount() == maxPlayers && room.allReady() {
		room.LevelNumber = m.rng.Intn(m.campaign) + 1
		room.Status = StatusPlaying
		for _, p := range room.playersInOrder() {
			p.resetStats()
		}
		zap.L().Info("game starting",
			zap.String("room", room.Code), zap.Int("level", room.LevelNumber))
		out = append(out, Outgoing{
			To:      room.allIDs(),
			Event:   EventGameStart,
			Payload: GameStartPayload{LevelNumber: room.LevelNumber},
		})
	}
	return out
}

// FlyFound stores the sender's reported score and found-count and relays
// them to the opponent. The server never recomputes scores; it is a relay,
// not a referee.
func (m *Manager) FlyFound(conn ConnID, score, foundCount int) []Outgoing {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, player, ok := m.playingPlayer(conn)
	if !ok {
		return nil
	}

	player.Score = score
	player.FoundCount = foundCount

	return []Outgoing{{
		To:    room.otherIDs(conn),
		Event: EventOpponentUpdate,
		Payload: OpponentUpdatePayload{
			PlayerID:   string(conn),
			PlayerName: player.Name,
			Score:      player.Score,
			FoundCount: player.FoundCount,
		},
	}}
}

// PlayerMiss records the sender's misclick total. Pure bookkeeping; the
// value only surfaces again in the game-over results.
func (m *Manager) PlayerMiss(conn ConnID, misclicks int) []Outgoing {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, player, ok := m.playingPlayer(conn)
	if !ok {
		return nil
	}
	player.Misclicks = misclicks
	return nil
}

// PlayerFinished marks the sender done and, once the second finisher
// lands, closes the match and emits the results exactly once.
func (m *Manager) PlayerFinished(conn ConnID, won bool, score, foundCount, misclicks int) []Outgoing {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, player, ok := m.playingPlayer(conn)
	if !ok {
		return nil
	}

	player.Finished = true
	player.Score = score
	player.FoundCount = foundCount
	player.Misclicks = misclicks

	zap.L().Info("player finished",
		zap.String("room", room.Code), zap.String("player", player.Name),
		zap.Bool("won", won), zap.Int("score", score))

	out := []Outgoing{{
		To:    room.otherIDs(conn),
		Event: EventOpponentFinished,
		Payload: OpponentFinishedPayload{
			PlayerName: player.Name,
			Won:        won,
			Score:      score,
			FoundCount: foundCount,
		},
	}}

	if room.allFinished() {
		room.Status = StatusFinished
		zap.L().Info("game over", zap.String("room", room.Code))
		out = append(out, Outgoing{
			To:      room.allIDs(),
			Event:   EventGameOver,
			Payload: GameOverPayload{Results: room.results()},
		})
	}
	return out
}

// RequestRematch resets everyone and drops the room back to waiting; both
// players must re-ready to start the next game.
func (m *Manager) RequestRematch(conn ConnID) []Outgoing {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.store.RoomFor(conn)
	if !ok {
		return nil
	}

	for _, p := range room.playersInOrder() {
		p.Ready = false
		p.resetStats()
	}
	room.Status = StatusWaiting

	return []Outgoing{{
		To:      room.allIDs(),
		Event:   EventRematch,
		Payload: RematchPayload{Players: room.views()},
	}}
}

// Leave handles both an explicit leave-room and a transport disconnect.
// An empty room is deleted on the spot; otherwise the host seat migrates
// to the first remaining player and the room falls back to waiting, since
// a match cannot continue one-player.
func (m *Manager) Leave(conn ConnID) []Outgoing {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.store.RoomFor(conn)
	if !ok {
		return nil
	}

	player := room.removePlayer(conn)
	m.store.Unbind(conn)
	name := "Unknown"
	if player != nil {
		name = player.Name
	}
	zap.L().Info("player left",
		zap.String("room", room.Code), zap.String("player", name))

	if room.playerCount() == 0 {
		m.store.Delete(room.Code)
		zap.L().Info("room deleted", zap.String("room", room.Code))
		return nil
	}

	if room.Host == conn {
		room.Host = room.order[0]
	}
	room.Status = StatusWaiting

	return []Outgoing{{
		To:      room.allIDs(),
		Event:   EventPlayerLeft,
		Payload: PlayerLeftPayload{PlayerName: name, Players: room.views()},
	}}
}

// ReapStale deletes every room older than ttl, whatever its status, and
// returns the reaped codes. Occupants are not notified; they find out on
// their next operation.
func (m *Manager) ReapStale(ttl time.Duration) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	codes := m.store.StaleCodes(m.now().Add(-ttl))
	for _, code := range codes {
		m.store.Delete(code)
		zap.L().Info("reaped stale room", zap.String("room", code))
	}
	return codes
}

// RoomCount reports how many rooms are live, for the health probe.
func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Len()
}

// playingPlayer resolves the sender's room and player, gated on an active
// match. Callers hold m.mu.
func (m *Manager) playingPlayer(conn ConnID) (*Room, *Player, bool) {
	room, ok := m.store.RoomFor(conn)
	if !ok || room.Status != StatusPlaying {
		return nil, nil, false
	}
	player, ok := room.player(conn)
	if !ok {
		return nil, nil, false
	}
	return room, player, true
}
