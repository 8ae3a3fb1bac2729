package game

import "time"

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

const maxPlayers = 2

// Room is one match session. It is owned by the Store and must only be
// touched while the Manager's lock is held.
type Room struct {
	Code        string
	Host        ConnID
	LevelNumber int
	Status      Status
	CreatedAt   time.Time

	players map[ConnID]*Player
	// order records insertion order so that host migration and result
	// lists are deterministic with two entries.
	order []ConnID
}

func newRoom(code string, host *Player, now time.Time) *Room {
	r := &Room{
		Code:        code,
		Host:        host.ID,
		LevelNumber: 1,
		Status:      StatusWaiting,
		CreatedAt:   now,
		players:     make(map[ConnID]*Player, maxPlayers),
	}
	r.addPlayer(host)
	return r
}

func (r *Room) addPlayer(p *Player) {
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
}

func (r *Room) removePlayer(id ConnID) *Player {
	p, ok := r.players[id]
	if !ok {
		return nil
	}
	delete(r.players, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p
}

func (r *Room) player(id ConnID) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

func (r *Room) playerCount() int { return len(r.players) }

func (r *Room) isFull() bool { return len(r.players) >= maxPlayers }

// playersInOrder returns the players in insertion order, host-first unless
// the host has migrated.
func (r *Room) playersInOrder() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

func (r *Room) otherIDs(except ConnID) []ConnID {
	out := make([]ConnID, 0, len(r.order))
	for _, id := range r.order {
		if id != except {
			out = append(out, id)
		}
	}
	return out
}

func (r *Room) allIDs() []ConnID {
	out := make([]ConnID, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Room) allReady() bool {
	for _, p := range r.players {
		if !p.Ready {
			return false
		}
	}
	return true
}

func (r *Room) allFinished() bool {
	for _, p := range r.players {
		if !p.Finished {
			return false
		}
	}
	return true
}

// views derives the wire-facing player list, isHost computed on the fly.
func (r *Room) views() []PlayerView {
	out := make([]PlayerView, 0, len(r.order))
	for _, p := range r.playersInOrder() {
		out = append(out, PlayerView{
			ID:         string(p.ID),
			Name:       p.Name,
			Ready:      p.Ready,
			FoundCount: p.FoundCount,
			Score:      p.Score,
			Misclicks:  p.Misclicks,
			Finished:   p.Finished,
			IsHost:     p.ID == r.Host,
		})
	}
	return out
}

func (r *Room) results() []ResultEntry {
	out := make([]ResultEntry, 0, len(r.order))
	for _, p := range r.playersInOrder() {
		out = append(out, ResultEntry{
			Name:       p.Name,
			Score:      p.Score,
			FoundCount: p.FoundCount,
			Misclicks:  p.Misclicks,
			IsHost:     p.ID == r.Host,
		})
	}
	return out
}
