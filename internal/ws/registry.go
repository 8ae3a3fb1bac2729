package ws

import (
	"sync"

	"flyhuntgo/internal/game"
)

// registry tracks every live connection so the server can fan the
// Manager's delivery instructions out to their target sockets.
type registry struct {
	mu    sync.RWMutex
	conns map[game.ConnID]*clientConn
}

func newRegistry() *registry {
	return &registry{conns: make(map[game.ConnID]*clientConn)}
}

func (r *registry) add(id game.ConnID, c *clientConn) {
	r.mu.Lock()
	r.conns[id] = c
	r.mu.Unlock()
}

func (r *registry) remove(id game.ConnID) {
	r.mu.Lock()
	delete(r.conns, id)
	r.mu.Unlock()
}

func (r *registry) get(id game.ConnID) (*clientConn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}
