package ws

import (
	"encoding/json"
	"sync"

	"flyhuntgo/internal/game"
)

// internal (untyped) handler signature.
type rawHandler func(c *ConnContext, body json.RawMessage) []game.Outgoing

// Router keeps a map[event]handler, à‑la gin.Engine.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]rawHandler
}

func NewRouter() *Router { return &Router{handlers: make(map[string]rawHandler)} }

// Register binds an event to a strongly‑typed handler.
func Register[Req any](
	r *Router,
	event string,
	h func(c *ConnContext, req Req) []game.Outgoing,
) {
	if event == "" {
		panic("ws router: empty event")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[event] = func(c *ConnContext, body json.RawMessage) []game.Outgoing {
		var req Req
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				// Malformed payloads are dropped; the protocol has no
				// bad-request signal.
				return nil
			}
		}
		return h(c, req)
	}
}

// dispatch is called by the server's reader loop. Unknown events are
// dropped the same way malformed ones are.
func (r *Router) dispatch(c *ConnContext, env Envelope) []game.Outgoing {
	r.mu.RLock()
	h, ok := r.handlers[env.Event]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return h(c, env.Body)
}
