package game

import (
	"context"
	"time"
)

// Reaper sweeps the store on a fixed interval and deletes rooms older
// than the TTL. It is a blunt age cutoff, not an idle timer: a room with
// a match still running gets reaped all the same.
type Reaper struct {
	mgr      *Manager
	interval time.Duration
	ttl      time.Duration
}

func NewReaper(mgr *Manager, interval, ttl time.Duration) *Reaper {
	return &Reaper{mgr: mgr, interval: interval, ttl: ttl}
}

// Run blocks until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mgr.ReapStale(r.ttl)
		}
	}
}
