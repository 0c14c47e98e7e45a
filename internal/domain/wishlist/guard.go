// internal/domain/wishlist/guard.go
package wishlist

import (
	"sync"
	"time"
)

// addGuard is a small per-key state machine: a key is idle until an add is
// accepted, then busy until the cooldown elapses. Calls arriving while busy
// are rejected, so one user click cannot enqueue two additions.
type addGuard struct {
	mu       sync.Mutex
	cooldown time.Duration
	busy     map[string]time.Time // key -> idle-again time
}

func newAddGuard(cooldown time.Duration) *addGuard {
	return &addGuard{
		cooldown: cooldown,
		busy:     make(map[string]time.Time),
	}
}

// tryAcquire transitions the key from idle to busy. Returns false while the
// key is still inside its cooldown window.
func (g *addGuard) tryAcquire(key string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if until, ok := g.busy[key]; ok && now.Before(until) {
		return false
	}
	g.busy[key] = now.Add(g.cooldown)

	// Opportunistic sweep keeps the map from growing unbounded
	if len(g.busy) > 1024 {
		for k, until := range g.busy {
			if now.After(until) {
				delete(g.busy, k)
			}
		}
	}

	return true
}
