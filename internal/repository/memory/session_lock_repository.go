package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionLockRepository hands out a per-session mutex so only one message is
// in flight per chat session at a time. Locks expire with the cache entry, so
// an abandoned session does not pin memory forever.
type SessionLockRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionLockRepository() *SessionLockRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionLockRepository{
		cache: c,
	}
}

// Get returns the lock for the given session id, creating it on first use.
func (r *SessionLockRepository) Get(sessionID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		// Touch the entry so active sessions keep their lock alive.
		r.cache.Set(sessionID, x, cache.DefaultExpiration)
		return x.(*sync.Mutex)
	}

	lock := &sync.Mutex{}
	r.cache.Set(sessionID, lock, cache.DefaultExpiration)
	return lock
}

// Delete drops the lock entry, typically after a session is closed.
func (r *SessionLockRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
