package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// TurnLockRepository hands out one mutex per thread so concurrent
// sends into the same thread serialize instead of interleaving their
// history reads and writes. Locks for idle threads expire from the
// cache; mu guards the get-or-create so two requests cannot mint two
// mutexes for the same thread.
type TurnLockRepository struct {
	mu    sync.Mutex
	locks *cache.Cache
}

func NewTurnLockRepository() *TurnLockRepository {
	// Idle thread locks are purged after an hour.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &TurnLockRepository{
		locks: c,
	}
}

func (r *TurnLockRepository) Acquire(threadId uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := threadId.String()
	if x, found := r.locks.Get(key); found {
		// Refresh expiration so an active thread's lock never lapses
		// while held.
		r.locks.Set(key, x, cache.DefaultExpiration)
		return x.(*sync.Mutex)
	}
	m := &sync.Mutex{}
	r.locks.Set(key, m, cache.DefaultExpiration)
	return m
}
