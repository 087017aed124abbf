package models

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rohanthewiz/logger"
)

// SessionStore keeps one SearchController per browser session in memory.
// It is bounded by size and drops sessions idle for longer than ttl; a
// dropped session simply starts over as not-yet-searched.
type SessionStore struct {
	mu    sync.Mutex
	lru   *expirable.LRU[string, *SearchController]
	build func() *SearchController
}

// NewSessionStore returns a store of at most size sessions. build creates the
// controller for a session seen for the first time.
func NewSessionStore(size int, ttl time.Duration, build func() *SearchController) *SessionStore {
	onEvict := func(id string, _ *SearchController) {
		logger.Debug("Session evicted", "session_id", id)
	}
	return &SessionStore{
		lru:   expirable.NewLRU[string, *SearchController](size, onEvict, ttl),
		build: build,
	}
}

// Controller returns the controller of sessionID, creating it when needed.
func (ss *SessionStore) Controller(sessionID string) *SearchController {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if sc, ok := ss.lru.Get(sessionID); ok {
		// re-adding restarts the idle timer
		ss.lru.Add(sessionID, sc)
		return sc
	}
	sc := ss.build()
	ss.lru.Add(sessionID, sc)
	return sc
}

// Len is the number of live sessions.
func (ss *SessionStore) Len() int {
	return ss.lru.Len()
}
