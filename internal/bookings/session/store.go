package session

import (
	"sync"
	"time"
)

// Store holds live selection sessions in memory with a TTL. Expired
// sessions vanish lazily on Get and periodically via the cleanup loop.
type Store struct {
	mu     sync.RWMutex
	store  map[string]*Session
	ttl    time.Duration
	stopCh chan struct{}
}

func NewStore(ttl time.Duration) *Store {
	store := &Store{
		store:  make(map[string]*Session),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}

	go store.cleanup()

	return store
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[sess.ID] = sess
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, exists := s.store[id]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if sess.Expired(time.Now()) {
		s.mu.Lock()
		delete(s.store, id)
		s.mu.Unlock()
		return nil, false
	}

	return sess, true
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, id)
}

func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, sess := range s.store {
				if sess.Expired(now) {
					delete(s.store, id)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Store) Stop() {
	close(s.stopCh)
}
