package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/internal/domain/repository"
)

type flashEntry struct {
	flash     entity.RegisterFlash
	expiresAt time.Time
}

// FlashStore keeps one-time flashes per session in process memory.
type FlashStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]flashEntry
	now     func() time.Time
}

// NewFlashStore creates a store; ttl <= 0 keeps flashes until popped.
func NewFlashStore(ttl time.Duration) *FlashStore {
	return &FlashStore{ttl: ttl, entries: make(map[string]flashEntry), now: time.Now}
}

func (s *FlashStore) Put(_ context.Context, sessionID string, f entity.RegisterFlash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := flashEntry{flash: f}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[sessionID] = e
	return nil
}

func (s *FlashStore) Pop(_ context.Context, sessionID string) (entity.RegisterFlash, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return entity.RegisterFlash{}, false, nil
	}
	delete(s.entries, sessionID)
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		return entity.RegisterFlash{}, false, nil
	}
	return e.flash, true, nil
}

var _ repository.FlashRepository = (*FlashStore)(nil)
