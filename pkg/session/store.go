package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Store is the interface for session storage backends.
type Store interface {
	// Create stores a new empty session and returns it.
	Create(ctx context.Context) (*Session, error)

	// Get retrieves a session by ID.
	// Returns a TREE_NOT_FOUND error if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a store whose sessions expire after ttl of
// inactivity. A non-positive ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// GenerateID returns a random session identifier.
func GenerateID() string {
	return uuid.NewString()
}

func (m *MemoryStore) Create(ctx context.Context) (*Session, error) {
	s := New(GenerateID())
	s.now = m.now
	s.CreatedAt = m.now()
	s.lastUsed = s.CreatedAt

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}

// Get returns the session with the given id and marks it as used, so reads
// keep a session alive as well as mutations do.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeTreeNotFound, "tree %q not found", id)
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeTreeNotFound, "tree %q not found", id)
	}
	if m.expired(s) {
		_ = m.Delete(ctx, id)
		return nil, errors.New(errors.ErrCodeTreeNotFound, "tree %q expired", id)
	}
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
	return s, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Cleanup(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
		}
	}
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemoryStore) expired(s *Session) bool {
	return m.now().Sub(s.LastUsed()) > m.ttl
}

var _ Store = (*MemoryStore)(nil)
