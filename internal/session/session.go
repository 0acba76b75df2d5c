package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultNumPeople is the serving count of a session that has not generated anything yet
const DefaultNumPeople = 1

// ErrMissingID is returned when a session without an ID is saved
var ErrMissingID = errors.New("session id is required")

// Session holds the fields of one interactive session. The values are only
// meaningful once HasRecipe is set by a successful generation.
type Session struct {
	ID          string    `json:"id"`
	Ingredients string    `json:"ingredients"`
	NumPeople   int       `json:"num_people"`
	Recipe      string    `json:"recipe"`
	HasRecipe   bool      `json:"has_recipe"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New returns an empty session with the default serving count
func New(id string) *Session {
	return &Session{ID: id, NumPeople: DefaultNumPeople}
}

// SetRecipe records the inputs and output of a generation, overwriting any earlier result
func (s *Session) SetRecipe(ingredients string, numPeople int, recipe string) {
	s.Ingredients = ingredients
	s.NumPeople = numPeople
	s.Recipe = recipe
	s.HasRecipe = true
	s.UpdatedAt = time.Now()
}

// Store loads and saves sessions by ID
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
}

// MemoryStore keeps sessions in process memory. Sessions idle for longer than
// the TTL are dropped.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore creates a new MemoryStore instance
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Get returns a copy of the stored session, or a fresh one if the ID is unknown or expired
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()
	stored, ok := m.sessions[id]
	if !ok {
		return New(id), nil
	}
	return &stored, nil
}

// Save stores a copy of the session
func (m *MemoryStore) Save(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		return ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *sess
	stored.UpdatedAt = m.now()
	m.sessions[sess.ID] = stored
	return nil
}

// Len returns the number of live sessions
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()
	return len(m.sessions)
}

func (m *MemoryStore) pruneLocked() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.now().Add(-m.ttl)
	for id, sess := range m.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
