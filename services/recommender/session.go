package recommender

import (
	"sync"

	"github.com/google/uuid"

	"cinemood/models"
)

// Session holds the per-request pipeline state that accumulates as a user
// works through quiz, mood and recommendation. Stages read only what earlier
// stages produced; nothing here is shared across sessions or persisted.
type Session struct {
	ID                 string                 `json:"id"`
	Profile            *models.TasteProfile   `json:"profile,omitempty"`
	ProfileSummary     string                 `json:"profileSummary,omitempty"`
	Mood               string                 `json:"mood,omitempty"`
	Enriched           []models.EnrichedMovie `json:"-"`
	LastRecommendation *models.Recommendation `json:"-"`
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*Session)}
}

func (s *sessionStore) create() *Session {
	sess := &Session{ID: uuid.NewString()}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *sessionStore) get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}
