package redis

import (
	"context"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/models"
	"sync"
)

type inMemoryViewSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.ViewSession
}

// NewInMemoryViewSessionRepository backs view sessions with a map when redis is disabled.
func NewInMemoryViewSessionRepository() contracts.ViewSessionRepository {
	return &inMemoryViewSessionRepository{
		sessions: make(map[string]models.ViewSession),
	}
}

func (r *inMemoryViewSessionRepository) GetViewSession(ctx context.Context, sessionID string) (*models.ViewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r *inMemoryViewSessionRepository) SaveViewSession(ctx context.Context, session *models.ViewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.SessionID] = *session
	return nil
}

func (r *inMemoryViewSessionRepository) DeleteViewSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}
