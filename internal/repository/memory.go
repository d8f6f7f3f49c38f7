package repository

import (
	"context"
	"sync"
	"time"

	"barberpro/internal/models"
)

type memorySession struct {
	state     *models.WizardState
	expiresAt time.Time
}

// MemorySessionRepository keeps wizard sessions in process memory. Used
// in tests and as the failover target when redis is unreachable.
type MemorySessionRepository struct {
	sessions sync.Map
	ttl      time.Duration
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl: ttl,
	}
}

func (r *MemorySessionRepository) GetSession(ctx context.Context, sessionID string) (*models.WizardState, error) {
	val, ok := r.sessions.Load(sessionID)
	if !ok {
		return nil, nil
	}
	entry := val.(*memorySession)
	if r.ttl > 0 && time.Now().After(entry.expiresAt) {
		r.sessions.Delete(sessionID)
		return nil, nil
	}
	return entry.state, nil
}

func (r *MemorySessionRepository) SetSession(ctx context.Context, state *models.WizardState) error {
	r.sessions.Store(state.SessionID, &memorySession{
		state:     state,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemorySessionRepository) ClearSession(ctx context.Context, sessionID string) error {
	r.sessions.Delete(sessionID)
	return nil
}
