package contracts

import (
	"context"
	"patient-chart-service/internal/app/models"
)

// ViewSessionRepository persists the per-browser view selection across restarts.
type ViewSessionRepository interface {
	GetViewSession(ctx context.Context, sessionID string) (*models.ViewSession, error)
	SaveViewSession(ctx context.Context, session *models.ViewSession) error
	DeleteViewSession(ctx context.Context, sessionID string) error
}
