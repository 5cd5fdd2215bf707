package contracts

import (
	"context"
	"patient-chart-service/internal/app/models"
)

type ReportEventPublisher interface {
	PublishReportCreated(ctx context.Context, event *models.ReportCreatedEvent) error
}
