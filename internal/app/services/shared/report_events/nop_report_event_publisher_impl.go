package report_events

import (
	"context"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/models"
	"patient-chart-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type nopReportEventPublisher struct {
	Log *zap.Logger
}

// NewNopReportEventPublisher is used when RabbitMQ is disabled; events are only logged.
func NewNopReportEventPublisher(logger *zap.Logger) contracts.ReportEventPublisher {
	return &nopReportEventPublisher{Log: logger}
}

func (p *nopReportEventPublisher) PublishReportCreated(ctx context.Context, event *models.ReportCreatedEvent) error {
	p.Log.Debug("nopReportEventPublisher.PublishReportCreated skipped",
		zap.String(constvars.LoggingRequestIDKey, event.RequestID),
		zap.String(constvars.LoggingDiagnosticReportIDKey, event.ReportID),
	)
	return nil
}
