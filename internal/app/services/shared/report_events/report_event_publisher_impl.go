package report_events

import (
	"context"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/models"
	"patient-chart-service/internal/app/services/shared/metrics"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// messagePublisher is the part of *amqp091.Channel the publisher uses.
type messagePublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type reportEventPublisher struct {
	mu      sync.Mutex
	Channel messagePublisher
	Queue   string
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// NewReportEventPublisher opens a channel on the connection and declares the durable queue events go to.
func NewReportEventPublisher(rabbitMQConnection *amqp091.Connection, queue string, m *metrics.Metrics, logger *zap.Logger) (contracts.ReportEventPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		return nil, err
	}

	return newReportEventPublisher(channel, queue, m, logger), nil
}

func newReportEventPublisher(channel messagePublisher, queue string, m *metrics.Metrics, logger *zap.Logger) *reportEventPublisher {
	return &reportEventPublisher{
		Channel: channel,
		Queue:   queue,
		Metrics: m,
		Log:     logger,
	}
}

func (p *reportEventPublisher) PublishReportCreated(ctx context.Context, event *models.ReportCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type": "JSON",
		"event_type":   event.EventType,
	}

	message := amqp091.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		DeliveryMode:  amqp091.Persistent,
		CorrelationId: event.RequestID,
		Timestamp:     event.OccurredAt,
		Headers:       headers,
	}

	// amqp091 channels are not safe for concurrent publishing
	p.mu.Lock()
	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	p.mu.Unlock()
	if err != nil {
		p.Metrics.ReportEventsPublished.WithLabelValues(metrics.OutcomeFailure).Inc()
		p.Log.Error("reportEventPublisher.PublishReportCreated error publishing message",
			zap.String(constvars.LoggingRequestIDKey, event.RequestID),
			zap.String(constvars.LoggingQueueKey, p.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Metrics.ReportEventsPublished.WithLabelValues(metrics.OutcomeSuccess).Inc()
	p.Log.Info("reportEventPublisher.PublishReportCreated succeeded",
		zap.String(constvars.LoggingRequestIDKey, event.RequestID),
		zap.String(constvars.LoggingQueueKey, p.Queue),
		zap.String(constvars.LoggingDiagnosticReportIDKey, event.ReportID),
	)
	return nil
}
