package report_events

import (
	"context"
	"errors"
	"patient-chart-service/internal/app/models"
	"patient-chart-service/internal/app/services/shared/metrics"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func reportCreated() *models.ReportCreatedEvent {
	return &models.ReportCreatedEvent{
		EventType:  constvars.ReportEventTypeDiagnosticReportAdded,
		ReportID:   "r1",
		PatientID:  "123",
		Status:     constvars.FhirDiagnosticReportStatusFinal,
		Code:       "11502-2",
		RequestID:  "req-1",
		OccurredAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublishReportCreated(t *testing.T) {
	t.Run("Publishes A Persistent JSON Message", func(t *testing.T) {
		channel := new(MockChannel)
		var published amqp091.Publishing
		channel.On("PublishWithContext", mock.Anything, "", "report_events", false, false, mock.AnythingOfType("amqp091.Publishing")).
			Run(func(args mock.Arguments) { published = args.Get(5).(amqp091.Publishing) }).
			Return(nil).Once()
		m := metrics.NewNop()
		publisher := newReportEventPublisher(channel, "report_events", m, zap.NewNop())

		require.NoError(t, publisher.PublishReportCreated(context.Background(), reportCreated()))

		channel.AssertExpectations(t)
		assert.Equal(t, constvars.MIMEApplicationJSON, published.ContentType)
		assert.Equal(t, amqp091.Persistent, published.DeliveryMode)
		assert.Equal(t, "req-1", published.CorrelationId)
		assert.Equal(t, constvars.ReportEventTypeDiagnosticReportAdded, published.Headers["event_type"])
		assert.True(t, published.Timestamp.Equal(time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)))

		var body models.ReportCreatedEvent
		require.NoError(t, json.Unmarshal(published.Body, &body))
		assert.Equal(t, "r1", body.ReportID)
		assert.Equal(t, "123", body.PatientID)
		assert.Equal(t, constvars.ReportEventTypeDiagnosticReportAdded, body.EventType)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.ReportEventsPublished.WithLabelValues(metrics.OutcomeSuccess)))
	})

	t.Run("Broker Failure", func(t *testing.T) {
		channel := new(MockChannel)
		channel.On("PublishWithContext", mock.Anything, "", "report_events", false, false, mock.Anything).
			Return(errors.New("channel closed")).Once()
		m := metrics.NewNop()
		publisher := newReportEventPublisher(channel, "report_events", m, zap.NewNop())

		err := publisher.PublishReportCreated(context.Background(), reportCreated())

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.ReportEventsPublished.WithLabelValues(metrics.OutcomeFailure)))
	})
}
