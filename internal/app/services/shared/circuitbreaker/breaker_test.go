package circuitbreaker

import (
	"context"
	"errors"
	"patient-chart-service/internal/app/services/shared/metrics"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() Config {
	cfg := DefaultConfig("test")
	cfg.FailureThreshold = 3
	cfg.Timeout = 50 * time.Millisecond
	return cfg
}

func TestCircuitBreakerExecute(t *testing.T) {
	t.Run("Passes Result Through", func(t *testing.T) {
		cb := New(testConfig(), zap.NewNop(), nil)
		result, err := cb.Execute(context.Background(), "op", func(ctx context.Context) (interface{}, error) {
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, StateClosed, cb.GetState())
	})

	t.Run("Opens After Consecutive Failures", func(t *testing.T) {
		m := metrics.NewNop()
		cb := New(testConfig(), zap.NewNop(), m)
		failing := func(ctx context.Context) (interface{}, error) {
			return nil, exceptions.ErrSendHTTPRequest(errors.New("connection refused"))
		}
		for i := 0; i < 3; i++ {
			_, err := cb.Execute(context.Background(), "op", failing)
			require.Error(t, err)
		}

		assert.Equal(t, StateOpen, cb.GetState())
		assert.Equal(t, float64(1), testutil.ToFloat64(m.CircuitBreakerState.WithLabelValues("test")))

		_, err := cb.Execute(context.Background(), "op", failing)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusServiceUnavailable, customErr.StatusCode)
	})

	t.Run("Client Errors Do Not Trip", func(t *testing.T) {
		cb := New(testConfig(), zap.NewNop(), nil)
		for i := 0; i < 5; i++ {
			_, err := cb.Execute(context.Background(), "op", func(ctx context.Context) (interface{}, error) {
				return nil, exceptions.ErrNotFoundFHIRResource(nil, constvars.ResourcePatient)
			})
			require.Error(t, err)
		}
		assert.Equal(t, StateClosed, cb.GetState())
	})

	t.Run("Cancellation Does Not Trip", func(t *testing.T) {
		cb := New(testConfig(), zap.NewNop(), nil)
		for i := 0; i < 5; i++ {
			_, err := cb.Execute(context.Background(), "op", func(ctx context.Context) (interface{}, error) {
				return nil, exceptions.ErrSendHTTPRequest(context.Canceled)
			})
			require.Error(t, err)
		}
		assert.Equal(t, StateClosed, cb.GetState())
	})

	t.Run("Half Open After Timeout", func(t *testing.T) {
		cb := New(testConfig(), zap.NewNop(), nil)
		for i := 0; i < 3; i++ {
			cb.Execute(context.Background(), "op", func(ctx context.Context) (interface{}, error) {
				return nil, errors.New("boom")
			})
		}
		require.Equal(t, StateOpen, cb.GetState())

		time.Sleep(80 * time.Millisecond)
		_, err := cb.Execute(context.Background(), "op", func(ctx context.Context) (interface{}, error) {
			return nil, nil
		})
		require.NoError(t, err)
		assert.NotEqual(t, StateOpen, cb.GetState())
	})
}
