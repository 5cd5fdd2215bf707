// Package circuitbreaker guards calls to the health data platform.
// Wraps sony/gobreaker with OpenTelemetry spans and Prometheus state reporting.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/services/shared/metrics"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// State represents the circuit breaker state
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// Config holds circuit breaker configuration
type Config struct {
	// Name identifies the circuit breaker
	Name string
	// MaxRequests is max requests allowed in half-open state
	MaxRequests uint32
	// Interval is the cyclic period for clearing counts in closed state
	Interval time.Duration
	// Timeout is how long to wait before transitioning from open to half-open
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures before opening
	FailureThreshold uint32
	// FailureRatio is the failure ratio threshold once MinRequests is reached
	FailureRatio float64
	// MinRequests is minimum requests before ratio is considered
	MinRequests uint32
}

// DefaultConfig returns defaults suitable for a hosted FHIR platform
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		FailureRatio:     0.6,
		MinRequests:      10,
	}
}

// FromBreakerConfig converts the env-driven config into a breaker Config.
func FromBreakerConfig(name string, cfg config.Breaker) Config {
	return Config{
		Name:             name,
		MaxRequests:      uint32(cfg.MaxRequests),
		Interval:         time.Duration(cfg.IntervalSeconds) * time.Second,
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		FailureThreshold: uint32(cfg.FailureThreshold),
		FailureRatio:     cfg.FailureRatio,
		MinRequests:      uint32(cfg.MinRequests),
	}
}

// CircuitBreaker wraps gobreaker with observability
type CircuitBreaker struct {
	cb      *gobreaker.CircuitBreaker
	name    string
	logger  *zap.Logger
	tracer  trace.Tracer
	metrics *metrics.Metrics

	currentState State
	stateMu      sync.RWMutex
}

// New creates a new circuit breaker
func New(cfg Config, logger *zap.Logger, m *metrics.Metrics) *CircuitBreaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}

	cb := &CircuitBreaker{
		name:         cfg.Name,
		logger:       logger,
		tracer:       otel.Tracer("patient-chart-service/circuit-breaker"),
		metrics:      m,
		currentState: StateClosed,
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return counts.ConsecutiveFailures >= cfg.FailureThreshold
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			cb.onStateChange(from, to)
		},
		IsSuccessful: isSuccessful,
	}

	cb.cb = gobreaker.NewCircuitBreaker(settings)
	cb.metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	return cb
}

// Execute runs fn through the circuit breaker. Rejections caused by an open
// breaker are returned as exceptions.ErrPlatformUnavailable.
func (c *CircuitBreaker) Execute(ctx context.Context, operation string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ctx, span := c.tracer.Start(ctx, operation,
		trace.WithAttributes(
			attribute.String("breaker_name", c.name),
			attribute.String("state", string(c.GetState())),
		))
	defer span.End()

	result, err := c.cb.Execute(func() (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			span.SetAttributes(attribute.Bool("circuit_open", true))
			c.logger.Warn("circuit breaker rejected call",
				zap.String(constvars.LoggingBreakerKey, c.name),
				zap.String(constvars.LoggingOperationKey, operation),
				zap.Error(err),
			)
			return nil, exceptions.ErrPlatformUnavailable(err, c.name)
		}
		return nil, err
	}

	return result, nil
}

// GetState returns the current circuit breaker state
func (c *CircuitBreaker) GetState() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.currentState
}

// Name returns the circuit breaker name
func (c *CircuitBreaker) Name() string {
	return c.name
}

func (c *CircuitBreaker) onStateChange(from, to gobreaker.State) {
	fromState := mapState(from)
	toState := mapState(to)

	c.stateMu.Lock()
	c.currentState = toState
	c.stateMu.Unlock()

	c.metrics.CircuitBreakerState.WithLabelValues(c.name).Set(stateValue(toState))

	c.logger.Warn("circuit breaker state changed",
		zap.String(constvars.LoggingBreakerKey, c.name),
		zap.String("from", string(fromState)),
		zap.String("to", string(toState)))
}

// isSuccessful keeps caller mistakes (4xx from the platform) and cancelled
// requests from counting against the platform's health.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode < constvars.StatusInternalServerError &&
			customErr.StatusCode != constvars.StatusTooManyRequests
	}
	return false
}

func mapState(s gobreaker.State) State {
	switch s {
	case gobreaker.StateClosed:
		return StateClosed
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}

func stateValue(s State) float64 {
	switch s {
	case StateOpen:
		return 1
	case StateHalfOpen:
		return 2
	default:
		return 0
	}
}
