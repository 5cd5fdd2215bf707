package patient_charts

import (
	"context"
	"fmt"
	"patient-chart-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("One View Per Session And Patient", func(t *testing.T) {
		deps, _, _ := newTestDependencies(&fakeChartClient{respond: immediateChart})
		registry := NewRegistry(deps, RegistryConfig{IdleTTL: time.Minute})
		defer registry.Close()

		first, created, err := registry.View("s1", "123")
		require.NoError(t, err)
		assert.True(t, created)

		again, created, err := registry.View("s1", "123")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, first, again)

		other, _, err := registry.View("s2", "123")
		require.NoError(t, err)
		assert.NotSame(t, first, other)

		patient, _, err := registry.View("s1", "456")
		require.NoError(t, err)
		assert.NotSame(t, first, patient, "each patient of a session has its own view")

		assert.Equal(t, 3, registry.Len())
		assert.Equal(t, float64(3), testutil.ToFloat64(deps.Metrics.ActiveViews))
	})

	t.Run("Evict Closes Every View Of The Session", func(t *testing.T) {
		deps, _, _ := newTestDependencies(&fakeChartClient{respond: immediateChart})
		registry := NewRegistry(deps, RegistryConfig{IdleTTL: time.Minute})
		defer registry.Close()

		_, _, err := registry.View("s1", "123")
		require.NoError(t, err)
		_, _, err = registry.View("s1", "456")
		require.NoError(t, err)
		_, _, err = registry.View("s2", "123")
		require.NoError(t, err)

		registry.Evict("s1")
		assert.Equal(t, 1, registry.Len())
		_, ok := registry.Lookup("s2", "123")
		assert.True(t, ok)
	})

	t.Run("Session Limit Closes Least Recently Used", func(t *testing.T) {
		deps, _, _ := newTestDependencies(&fakeChartClient{respond: immediateChart})
		registry := NewRegistry(deps, RegistryConfig{IdleTTL: time.Minute, MaxViewsPerSession: 2})
		defer registry.Close()

		oldest, _, err := registry.View("s1", "1")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		recent, _, err := registry.View("s1", "2")
		require.NoError(t, err)
		_, _, err = registry.View("s1", "3")
		require.NoError(t, err)

		assert.Equal(t, 2, registry.Len())
		_, ok := registry.Lookup("s1", "1")
		assert.False(t, ok)
		_, err = oldest.Navigate(context.Background(), "1")
		assert.Equal(t, constvars.StatusGone, statusCode(t, err))
		_, err = recent.Navigate(context.Background(), "2")
		assert.NoError(t, err)
	})

	t.Run("Registry Limit Bounds Sessionless Growth", func(t *testing.T) {
		deps, _, _ := newTestDependencies(&fakeChartClient{respond: immediateChart})
		registry := NewRegistry(deps, RegistryConfig{IdleTTL: time.Hour, MaxViews: 3})
		defer registry.Close()

		for i := 0; i < 50; i++ {
			_, _, err := registry.View(fmt.Sprintf("s%d", i), "123")
			require.NoError(t, err)
		}

		assert.Equal(t, 3, registry.Len())
		assert.Equal(t, float64(3), testutil.ToFloat64(deps.Metrics.ActiveViews))
		_, ok := registry.Lookup("s49", "123")
		assert.True(t, ok, "the newest view is kept")
	})

	t.Run("Evict Closes View", func(t *testing.T) {
		deps, _, _ := newTestDependencies(&fakeChartClient{respond: immediateChart})
		registry := NewRegistry(deps, RegistryConfig{IdleTTL: time.Minute})
		defer registry.Close()

		view, _, err := registry.View("s1", "123")
		require.NoError(t, err)
		registry.Evict("s1")

		_, ok := registry.Lookup("s1", "123")
		assert.False(t, ok)
		_, err = view.Navigate(context.Background(), "123")
		assert.Equal(t, constvars.StatusGone, statusCode(t, err))
	})

	t.Run("Evict Idle Views", func(t *testing.T) {
		deps, _, _ := newTestDependencies(&fakeChartClient{respond: immediateChart})
		registry := NewRegistry(deps, RegistryConfig{IdleTTL: time.Minute})
		defer registry.Close()

		_, _, err := registry.View("s1", "123")
		require.NoError(t, err)

		assert.Equal(t, 0, registry.EvictIdle(time.Now()))
		assert.Equal(t, 1, registry.EvictIdle(time.Now().Add(2*time.Minute)))
		assert.Equal(t, 0, registry.Len())
	})

	t.Run("Close Tears Down Everything", func(t *testing.T) {
		deps, _, _ := newTestDependencies(&fakeChartClient{respond: immediateChart})
		registry := NewRegistry(deps, RegistryConfig{IdleTTL: time.Minute})

		view, _, err := registry.View("s1", "123")
		require.NoError(t, err)
		registry.Close()

		_, err = view.Navigate(context.Background(), "123")
		assert.Equal(t, constvars.StatusGone, statusCode(t, err))
		_, _, err = registry.View("s2", "123")
		assert.Equal(t, constvars.StatusGone, statusCode(t, err))
		assert.Equal(t, float64(0), testutil.ToFloat64(deps.Metrics.ActiveViews))
	})

	t.Run("Run Stops With Context", func(t *testing.T) {
		deps, _, _ := newTestDependencies(&fakeChartClient{respond: immediateChart})
		registry := NewRegistry(deps, RegistryConfig{IdleTTL: 10*time.Millisecond})
		defer registry.Close()

		_, _, err := registry.View("s1", "123")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			registry.Run(ctx)
			close(done)
		}()

		assert.Eventually(t, func() bool { return registry.Len() == 0 }, time.Second, 5*time.Millisecond)
		cancel()
		<-done
	})
}
