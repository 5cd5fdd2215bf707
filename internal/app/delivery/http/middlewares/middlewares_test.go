package middlewares

import (
	"net/http"
	"net/http/httptest"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/utils"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares(env string, maxRequests int) *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{Env: env, MaxRequests: maxRequests},
	})
}

func TestViewSession(t *testing.T) {
	m := newTestMiddlewares("development", 10)

	var seen string
	handler := m.ViewSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetViewSessionID(r.Context())
	}))

	t.Run("issues a cookie when missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Patient/1", nil))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, constvars.ViewSessionCookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.False(t, cookies[0].Secure)
		assert.Equal(t, cookies[0].Value, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})

	t.Run("keeps a valid cookie", func(t *testing.T) {
		sessionID := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/Patient/1", nil)
		req.AddCookie(&http.Cookie{Name: constvars.ViewSessionCookieName, Value: sessionID})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Result().Cookies())
		assert.Equal(t, sessionID, seen)
	})

	t.Run("replaces a malformed cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/Patient/1", nil)
		req.AddCookie(&http.Cookie{Name: constvars.ViewSessionCookieName, Value: "not-a-session"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Len(t, rec.Result().Cookies(), 1)
		assert.NotEqual(t, "not-a-session", seen)
	})

	t.Run("secure cookie in production", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestMiddlewares("production", 10).ViewSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Patient/1", nil))

		require.Len(t, rec.Result().Cookies(), 1)
		assert.True(t, rec.Result().Cookies()[0].Secure)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares("development", 10)

	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constvars.HeaderXRequestID, "client-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", rec.Header().Get(constvars.HeaderXRequestID))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, seen, constvars.REQUEST_ID_PREFIX)
	assert.Equal(t, seen, rec.Header().Get(constvars.HeaderXRequestID))
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	m := newTestMiddlewares("development", 10)
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestRateLimiter(t *testing.T) {
	m := newTestMiddlewares("development", 2)
	handler := m.RateLimiter()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
