package middlewares

import (
	"context"
	"net/http"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ViewSession binds the request to the browser's patient view through the
// chart_session cookie, issuing a new session when the cookie is missing or malformed.
func (m *Middlewares) ViewSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		cookie, err := r.Cookie(constvars.ViewSessionCookieName)
		if err == nil {
			if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID == "" {
			sessionID = utils.GenerateViewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     constvars.ViewSessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				Secure:   m.InternalConfig.App.Env == "production",
				SameSite: http.SameSiteLaxMode,
			})
			m.Log.Debug("ViewSession issued new view session",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingSessionIDKey, sessionID),
			)
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_VIEW_SESSION_ID_KEY, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
