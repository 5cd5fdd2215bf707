package redis

import (
	"context"
	"patient-chart-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "chart:session:abc", sessionKey("abc"))
}

func TestInMemoryViewSessionRepository(t *testing.T) {
	repository := NewInMemoryViewSessionRepository()
	ctx := context.Background()

	t.Run("Missing Session", func(t *testing.T) {
		session, err := repository.GetViewSession(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("Save And Get", func(t *testing.T) {
		err := repository.SaveViewSession(ctx, &models.ViewSession{
			SessionID: "s1",
			PatientID: "123",
			ActiveTab: "history",
			UpdatedAt: time.Now(),
		})
		require.NoError(t, err)

		session, err := repository.GetViewSession(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "history", session.ActiveTab)
		assert.Equal(t, "123", session.PatientID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repository.DeleteViewSession(ctx, "s1"))
		session, err := repository.GetViewSession(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, session)
	})
}
