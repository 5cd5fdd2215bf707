package service_requests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/services/fhir_platform/transport"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFindServiceRequestByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ServiceRequest/o1" {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.Write([]byte(`{"resourceType":"ServiceRequest","id":"o1","status":"active","intent":"order","code":{"text":"CBC"}}`))
	}))
	defer server.Close()

	tr := transport.NewTransport(config.FHIR{BaseUrl: server.URL, HTTPTimeoutInSeconds: 5}, nil, zap.NewNop())
	client := NewServiceRequestFhirClient(tr, zap.NewNop())

	t.Run("Found", func(t *testing.T) {
		order, err := client.FindServiceRequestByID(context.Background(), "o1")
		require.NoError(t, err)
		assert.Equal(t, "active", order.Status)
		assert.Equal(t, "CBC", order.Code.Text)
	})

	t.Run("Deleted", func(t *testing.T) {
		_, err := client.FindServiceRequestByID(context.Background(), "o2")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}
