package history

import (
	"context"
	"net/http"
	"net/http/httptest"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/services/fhir_platform/transport"
	"patient-chart-service/internal/pkg/fhir_dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFindResourceHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Patient/123/_history":
			w.Write([]byte(`{"resourceType":"Bundle","type":"history","entry":[
				{"resource":{"resourceType":"Patient","id":"123","meta":{"versionId":"2","lastUpdated":"2024-03-02T10:00:00Z"}}},
				{"resource":{"resourceType":"Patient","id":"123","meta":{"versionId":"1","lastUpdated":"2024-03-01T10:00:00Z"}}}
			]}`))
		default:
			w.Write([]byte(`{"resourceType":"Patient","id":"123"}`))
		}
	}))
	defer server.Close()

	tr := transport.NewTransport(config.FHIR{BaseUrl: server.URL, HTTPTimeoutInSeconds: 5}, nil, zap.NewNop())
	client := NewHistoryFhirClient(tr, zap.NewNop())

	t.Run("Versions", func(t *testing.T) {
		bundle, err := client.FindResourceHistory(context.Background(), "Patient", "123")
		require.NoError(t, err)
		require.Len(t, bundle.Entry, 2)

		var header fhir_dto.ResourceHeader
		require.NoError(t, json.Unmarshal(bundle.Entry[0].Resource, &header))
		assert.Equal(t, "2", header.Meta.VersionId)
	})

	t.Run("Not A Bundle", func(t *testing.T) {
		_, err := client.FindResourceHistory(context.Background(), "Patient", "other")
		require.Error(t, err)
	})
}
