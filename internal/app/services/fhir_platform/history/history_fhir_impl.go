package history

import (
	"context"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/services/fhir_platform/transport"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/fhir_dto"

	"go.uber.org/zap"
)

type historyFhirClient struct {
	Transport *transport.Transport
	Log       *zap.Logger
}

func NewHistoryFhirClient(t *transport.Transport, logger *zap.Logger) contracts.HistoryFhirClient {
	return &historyFhirClient{
		Transport: t,
		Log:       logger,
	}
}

// FindResourceHistory reads {type}/{id}/_history, newest version first as the platform returns it.
func (c *historyFhirClient) FindResourceHistory(ctx context.Context, resourceType, resourceID string) (*fhir_dto.FHIRBundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("historyFhirClient.FindResourceHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)

	bundle := new(fhir_dto.FHIRBundle)
	err := c.Transport.Do(ctx, transport.Request{
		Method:    constvars.MethodGet,
		Url:       c.Transport.ResourceURL(resourceType, resourceID, constvars.FhirPathHistory),
		Resource:  resourceType,
		OnFailure: exceptions.ErrGetFHIRResource,
	}, bundle)
	if err != nil {
		c.Log.Error("historyFhirClient.FindResourceHistory error calling platform",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		return nil, err
	}

	if bundle.ResourceType != constvars.ResourceBundle {
		c.Log.Error("historyFhirClient.FindResourceHistory unexpected resource type",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, bundle.ResourceType),
		)
		return nil, exceptions.ErrDecodeResponse(nil, constvars.ResourceBundle)
	}

	c.Log.Info("historyFhirClient.FindResourceHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.Int(constvars.LoggingHistoryCountKey, len(bundle.Entry)),
	)
	return bundle, nil
}
