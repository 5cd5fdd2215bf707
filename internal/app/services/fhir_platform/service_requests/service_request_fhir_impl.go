package service_requests

import (
	"context"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/services/fhir_platform/transport"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/fhir_dto"

	"go.uber.org/zap"
)

type serviceRequestFhirClient struct {
	Transport *transport.Transport
	Log       *zap.Logger
}

func NewServiceRequestFhirClient(t *transport.Transport, logger *zap.Logger) contracts.ServiceRequestFhirClient {
	return &serviceRequestFhirClient{
		Transport: t,
		Log:       logger,
	}
}

func (c *serviceRequestFhirClient) FindServiceRequestByID(ctx context.Context, serviceRequestID string) (*fhir_dto.ServiceRequest, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("serviceRequestFhirClient.FindServiceRequestByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceRequestIDKey, serviceRequestID),
	)

	serviceRequest := new(fhir_dto.ServiceRequest)
	err := c.Transport.Do(ctx, transport.Request{
		Method:    constvars.MethodGet,
		Url:       c.Transport.ResourceURL(constvars.ResourceServiceRequest, serviceRequestID),
		Resource:  constvars.ResourceServiceRequest,
		OnFailure: exceptions.ErrGetFHIRResource,
	}, serviceRequest)
	if err != nil {
		c.Log.Error("serviceRequestFhirClient.FindServiceRequestByID error calling platform",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceRequestIDKey, serviceRequestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("serviceRequestFhirClient.FindServiceRequestByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceRequestIDKey, serviceRequest.ID),
	)
	return serviceRequest, nil
}
