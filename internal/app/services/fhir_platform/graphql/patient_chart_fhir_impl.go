package graphql

import (
	"context"
	"errors"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/services/fhir_platform/transport"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/fhir_dto"
	"strings"

	"go.uber.org/zap"
)

type patientChartFhirClient struct {
	Url       string
	Transport *transport.Transport
	Log       *zap.Logger
}

func NewPatientChartFhirClient(t *transport.Transport, logger *zap.Logger) contracts.PatientChartFhirClient {
	return &patientChartFhirClient{
		Url:       t.ResourceURL(constvars.FhirOperationGraphQL),
		Transport: t,
		Log:       logger,
	}
}

func (c *patientChartFhirClient) FindPatientChart(ctx context.Context, patientID string) (*fhir_dto.PatientChart, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientChartFhirClient.FindPatientChart called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	request := &fhir_dto.GraphQLRequest{
		Query: BuildPatientChartQuery(patientID),
	}

	response := new(fhir_dto.PatientChartGraphQLResponse)
	err := c.Transport.Do(ctx, transport.Request{
		Method:    constvars.MethodPost,
		Url:       c.Url,
		Body:      request,
		Resource:  constvars.ResourcePatient,
		OnFailure: exceptions.ErrGetFHIRResource,
	}, response)
	if err != nil {
		c.Log.Error("patientChartFhirClient.FindPatientChart error calling platform",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}

	if len(response.Errors) > 0 {
		messages := make([]string, 0, len(response.Errors))
		for _, graphQLError := range response.Errors {
			messages = append(messages, graphQLError.Message)
		}
		queryErr := errors.New(strings.Join(messages, "; "))
		c.Log.Error("patientChartFhirClient.FindPatientChart graphql error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(queryErr),
		)
		return nil, exceptions.ErrGraphQLQuery(queryErr)
	}

	if response.Data == nil || response.Data.Patient == nil {
		c.Log.Error("patientChartFhirClient.FindPatientChart patient missing from response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
		)
		return nil, exceptions.ErrNotFoundFHIRResource(nil, constvars.ResourcePatient)
	}

	chart := response.Data
	if chart.Orders == nil {
		chart.Orders = []fhir_dto.ServiceRequest{}
	}
	if chart.Reports == nil {
		chart.Reports = []fhir_dto.DiagnosticReport{}
	}

	c.Log.Info("patientChartFhirClient.FindPatientChart succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, chart.Patient.ID),
		zap.Int(constvars.LoggingOrdersCountKey, len(chart.Orders)),
		zap.Int(constvars.LoggingReportsCountKey, len(chart.Reports)),
	)
	return chart, nil
}
