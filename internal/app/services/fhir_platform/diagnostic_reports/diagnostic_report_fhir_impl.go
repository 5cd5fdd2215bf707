package diagnostic_reports

import (
	"context"
	"fmt"
	"net/http"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/services/fhir_platform/transport"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/fhir_dto"
	"patient-chart-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type diagnosticReportFhirClient struct {
	Transport *transport.Transport
	Log       *zap.Logger
}

func NewDiagnosticReportFhirClient(t *transport.Transport, logger *zap.Logger) contracts.DiagnosticReportFhirClient {
	return &diagnosticReportFhirClient{
		Transport: t,
		Log:       logger,
	}
}

func (c *diagnosticReportFhirClient) CreateDiagnosticReport(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("diagnosticReportFhirClient.CreateDiagnosticReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request.ResourceType = constvars.ResourceDiagnosticReport

	report := new(fhir_dto.DiagnosticReport)
	header, err := c.Transport.Exchange(ctx, transport.Request{
		Method:         constvars.MethodPost,
		Url:            c.Transport.ResourceURL(constvars.ResourceDiagnosticReport),
		Body:           request,
		Resource:       constvars.ResourceDiagnosticReport,
		ExpectedStatus: []int{constvars.StatusCreated, constvars.StatusOK},
		OnFailure:      exceptions.ErrCreateFHIRResource,
	}, report)
	if err != nil {
		c.Log.Error("diagnosticReportFhirClient.CreateDiagnosticReport error calling platform",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if report.ID == "" {
		// Prefer: return=minimal answers with an empty body and the Location of the new version.
		id, versionID := utils.ParseResourceLocation(header.Get(constvars.HeaderLocation), constvars.ResourceDiagnosticReport)
		if id != "" {
			*report = *request
			report.ID = id
			if versionID != "" {
				report.Meta = &fhir_dto.Meta{VersionId: versionID}
			}
		}
	}

	if report.ID == "" {
		c.Log.Error("diagnosticReportFhirClient.CreateDiagnosticReport platform returned no id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrCreateFHIRResource(nil, constvars.ResourceDiagnosticReport)
	}

	c.Log.Info("diagnosticReportFhirClient.CreateDiagnosticReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDiagnosticReportIDKey, report.ID),
	)
	return report, nil
}

func (c *diagnosticReportFhirClient) FindDiagnosticReportByID(ctx context.Context, reportID string) (*fhir_dto.DiagnosticReport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("diagnosticReportFhirClient.FindDiagnosticReportByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDiagnosticReportIDKey, reportID),
	)

	report := new(fhir_dto.DiagnosticReport)
	err := c.Transport.Do(ctx, transport.Request{
		Method:    constvars.MethodGet,
		Url:       c.Transport.ResourceURL(constvars.ResourceDiagnosticReport, reportID),
		Resource:  constvars.ResourceDiagnosticReport,
		OnFailure: exceptions.ErrGetFHIRResource,
	}, report)
	if err != nil {
		c.Log.Error("diagnosticReportFhirClient.FindDiagnosticReportByID error calling platform",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDiagnosticReportIDKey, reportID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("diagnosticReportFhirClient.FindDiagnosticReportByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDiagnosticReportIDKey, report.ID),
	)
	return report, nil
}

func (c *diagnosticReportFhirClient) UpdateDiagnosticReport(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("diagnosticReportFhirClient.UpdateDiagnosticReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDiagnosticReportIDKey, request.ID),
	)

	request.ResourceType = constvars.ResourceDiagnosticReport

	// The read version guards the write so a concurrent edit is reported, not overwritten.
	header := http.Header{}
	if request.Meta != nil && request.Meta.VersionId != "" {
		header.Set(constvars.HeaderIfMatch, fmt.Sprintf(constvars.IfMatchWeakETagFormat, request.Meta.VersionId))
	}

	report := new(fhir_dto.DiagnosticReport)
	err := c.Transport.Do(ctx, transport.Request{
		Method:    constvars.MethodPut,
		Url:       c.Transport.ResourceURL(constvars.ResourceDiagnosticReport, request.ID),
		Header:    header,
		Body:      request,
		Resource:  constvars.ResourceDiagnosticReport,
		OnFailure: exceptions.ErrUpdateFHIRResource,
	}, report)
	if err != nil {
		c.Log.Error("diagnosticReportFhirClient.UpdateDiagnosticReport error calling platform",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDiagnosticReportIDKey, request.ID),
			zap.Error(err),
		)
		return nil, err
	}

	if report.ID == "" {
		*report = *request
	}

	c.Log.Info("diagnosticReportFhirClient.UpdateDiagnosticReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDiagnosticReportIDKey, report.ID),
	)
	return report, nil
}
