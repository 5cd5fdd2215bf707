package clinical_records

import (
	"context"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/dto/requests"
	"patient-chart-service/internal/pkg/fhir_dto"
	"patient-chart-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type clinicalRecordUsecase struct {
	ServiceRequestFhirClient   contracts.ServiceRequestFhirClient
	DiagnosticReportFhirClient contracts.DiagnosticReportFhirClient
	Log                        *zap.Logger
}

func NewClinicalRecordUsecase(
	serviceRequestFhirClient contracts.ServiceRequestFhirClient,
	diagnosticReportFhirClient contracts.DiagnosticReportFhirClient,
	logger *zap.Logger,
) ClinicalRecordUsecase {
	return &clinicalRecordUsecase{
		ServiceRequestFhirClient:   serviceRequestFhirClient,
		DiagnosticReportFhirClient: diagnosticReportFhirClient,
		Log:                        logger,
	}
}

func (uc *clinicalRecordUsecase) FindServiceRequestByID(ctx context.Context, serviceRequestID string) (*fhir_dto.ServiceRequest, error) {
	return uc.ServiceRequestFhirClient.FindServiceRequestByID(ctx, serviceRequestID)
}

func (uc *clinicalRecordUsecase) FindDiagnosticReportByID(ctx context.Context, reportID string) (*fhir_dto.DiagnosticReport, error) {
	return uc.DiagnosticReportFhirClient.FindDiagnosticReportByID(ctx, reportID)
}

// UpdateDiagnosticReport reads the current report and writes it back with the
// edited status and conclusion, keeping every other element as stored. The
// write is conditional on the version the edit started from.
func (uc *clinicalRecordUsecase) UpdateDiagnosticReport(ctx context.Context, request *requests.UpdateDiagnosticReport) (*fhir_dto.DiagnosticReport, error) {
	report, err := uc.DiagnosticReportFhirClient.FindDiagnosticReportByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	report.Status = request.Status
	report.Conclusion = request.Conclusion
	if request.VersionID != "" {
		// The version the form was rendered from, so an edit saved in between is a conflict.
		if report.Meta == nil {
			report.Meta = &fhir_dto.Meta{}
		}
		report.Meta.VersionId = request.VersionID
	}

	requestID := utils.GetRequestID(ctx)
	var updated *fhir_dto.DiagnosticReport
	err = utils.LogOperation(uc.Log, "update_diagnostic_report", requestID, func() error {
		updated, err = uc.DiagnosticReportFhirClient.UpdateDiagnosticReport(ctx, report)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "diagnostic_report_updated", requestID,
		zap.String(constvars.LoggingDiagnosticReportIDKey, updated.ID),
		zap.String("status", updated.Status),
	)
	return updated, nil
}
