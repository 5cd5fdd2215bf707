package clinical_records

import (
	"context"
	"patient-chart-service/internal/pkg/dto/requests"
	"patient-chart-service/internal/pkg/fhir_dto"
)

type ClinicalRecordUsecase interface {
	FindServiceRequestByID(ctx context.Context, serviceRequestID string) (*fhir_dto.ServiceRequest, error)
	FindDiagnosticReportByID(ctx context.Context, reportID string) (*fhir_dto.DiagnosticReport, error)
	UpdateDiagnosticReport(ctx context.Context, request *requests.UpdateDiagnosticReport) (*fhir_dto.DiagnosticReport, error)
}
