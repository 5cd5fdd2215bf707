package contracts

import (
	"context"
	"patient-chart-service/internal/pkg/fhir_dto"
)

// PatientChartFhirClient issues the composed chart query against the platform's $graphql endpoint.
type PatientChartFhirClient interface {
	FindPatientChart(ctx context.Context, patientID string) (*fhir_dto.PatientChart, error)
}

type DiagnosticReportFhirClient interface {
	CreateDiagnosticReport(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error)
	FindDiagnosticReportByID(ctx context.Context, reportID string) (*fhir_dto.DiagnosticReport, error)
	UpdateDiagnosticReport(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error)
}

type ServiceRequestFhirClient interface {
	FindServiceRequestByID(ctx context.Context, serviceRequestID string) (*fhir_dto.ServiceRequest, error)
}

type HistoryFhirClient interface {
	FindResourceHistory(ctx context.Context, resourceType, resourceID string) (*fhir_dto.FHIRBundle, error)
}
