package patient_charts

import (
	"context"
	"patient-chart-service/internal/pkg/dto/requests"
	"patient-chart-service/internal/pkg/dto/responses"
)

type PatientChartUsecase interface {
	OpenPatientChart(ctx context.Context, sessionID string, request *requests.PatientChartParams) (*PatientChartPage, error)
	CreateDiagnosticReport(ctx context.Context, sessionID, patientID string) (*responses.CreateDiagnosticReport, error)
	CloseView(ctx context.Context, sessionID string) error
}

// PatientChartPage is everything the chart page renders for one request.
// Timeline or History is filled when that tab is active and the chart is loaded.
type PatientChartPage struct {
	Snapshot Snapshot
	Timeline []TimelineEntry
	History  []HistoryEntry
	TabErr   error
}
