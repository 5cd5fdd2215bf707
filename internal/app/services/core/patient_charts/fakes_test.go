package patient_charts

import (
	"context"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/models"
	"patient-chart-service/internal/app/services/shared/metrics"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/fhir_dto"
	"sync"
	"time"

	"go.uber.org/zap"
)

type fakeChartClient struct {
	mu      sync.Mutex
	calls   []string
	respond func(ctx context.Context, patientID string) (*fhir_dto.PatientChart, error)
}

func (f *fakeChartClient) FindPatientChart(ctx context.Context, patientID string) (*fhir_dto.PatientChart, error) {
	f.mu.Lock()
	f.calls = append(f.calls, patientID)
	f.mu.Unlock()
	return f.respond(ctx, patientID)
}

func (f *fakeChartClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeReportClient struct {
	mu      sync.Mutex
	created []*fhir_dto.DiagnosticReport
	respond func(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error)
}

func (f *fakeReportClient) CreateDiagnosticReport(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error) {
	f.mu.Lock()
	f.created = append(f.created, request)
	f.mu.Unlock()
	return f.respond(ctx, request)
}

func (f *fakeReportClient) FindDiagnosticReportByID(ctx context.Context, reportID string) (*fhir_dto.DiagnosticReport, error) {
	return &fhir_dto.DiagnosticReport{ID: reportID}, nil
}

func (f *fakeReportClient) UpdateDiagnosticReport(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error) {
	return request, nil
}

func (f *fakeReportClient) Created() []*fhir_dto.DiagnosticReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*fhir_dto.DiagnosticReport(nil), f.created...)
}

type fakeHistoryClient struct {
	bundle *fhir_dto.FHIRBundle
	err    error
}

func (f *fakeHistoryClient) FindResourceHistory(ctx context.Context, resourceType, resourceID string) (*fhir_dto.FHIRBundle, error) {
	return f.bundle, f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.ReportCreatedEvent
}

func (p *recordingPublisher) PublishReportCreated(ctx context.Context, event *models.ReportCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []*models.ReportCreatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*models.ReportCreatedEvent(nil), p.events...)
}

func testChart(patientID string) *fhir_dto.PatientChart {
	return &fhir_dto.PatientChart{
		Patient: &fhir_dto.Patient{
			ResourceType: constvars.ResourcePatient,
			ID:           patientID,
			Name:         []fhir_dto.HumanName{{Given: []string{"Jane", "A."}, Family: "Doe"}},
		},
		Orders:  []fhir_dto.ServiceRequest{},
		Reports: []fhir_dto.DiagnosticReport{},
	}
}

func immediateChart(ctx context.Context, patientID string) (*fhir_dto.PatientChart, error) {
	return testChart(patientID), nil
}

func createdReport(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error) {
	created := *request
	created.ID = "new-1"
	return &created, nil
}

func newTestDependencies(chartClient *fakeChartClient) (*Dependencies, *fakeReportClient, *recordingPublisher) {
	reportClient := &fakeReportClient{respond: createdReport}
	publisher := &recordingPublisher{}
	return &Dependencies{
		ChartClient:    chartClient,
		ReportClient:   reportClient,
		HistoryClient:  &fakeHistoryClient{bundle: &fhir_dto.FHIRBundle{ResourceType: constvars.ResourceBundle}},
		EventPublisher: publisher,
		Metrics:        metrics.NewNop(),
		Log:            zap.NewNop(),
		Report: config.Report{
			CodeSystem:  constvars.DefaultReportCodeSystem,
			Code:        constvars.DefaultReportCode,
			CodeDisplay: constvars.DefaultReportCodeDisplay,
		},
		QueryTimeout: 5 * time.Second,
	}, reportClient, publisher
}
