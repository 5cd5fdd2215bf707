package patient_charts

import (
	"context"
	"errors"
	"fmt"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/models"
	"patient-chart-service/internal/app/services/shared/metrics"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/fhir_dto"
	"patient-chart-service/internal/pkg/utils"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

type ReportStatus string

const (
	ReportStatusIdle     ReportStatus = "idle"
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
	ReportStatusFailed   ReportStatus = "failed"
)

// ReportAction is the state of the create diagnostic report action for the current patient.
type ReportAction struct {
	Status   ReportStatus
	ReportID string
	Err      error
}

// Dependencies are the collaborators every view of a registry shares.
type Dependencies struct {
	ChartClient    contracts.PatientChartFhirClient
	ReportClient   contracts.DiagnosticReportFhirClient
	HistoryClient  contracts.HistoryFhirClient
	EventPublisher contracts.ReportEventPublisher
	Metrics        *metrics.Metrics
	Log            *zap.Logger
	Report         config.Report
	QueryTimeout   time.Duration
}

// Snapshot is a point-in-time copy of a view. Chart is shared with the view
// but never mutated after it is applied.
type Snapshot struct {
	SessionID  string
	PatientID  string
	Generation uint64
	Status     Status
	Chart      *fhir_dto.PatientChart
	Err        error
	ActiveTab  string
	Report     ReportAction
}

// PatientView holds the chart of one patient for one browser session. Every
// Navigate to a new patient starts a load tagged with a new generation; a
// load result is applied only while its generation is still the latest.
type PatientView struct {
	deps      *Dependencies
	sessionID string
	lifetime  context.Context
	stop      context.CancelFunc

	mu         sync.Mutex
	generation uint64
	patientID  string
	status     Status
	chart      *fhir_dto.PatientChart
	loadErr    error
	cancelLoad context.CancelFunc
	settled    chan struct{}
	activeTab  string
	report     ReportAction
	lastAccess time.Time
	closed     bool
}

func NewPatientView(parent context.Context, sessionID string, deps *Dependencies) *PatientView {
	lifetime, stop := context.WithCancel(parent)
	return &PatientView{
		deps:       deps,
		sessionID:  sessionID,
		lifetime:   lifetime,
		stop:       stop,
		status:     StatusIdle,
		activeTab:  constvars.ChartTabOverview,
		report:     ReportAction{Status: ReportStatusIdle},
		lastAccess: time.Now(),
	}
}

// Navigate points the view at patientID and returns the generation serving it.
// Navigating to the patient already loading or loaded issues no request; a
// failed load is retried.
func (v *PatientView) Navigate(ctx context.Context, patientID string) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return 0, exceptions.ErrViewClosed(nil)
	}
	v.lastAccess = time.Now()

	if patientID == v.patientID && (v.status == StatusLoading || v.status == StatusLoaded) {
		return v.generation, nil
	}

	if v.cancelLoad != nil {
		v.cancelLoad()
	}
	v.settle()

	v.generation++
	v.patientID = patientID
	v.status = StatusLoading
	v.chart = nil
	v.loadErr = nil
	v.report = ReportAction{Status: ReportStatusIdle}
	v.settled = make(chan struct{})

	loadCtx, cancel := context.WithTimeout(v.lifetime, v.deps.QueryTimeout)
	loadCtx = context.WithValue(loadCtx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GetRequestID(ctx))
	v.cancelLoad = cancel

	go v.load(loadCtx, cancel, v.generation, patientID)

	return v.generation, nil
}

func (v *PatientView) load(ctx context.Context, cancel context.CancelFunc, generation uint64, patientID string) {
	defer cancel()

	start := time.Now()
	chart, err := v.deps.ChartClient.FindPatientChart(ctx, patientID)
	v.deps.Metrics.ChartQueryDuration.Observe(time.Since(start).Seconds())

	var customErr *exceptions.CustomError
	if err != nil && !errors.As(err, &customErr) && errors.Is(err, context.DeadlineExceeded) {
		err = exceptions.ErrServerDeadlineExceeded(err)
	}
	v.apply(ctx, generation, chart, err)
}

// apply stores a load result if generation is still current. It reports
// whether the result was kept.
func (v *PatientView) apply(ctx context.Context, generation uint64, chart *fhir_dto.PatientChart, err error) bool {
	v.mu.Lock()
	if v.closed || generation != v.generation {
		latest := v.generation
		v.mu.Unlock()

		v.deps.Metrics.StaleChartResponses.Inc()
		utils.LogBusinessEvent(v.deps.Log, "chart_response_discarded", utils.GetRequestID(ctx),
			zap.String(constvars.LoggingSessionIDKey, v.sessionID),
			zap.Uint64(constvars.LoggingGenerationKey, generation),
			zap.Uint64(constvars.LoggingLatestGenerationKey, latest),
		)
		return false
	}
	defer v.mu.Unlock()

	if err != nil {
		v.status = StatusFailed
		v.loadErr = err
		v.deps.Metrics.ChartQueries.WithLabelValues(metrics.OutcomeFailure).Inc()
	} else {
		v.status = StatusLoaded
		v.chart = chart
		v.deps.Metrics.ChartQueries.WithLabelValues(metrics.OutcomeSuccess).Inc()
	}
	v.cancelLoad = nil
	v.settle()
	return true
}

// settle releases waiters of the current generation. Callers hold v.mu.
func (v *PatientView) settle() {
	if v.settled != nil {
		close(v.settled)
		v.settled = nil
	}
}

// Wait blocks until generation settles, is superseded, or ctx ends, and
// returns the view as it is then.
func (v *PatientView) Wait(ctx context.Context, generation uint64) Snapshot {
	v.mu.Lock()
	settled := v.settled
	current := generation == v.generation
	v.mu.Unlock()

	if current && settled != nil {
		select {
		case <-settled:
		case <-ctx.Done():
		}
	}
	return v.Snapshot()
}

func (v *PatientView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	return Snapshot{
		SessionID:  v.sessionID,
		PatientID:  v.patientID,
		Generation: v.generation,
		Status:     v.status,
		Chart:      v.chart,
		Err:        v.loadErr,
		ActiveTab:  v.activeTab,
		Report:     v.report,
	}
}

func (v *PatientView) SelectTab(tab string) error {
	if !slices.Contains(constvars.ChartTabs, tab) {
		return exceptions.ErrQueryParamValidation(fmt.Errorf("unknown tab %q", tab), constvars.URLQueryParamTab)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return exceptions.ErrViewClosed(nil)
	}
	v.activeTab = tab
	v.lastAccess = time.Now()
	return nil
}

// CreateReport creates a diagnostic report for the patient loaded by
// generation, waits for the platform to assign its ID, and returns it with the
// page to navigate to. A superseded generation fails with ErrChartNotLoaded.
func (v *PatientView) CreateReport(ctx context.Context, generation uint64) (*fhir_dto.DiagnosticReport, string, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil, "", exceptions.ErrViewClosed(nil)
	}
	if generation != v.generation || v.status != StatusLoaded || v.chart == nil {
		v.mu.Unlock()
		return nil, "", exceptions.ErrChartNotLoaded(nil)
	}
	if v.report.Status == ReportStatusPending {
		v.mu.Unlock()
		return nil, "", exceptions.ErrReportAlreadyPending(nil)
	}
	patientID := v.patientID
	patient := v.chart.Patient
	v.report = ReportAction{Status: ReportStatusPending}
	v.lastAccess = time.Now()
	v.mu.Unlock()

	request := BuildDiagnosticReport(patientID, patient, v.deps.Report)
	created, err := v.deps.ReportClient.CreateDiagnosticReport(ctx, request)

	v.mu.Lock()
	if !v.closed && generation == v.generation {
		if err != nil {
			v.report = ReportAction{Status: ReportStatusFailed, Err: err}
		} else {
			v.report = ReportAction{Status: ReportStatusResolved, ReportID: created.ID}
		}
	}
	v.mu.Unlock()

	if err != nil {
		v.deps.Metrics.ReportsCreated.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, "", err
	}
	v.deps.Metrics.ReportsCreated.WithLabelValues(metrics.OutcomeSuccess).Inc()

	requestID := utils.GetRequestID(ctx)
	utils.LogBusinessEvent(v.deps.Log, "diagnostic_report_created", requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingDiagnosticReportIDKey, created.ID),
	)

	event := &models.ReportCreatedEvent{
		EventType:  constvars.ReportEventTypeDiagnosticReportAdded,
		ReportID:   created.ID,
		PatientID:  patientID,
		Status:     created.Status,
		Code:       v.deps.Report.Code,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	}
	err = v.deps.EventPublisher.PublishReportCreated(ctx, event)
	if err != nil {
		v.deps.Log.Warn("PatientView.CreateReport report event not published",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDiagnosticReportIDKey, created.ID),
			zap.Error(err),
		)
	}

	return created, fmt.Sprintf(constvars.PagePathDiagnosticReportEditFormat, created.ID), nil
}

// LoadTimeline merges the patient's versions with its orders and reports, newest first.
func (v *PatientView) LoadTimeline(ctx context.Context, generation uint64) ([]TimelineEntry, error) {
	patientID, chart, err := v.loaded(generation)
	if err != nil {
		return nil, err
	}

	bundle, err := v.deps.HistoryClient.FindResourceHistory(ctx, constvars.ResourcePatient, patientID)
	if err != nil {
		return nil, err
	}
	return BuildTimeline(bundle, chart)
}

// LoadHistory returns the versions of the loaded patient record, as the platform orders them.
func (v *PatientView) LoadHistory(ctx context.Context, generation uint64) ([]HistoryEntry, error) {
	patientID, _, err := v.loaded(generation)
	if err != nil {
		return nil, err
	}

	bundle, err := v.deps.HistoryClient.FindResourceHistory(ctx, constvars.ResourcePatient, patientID)
	if err != nil {
		return nil, err
	}
	return BuildHistory(bundle)
}

// loaded returns the patient and chart of generation while it is current and loaded.
func (v *PatientView) loaded(generation uint64) (string, *fhir_dto.PatientChart, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return "", nil, exceptions.ErrViewClosed(nil)
	}
	if generation != v.generation || v.status != StatusLoaded || v.chart == nil {
		return "", nil, exceptions.ErrChartNotLoaded(nil)
	}
	v.lastAccess = time.Now()
	return v.patientID, v.chart, nil
}

// Close cancels any load in flight and drops the result. Responses that
// arrive afterwards are discarded.
func (v *PatientView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	v.stop()
	v.cancelLoad = nil
	v.chart = nil
	v.loadErr = nil
	v.status = StatusIdle
	v.settle()
}

func (v *PatientView) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastAccess
}
