package patient_charts

import (
	"context"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/models"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/dto/requests"
	"patient-chart-service/internal/pkg/dto/responses"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/utils"
	"slices"
	"time"

	"go.uber.org/zap"
)

type patientChartUsecase struct {
	Registry              *Registry
	ViewSessionRepository contracts.ViewSessionRepository
	RenderWait            time.Duration
	Log                   *zap.Logger
}

func NewPatientChartUsecase(
	registry *Registry,
	viewSessionRepository contracts.ViewSessionRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) PatientChartUsecase {
	return &patientChartUsecase{
		Registry:              registry,
		ViewSessionRepository: viewSessionRepository,
		RenderWait:            time.Duration(internalConfig.App.ChartRenderWaitInMilliseconds) * time.Millisecond,
		Log:                   logger,
	}
}

func (uc *patientChartUsecase) OpenPatientChart(ctx context.Context, sessionID string, request *requests.PatientChartParams) (*PatientChartPage, error) {
	view, err := uc.view(ctx, sessionID, request.PatientID)
	if err != nil {
		return nil, err
	}

	if request.Tab != "" {
		err = view.SelectTab(request.Tab)
		if err != nil {
			return nil, err
		}
		uc.saveViewSession(ctx, sessionID, request.PatientID, request.Tab)
	}

	generation, err := view.Navigate(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, uc.RenderWait)
	defer cancel()
	page := &PatientChartPage{
		Snapshot: view.Wait(waitCtx, generation),
	}

	if page.Snapshot.Generation != generation || page.Snapshot.PatientID != request.PatientID {
		// The view moved on while this request waited; never show it another patient.
		page.Snapshot = Snapshot{
			SessionID:  sessionID,
			PatientID:  request.PatientID,
			Generation: generation,
			Status:     StatusLoading,
			ActiveTab:  page.Snapshot.ActiveTab,
			Report:     ReportAction{Status: ReportStatusIdle},
		}
		return page, nil
	}

	if page.Snapshot.Status != StatusLoaded {
		return page, nil
	}

	switch page.Snapshot.ActiveTab {
	case constvars.ChartTabTimeline:
		page.Timeline, page.TabErr = view.LoadTimeline(ctx, generation)
	case constvars.ChartTabHistory:
		page.History, page.TabErr = view.LoadHistory(ctx, generation)
	}
	if page.TabErr != nil {
		uc.Log.Warn("patientChartUsecase.OpenPatientChart tab data unavailable",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingTabKey, page.Snapshot.ActiveTab),
			zap.Error(page.TabErr),
		)
	}
	return page, nil
}

func (uc *patientChartUsecase) CreateDiagnosticReport(ctx context.Context, sessionID, patientID string) (*responses.CreateDiagnosticReport, error) {
	view, err := uc.view(ctx, sessionID, patientID)
	if err != nil {
		return nil, err
	}

	// A view that was evicted or never opened loads the patient before creating.
	generation, err := view.Navigate(ctx, patientID)
	if err != nil {
		return nil, err
	}
	snapshot := view.Wait(ctx, generation)
	if snapshot.Generation != generation || snapshot.PatientID != patientID {
		return nil, exceptions.ErrChartNotLoaded(nil)
	}
	switch snapshot.Status {
	case StatusLoaded:
	case StatusFailed:
		return nil, snapshot.Err
	default:
		return nil, exceptions.ErrChartNotLoaded(ctx.Err())
	}

	report, navigateTo, err := view.CreateReport(ctx, generation)
	if err != nil {
		return nil, err
	}

	return &responses.CreateDiagnosticReport{
		Report:     report,
		NavigateTo: navigateTo,
	}, nil
}

func (uc *patientChartUsecase) CloseView(ctx context.Context, sessionID string) error {
	uc.Registry.Evict(sessionID)
	return uc.ViewSessionRepository.DeleteViewSession(ctx, sessionID)
}

// view returns the session's view of patientID, restoring the persisted tab when the view is new.
func (uc *patientChartUsecase) view(ctx context.Context, sessionID, patientID string) (*PatientView, error) {
	view, created, err := uc.Registry.View(sessionID, patientID)
	if err != nil {
		return nil, err
	}
	if !created {
		return view, nil
	}

	session, err := uc.ViewSessionRepository.GetViewSession(ctx, sessionID)
	if err != nil {
		uc.Log.Warn("patientChartUsecase.view cannot restore view session",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return view, nil
	}
	if session != nil && slices.Contains(constvars.ChartTabs, session.ActiveTab) {
		view.SelectTab(session.ActiveTab)
	}
	return view, nil
}

func (uc *patientChartUsecase) saveViewSession(ctx context.Context, sessionID, patientID, tab string) {
	err := uc.ViewSessionRepository.SaveViewSession(ctx, &models.ViewSession{
		SessionID: sessionID,
		PatientID: patientID,
		ActiveTab: tab,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		uc.Log.Warn("patientChartUsecase.saveViewSession cannot persist view session",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
	}
}
