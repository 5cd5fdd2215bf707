package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/delivery/http/views"
	"patient-chart-service/internal/app/services/core/patient_charts"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/dto/requests"
	"patient-chart-service/internal/pkg/dto/responses"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PatientChartController struct {
	Log                 *zap.Logger
	PatientChartUsecase patient_charts.PatientChartUsecase
	Renderer            *views.Renderer
	RequestTimeout      time.Duration
}

func NewPatientChartController(logger *zap.Logger, patientChartUsecase patient_charts.PatientChartUsecase, renderer *views.Renderer, internalConfig *config.InternalConfig) *PatientChartController {
	return &PatientChartController{
		Log:                 logger,
		PatientChartUsecase: patientChartUsecase,
		Renderer:            renderer,
		RequestTimeout:      requestTimeout(internalConfig),
	}
}

// ShowPatientChart renders the chart page of a patient. While the chart is
// still loading the loading page is served and the browser refreshes it.
func (ctrl *PatientChartController) ShowPatientChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	params := &requests.PatientChartParams{
		PatientID: chi.URLParam(r, constvars.URLParamPatientID),
		Tab:       r.URL.Query().Get(constvars.URLQueryParamTab),
	}

	ctrl.Log.Debug("PatientChartController.ShowPatientChart called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, params.PatientID),
		zap.String(constvars.LoggingTabKey, params.Tab),
	)

	if err := utils.ValidateStruct(params); err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, exceptions.ErrInputValidation(err), "")
		return
	}

	sessionID := utils.GetViewSessionID(r.Context())
	if sessionID == "" {
		renderError(ctrl.Log, ctrl.Renderer, w, exceptions.ErrMissingViewSession(nil), "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	page, err := ctrl.PatientChartUsecase.OpenPatientChart(ctx, sessionID, params)
	if err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, withDeadline(err), patientHref(params.PatientID))
		return
	}
	page.Snapshot = snapshotFor(params.PatientID, page.Snapshot)

	switch page.Snapshot.Status {
	case patient_charts.StatusLoaded:
		ctrl.Log.Debug("PatientChartController.ShowPatientChart succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, params.PatientID),
			zap.Uint64(constvars.LoggingGenerationKey, page.Snapshot.Generation),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		)
		render(ctrl.Log, ctrl.Renderer, w, constvars.StatusOK, views.PagePatientChart, views.NewPatientChartPage(page))
	case patient_charts.StatusFailed:
		renderError(ctrl.Log, ctrl.Renderer, w, page.Snapshot.Err, patientHref(params.PatientID))
	default:
		w.Header().Set(constvars.HeaderRefresh, fmt.Sprint(constvars.LoadingPageRefreshIntervalInSeconds))
		render(ctrl.Log, ctrl.Renderer, w, constvars.StatusOK, views.PageLoading, views.NewLoadingPage(params.PatientID))
	}
}

// CreateDiagnosticReport handles the create report form of the chart page and
// redirects to the edit page of the new report.
func (ctrl *PatientChartController) CreateDiagnosticReport(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	response, err := ctrl.createDiagnosticReport(r, patientID)
	if err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, err, patientHref(patientID))
		return
	}
	http.Redirect(w, r, response.NavigateTo, constvars.StatusSeeOther)
}

// GetPatientChart is the JSON rendition of ShowPatientChart. A chart that is
// still loading answers 202 with the current snapshot.
func (ctrl *PatientChartController) GetPatientChart(w http.ResponseWriter, r *http.Request) {
	params := &requests.PatientChartParams{
		PatientID: chi.URLParam(r, constvars.URLParamPatientID),
		Tab:       r.URL.Query().Get(constvars.URLQueryParamTab),
	}
	if err := utils.ValidateStruct(params); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	sessionID := utils.GetViewSessionID(r.Context())
	if sessionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingViewSession(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	page, err := ctrl.PatientChartUsecase.OpenPatientChart(ctx, sessionID, params)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, withDeadline(err))
		return
	}
	page.Snapshot = snapshotFor(params.PatientID, page.Snapshot)

	switch page.Snapshot.Status {
	case patient_charts.StatusLoaded:
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientChartSuccessMessage, toPatientChartResponse(page.Snapshot))
	case patient_charts.StatusFailed:
		utils.BuildErrorResponse(ctrl.Log, w, page.Snapshot.Err)
	default:
		utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.GetPatientChartLoadingMessage, toPatientChartResponse(page.Snapshot))
	}
}

func (ctrl *PatientChartController) CreateDiagnosticReportAPI(w http.ResponseWriter, r *http.Request) {
	response, err := ctrl.createDiagnosticReport(r, chi.URLParam(r, constvars.URLParamPatientID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	w.Header().Set(constvars.HeaderLocation, response.NavigateTo)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateDiagnosticReportSuccessMessage, response)
}

// CloseView tears down the view of the calling session, dropping any load still in flight.
func (ctrl *PatientChartController) CloseView(w http.ResponseWriter, r *http.Request) {
	sessionID := utils.GetViewSessionID(r.Context())
	if sessionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingViewSession(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	if err := ctrl.PatientChartUsecase.CloseView(ctx, sessionID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, withDeadline(err))
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CloseViewSuccessMessage, nil)
}

func (ctrl *PatientChartController) createDiagnosticReport(r *http.Request, patientID string) (*responses.CreateDiagnosticReport, error) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	params := &requests.ResourceIDParams{ID: patientID}
	if err := utils.ValidateStruct(params); err != nil {
		return nil, exceptions.ErrURLParamValidation(err, constvars.URLParamPatientID)
	}

	sessionID := utils.GetViewSessionID(r.Context())
	if sessionID == "" {
		return nil, exceptions.ErrMissingViewSession(nil)
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.PatientChartUsecase.CreateDiagnosticReport(ctx, sessionID, patientID)
	if err != nil {
		ctrl.Log.Error("PatientChartController.CreateDiagnosticReport error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		return nil, withDeadline(err)
	}

	ctrl.Log.Info("PatientChartController.CreateDiagnosticReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingDiagnosticReportIDKey, response.Report.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	return response, nil
}

func toPatientChartResponse(snapshot patient_charts.Snapshot) *responses.PatientChart {
	response := &responses.PatientChart{
		PatientID:  snapshot.PatientID,
		Generation: snapshot.Generation,
		Status:     string(snapshot.Status),
		ActiveTab:  snapshot.ActiveTab,
		Chart:      snapshot.Chart,
	}
	if snapshot.Err != nil {
		response.Error = utils.ResolveCustomError(snapshot.Err).ClientMessage
	}
	if snapshot.Report.Status != patient_charts.ReportStatusIdle {
		response.Report = &responses.ReportAction{
			Status:   string(snapshot.Report.Status),
			ReportID: snapshot.Report.ReportID,
		}
		if snapshot.Report.Err != nil {
			response.Report.Error = utils.ResolveCustomError(snapshot.Report.Err).ClientMessage
		}
	}
	return response
}

// snapshotFor keeps a snapshot of another patient from ever being shown for
// patientID; the page keeps loading instead.
func snapshotFor(patientID string, snapshot patient_charts.Snapshot) patient_charts.Snapshot {
	if snapshot.PatientID == patientID {
		return snapshot
	}
	return patient_charts.Snapshot{
		SessionID: snapshot.SessionID,
		PatientID: patientID,
		Status:    patient_charts.StatusLoading,
		ActiveTab: snapshot.ActiveTab,
		Report:    patient_charts.ReportAction{Status: patient_charts.ReportStatusIdle},
	}
}

func patientHref(patientID string) string {
	return fmt.Sprintf(constvars.PagePathPatientFormat, patientID)
}

func withDeadline(err error) error {
	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) && errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}
