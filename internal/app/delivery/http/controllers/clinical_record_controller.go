package controllers

import (
	"context"
	"fmt"
	"net/http"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/delivery/http/views"
	"patient-chart-service/internal/app/services/core/clinical_records"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/dto/requests"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ClinicalRecordController serves the pages the chart links to: orders,
// reports and the report edit form.
type ClinicalRecordController struct {
	Log                   *zap.Logger
	ClinicalRecordUsecase clinical_records.ClinicalRecordUsecase
	Renderer              *views.Renderer
	RequestTimeout        time.Duration
}

func NewClinicalRecordController(logger *zap.Logger, clinicalRecordUsecase clinical_records.ClinicalRecordUsecase, renderer *views.Renderer, internalConfig *config.InternalConfig) *ClinicalRecordController {
	return &ClinicalRecordController{
		Log:                   logger,
		ClinicalRecordUsecase: clinicalRecordUsecase,
		Renderer:              renderer,
		RequestTimeout:        requestTimeout(internalConfig),
	}
}

func (ctrl *ClinicalRecordController) ShowServiceRequest(w http.ResponseWriter, r *http.Request) {
	serviceRequestID := chi.URLParam(r, constvars.URLParamServiceRequestID)
	if err := utils.ValidateStruct(&requests.ResourceIDParams{ID: serviceRequestID}); err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, exceptions.ErrURLParamValidation(err, constvars.URLParamServiceRequestID), "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	serviceRequest, err := ctrl.ClinicalRecordUsecase.FindServiceRequestByID(ctx, serviceRequestID)
	if err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, withDeadline(err), fmt.Sprintf(constvars.PagePathServiceRequestFormat, serviceRequestID))
		return
	}

	render(ctrl.Log, ctrl.Renderer, w, constvars.StatusOK, views.PageResourceDetail, views.NewServiceRequestDetailPage(serviceRequest))
}

func (ctrl *ClinicalRecordController) ShowDiagnosticReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, constvars.URLParamDiagnosticReportID)
	if err := utils.ValidateStruct(&requests.ResourceIDParams{ID: reportID}); err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, exceptions.ErrURLParamValidation(err, constvars.URLParamDiagnosticReportID), "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	report, err := ctrl.ClinicalRecordUsecase.FindDiagnosticReportByID(ctx, reportID)
	if err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, withDeadline(err), fmt.Sprintf(constvars.PagePathDiagnosticReportFormat, reportID))
		return
	}

	render(ctrl.Log, ctrl.Renderer, w, constvars.StatusOK, views.PageResourceDetail, views.NewDiagnosticReportDetailPage(report))
}

// EditDiagnosticReport is the page the chart navigates to after a report is created.
func (ctrl *ClinicalRecordController) EditDiagnosticReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, constvars.URLParamDiagnosticReportID)
	if err := utils.ValidateStruct(&requests.ResourceIDParams{ID: reportID}); err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, exceptions.ErrURLParamValidation(err, constvars.URLParamDiagnosticReportID), "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	report, err := ctrl.ClinicalRecordUsecase.FindDiagnosticReportByID(ctx, reportID)
	if err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, withDeadline(err), fmt.Sprintf(constvars.PagePathDiagnosticReportEditFormat, reportID))
		return
	}

	saved := r.URL.Query().Get(constvars.URLQueryParamSaved) != ""
	render(ctrl.Log, ctrl.Renderer, w, constvars.StatusOK, views.PageDiagnosticReportEdit, views.NewDiagnosticReportEditPage(report, saved, ""))
}

// UpdateDiagnosticReport saves the edit form. An invalid form is rendered
// again with the validation message; a saved one redirects back to the form.
func (ctrl *ClinicalRecordController) UpdateDiagnosticReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	reportID := chi.URLParam(r, constvars.URLParamDiagnosticReportID)
	editHref := fmt.Sprintf(constvars.PagePathDiagnosticReportEditFormat, reportID)

	if err := r.ParseForm(); err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, exceptions.ErrCannotParseForm(err), editHref)
		return
	}

	request := &requests.UpdateDiagnosticReport{
		ID:         reportID,
		Status:     r.PostForm.Get(constvars.FormFieldStatus),
		Conclusion: r.PostForm.Get(constvars.FormFieldConclusion),
		VersionID:  r.PostForm.Get(constvars.FormFieldVersionID),
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	if err := utils.ValidateStruct(request); err != nil {
		validationErr := exceptions.ErrInputValidation(err)
		if idErr := utils.ValidateStruct(&requests.ResourceIDParams{ID: reportID}); idErr != nil {
			renderError(ctrl.Log, ctrl.Renderer, w, validationErr, "")
			return
		}

		report, findErr := ctrl.ClinicalRecordUsecase.FindDiagnosticReportByID(ctx, reportID)
		if findErr != nil {
			renderError(ctrl.Log, ctrl.Renderer, w, withDeadline(findErr), editHref)
			return
		}
		render(ctrl.Log, ctrl.Renderer, w, validationErr.StatusCode, views.PageDiagnosticReportEdit,
			views.NewDiagnosticReportEditPage(report, false, validationErr.ClientMessage))
		return
	}

	report, err := ctrl.ClinicalRecordUsecase.UpdateDiagnosticReport(ctx, request)
	if err != nil {
		renderError(ctrl.Log, ctrl.Renderer, w, withDeadline(err), editHref)
		return
	}

	ctrl.Log.Info("ClinicalRecordController.UpdateDiagnosticReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDiagnosticReportIDKey, report.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	http.Redirect(w, r, fmt.Sprintf("%s?%s=1", editHref, constvars.URLQueryParamSaved), constvars.StatusSeeOther)
}
