package controllers

import (
	"net/http"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/delivery/http/views"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

// requestTimeout bounds a handler by the slower of the chart query and a single FHIR call.
func requestTimeout(internalConfig *config.InternalConfig) time.Duration {
	timeout := time.Duration(internalConfig.App.ChartQueryTimeoutInSeconds) * time.Second
	if fhirTimeout := time.Duration(internalConfig.FHIR.HTTPTimeoutInSeconds) * time.Second; fhirTimeout > timeout {
		timeout = fhirTimeout
	}
	if timeout <= 0 {
		return defaultRequestTimeout
	}
	return timeout
}

func render(log *zap.Logger, renderer *views.Renderer, w http.ResponseWriter, statusCode int, page string, data interface{}) {
	if err := renderer.Render(w, statusCode, page, data); err != nil {
		utils.LogCustomError(log, err)
		http.Error(w, constvars.ErrClientSomethingWrongWithApplication, constvars.StatusInternalServerError)
	}
}

// renderError serves the error page with the status of err. A non-empty
// retryHref is offered as a link back to the page that failed.
func renderError(log *zap.Logger, renderer *views.Renderer, w http.ResponseWriter, err error, retryHref string) {
	utils.LogCustomError(log, err)
	page := views.NewErrorPage(err, retryHref)
	render(log, renderer, w, page.StatusCode, views.PageError, page)
}
