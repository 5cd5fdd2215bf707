package routers

import (
	"fmt"
	"net/http"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/delivery/http/controllers"
	"patient-chart-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	patientChartController *controllers.PatientChartController,
	clinicalRecordController *controllers.ClinicalRecordController,
	healthController *controllers.HealthController,
	metricsHandler http.Handler,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Location", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	router.Get("/healthz", healthController.Healthz)
	router.Method(http.MethodGet, "/metrics", metricsHandler)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.RateLimiter())
		r.Use(middlewares.ViewSession)

		attachPageRoutes(r, patientChartController, clinicalRecordController)

		endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
		versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

		r.Route(endpointPrefix, func(r chi.Router) {
			r.Route(versionPrefix, func(r chi.Router) {
				attachAPIRoutes(r, patientChartController)
			})
		})
	})
}

func attachPageRoutes(router chi.Router, patientChartController *controllers.PatientChartController, clinicalRecordController *controllers.ClinicalRecordController) {
	router.Get("/Patient/{patient_id}", patientChartController.ShowPatientChart)
	router.Post("/Patient/{patient_id}/create-report", patientChartController.CreateDiagnosticReport)

	router.Get("/ServiceRequest/{service_request_id}", clinicalRecordController.ShowServiceRequest)
	router.Get("/DiagnosticReport/{diagnostic_report_id}", clinicalRecordController.ShowDiagnosticReport)
	router.Get("/DiagnosticReport/{diagnostic_report_id}/edit", clinicalRecordController.EditDiagnosticReport)
	router.Post("/DiagnosticReport/{diagnostic_report_id}/edit", clinicalRecordController.UpdateDiagnosticReport)
}

func attachAPIRoutes(router chi.Router, patientChartController *controllers.PatientChartController) {
	router.Get("/patients/{patient_id}/chart", patientChartController.GetPatientChart)
	router.Post("/patients/{patient_id}/diagnostic-reports", patientChartController.CreateDiagnosticReportAPI)
	router.Delete("/session", patientChartController.CloseView)
}
