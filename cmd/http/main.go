package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/contracts"
	"patient-chart-service/internal/app/delivery/http/controllers"
	"patient-chart-service/internal/app/delivery/http/middlewares"
	"patient-chart-service/internal/app/delivery/http/routers"
	"patient-chart-service/internal/app/delivery/http/views"
	"patient-chart-service/internal/app/drivers/database"
	"patient-chart-service/internal/app/drivers/logger"
	"patient-chart-service/internal/app/drivers/messaging"
	"patient-chart-service/internal/app/services/core/clinical_records"
	"patient-chart-service/internal/app/services/core/patient_charts"
	"patient-chart-service/internal/app/services/fhir_platform/diagnostic_reports"
	"patient-chart-service/internal/app/services/fhir_platform/graphql"
	"patient-chart-service/internal/app/services/fhir_platform/history"
	"patient-chart-service/internal/app/services/fhir_platform/service_requests"
	"patient-chart-service/internal/app/services/fhir_platform/transport"
	"patient-chart-service/internal/app/services/shared/circuitbreaker"
	"patient-chart-service/internal/app/services/shared/metrics"
	"patient-chart-service/internal/app/services/shared/redis"
	"patient-chart-service/internal/app/services/shared/report_events"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if driverConfig.Redis.Enabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig, log)
	}
	if driverConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig, log)
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	err := bootstrapingTheApp(appCtx, bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		log.Info("Server started", zap.String("addr", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	stopApp()
	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Metrics
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(promRegistry)

	// FHIR platform
	breaker := circuitbreaker.New(circuitbreaker.FromBreakerConfig("fhir-platform", internalConfig.Breaker), log, appMetrics)
	fhirTransport := transport.NewTransport(internalConfig.FHIR, breaker, log)
	patientChartFhirClient := graphql.NewPatientChartFhirClient(fhirTransport, log)
	diagnosticReportFhirClient := diagnostic_reports.NewDiagnosticReportFhirClient(fhirTransport, log)
	serviceRequestFhirClient := service_requests.NewServiceRequestFhirClient(fhirTransport, log)
	historyFhirClient := history.NewHistoryFhirClient(fhirTransport, log)

	// View sessions
	var viewSessionRepository contracts.ViewSessionRepository
	if bootstrap.Redis != nil {
		viewSessionRepository = redis.NewViewSessionRepository(
			bootstrap.Redis,
			time.Duration(internalConfig.App.ViewSessionTTLInHours)*time.Hour,
		)
	} else {
		log.Warn("Redis disabled, view sessions are kept in memory")
		viewSessionRepository = redis.NewInMemoryViewSessionRepository()
	}

	// Report events
	var reportEventPublisher contracts.ReportEventPublisher
	if bootstrap.RabbitMQ != nil {
		publisher, err := report_events.NewReportEventPublisher(
			bootstrap.RabbitMQ,
			internalConfig.App.RabbitMQReportEventsQueue,
			appMetrics,
			log,
		)
		if err != nil {
			return err
		}
		reportEventPublisher = publisher
	} else {
		reportEventPublisher = report_events.NewNopReportEventPublisher(log)
	}

	// Patient charts
	registry := patient_charts.NewRegistry(&patient_charts.Dependencies{
		ChartClient:    patientChartFhirClient,
		ReportClient:   diagnosticReportFhirClient,
		HistoryClient:  historyFhirClient,
		EventPublisher: reportEventPublisher,
		Metrics:        appMetrics,
		Log:            log,
		Report:         internalConfig.Report,
		QueryTimeout:   time.Duration(internalConfig.App.ChartQueryTimeoutInSeconds) * time.Second,
	}, patient_charts.RegistryConfig{
		IdleTTL:            time.Duration(internalConfig.App.ViewIdleTTLInMinutes) * time.Minute,
		MaxViews:           internalConfig.App.MaxPatientViews,
		MaxViewsPerSession: internalConfig.App.MaxPatientViewsPerSession,
	})
	go registry.Run(ctx)
	bootstrap.ViewsStop = registry.Close

	patientChartUsecase := patient_charts.NewPatientChartUsecase(registry, viewSessionRepository, internalConfig, log)
	clinicalRecordUsecase := clinical_records.NewClinicalRecordUsecase(serviceRequestFhirClient, diagnosticReportFhirClient, log)

	// Delivery
	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig),
		controllers.NewPatientChartController(log, patientChartUsecase, renderer, internalConfig),
		controllers.NewClinicalRecordController(log, clinicalRecordUsecase, renderer, internalConfig),
		controllers.NewHealthController(internalConfig, registry.Len),
		appMetrics.Handler(),
	)
	return nil
}
