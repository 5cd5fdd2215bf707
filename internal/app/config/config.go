package config

import (
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", true),
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Enabled:  utils.GetEnvBool("RABBITMQ_ENABLED", false),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                           utils.GetEnvString("APP_ENV", "development"),
			Port:                          utils.GetEnvString("APP_PORT", ":8080"),
			Version:                       utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:                utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                   utils.GetEnvInt("APP_MAX_REQUESTS", 50),
			ShutdownTimeout:               utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			ChartQueryTimeoutInSeconds:    utils.GetEnvInt("APP_CHART_QUERY_TIMEOUT_IN_SECONDS", 15),
			ChartRenderWaitInMilliseconds: utils.GetEnvInt("APP_CHART_RENDER_WAIT_IN_MILLISECONDS", 1500),
			ViewIdleTTLInMinutes:          utils.GetEnvInt("APP_VIEW_IDLE_TTL_IN_MINUTES", 30),
			ViewSessionTTLInHours:         utils.GetEnvInt("APP_VIEW_SESSION_TTL_IN_HOURS", 24),
			MaxPatientViews:               utils.GetEnvInt("APP_MAX_PATIENT_VIEWS", 10000),
			MaxPatientViewsPerSession:     utils.GetEnvInt("APP_MAX_PATIENT_VIEWS_PER_SESSION", 4),
			RabbitMQReportEventsQueue:     utils.GetEnvString("APP_RABBITMQ_REPORT_EVENTS_QUEUE", "diagnostic_report_events"),
		},
		FHIR: FHIR{
			BaseUrl:              utils.GetEnvString("FHIR_BASE_URL", "http://localhost:8103/fhir/R4/"),
			AccessToken:          utils.GetEnvString("FHIR_ACCESS_TOKEN", ""),
			HTTPTimeoutInSeconds: utils.GetEnvInt("FHIR_HTTP_TIMEOUT_IN_SECONDS", 10),
		},
		Report: Report{
			CodeSystem:  utils.GetEnvString("APP_REPORT_CODE_SYSTEM", constvars.DefaultReportCodeSystem),
			Code:        utils.GetEnvString("APP_REPORT_CODE", constvars.DefaultReportCode),
			CodeDisplay: utils.GetEnvString("APP_REPORT_CODE_DISPLAY", constvars.DefaultReportCodeDisplay),
		},
		Breaker: Breaker{
			MaxRequests:      utils.GetEnvInt("BREAKER_MAX_REQUESTS", 3),
			IntervalSeconds:  utils.GetEnvInt("BREAKER_INTERVAL_IN_SECONDS", 60),
			TimeoutSeconds:   utils.GetEnvInt("BREAKER_TIMEOUT_IN_SECONDS", 30),
			FailureThreshold: utils.GetEnvInt("BREAKER_FAILURE_THRESHOLD", 5),
			FailureRatio:     utils.GetEnvFloat("BREAKER_FAILURE_RATIO", 0.6),
			MinRequests:      utils.GetEnvInt("BREAKER_MIN_REQUESTS", 10),
		},
	}
}
