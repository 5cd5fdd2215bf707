package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingDataKey               = "data"
	LoggingResponseKey           = "response"
	LoggingRequestKey            = "request"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingOperationKey          = "operation"
	LoggingErrorTypeKey          = "error_type"
	LoggingErrorCodeKey          = "error_code"
	LoggingErrorMessageKey       = "error_message"
	LoggingPatientIDKey          = "patient_id"
	LoggingServiceRequestIDKey   = "service_request_id"
	LoggingDiagnosticReportIDKey = "diagnostic_report_id"
	LoggingSessionIDKey          = "view_session_id"
	LoggingGenerationKey         = "generation"
	LoggingLatestGenerationKey   = "latest_generation"
	LoggingOrdersCountKey        = "orders_count"
	LoggingReportsCountKey       = "reports_count"
	LoggingHistoryCountKey       = "history_count"
	LoggingTabKey                = "tab"
	LoggingResourceTypeKey       = "resource_type"
	LoggingResourceIDKey         = "resource_id"
	LoggingBreakerKey            = "breaker"
	LoggingQueueKey              = "queue"
)
