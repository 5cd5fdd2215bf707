package constvars

const (
	ResponseUnknown = "unknown"

	GetPatientChartSuccessMessage        = "patient chart retrieved successfully"
	GetPatientChartLoadingMessage        = "patient chart is still loading"
	CreateDiagnosticReportSuccessMessage = "diagnostic report created successfully"
	CloseViewSuccessMessage              = "patient view closed"
	HealthCheckSuccessMessage            = "service is healthy"
)
