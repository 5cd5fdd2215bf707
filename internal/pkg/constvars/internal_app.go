package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_VIEW_SESSION_ID_KEY      ContextKey = "view_session_id"
)

const (
	REQUEST_ID_PREFIX = "CHART_SVC_"
)

const (
	ViewSessionCookieName = "chart_session"
	ViewSessionRedisKey   = "chart:session:%s"
)

// Tabs of the patient chart page.
const (
	ChartTabOverview = "overview"
	ChartTabTimeline = "timeline"
	ChartTabHistory  = "history"
)

var ChartTabs = []string{ChartTabOverview, ChartTabTimeline, ChartTabHistory}

const (
	PagePathPatientFormat                = "/Patient/%s"
	PagePathServiceRequestFormat         = "/ServiceRequest/%s"
	PagePathDiagnosticReportFormat       = "/DiagnosticReport/%s"
	PagePathDiagnosticReportEditFormat   = "/DiagnosticReport/%s/edit"
	PagePathPatientCreateReportFormat    = "/Patient/%s/create-report"
	PagePathPatientWithTabFormat         = "/Patient/%s?tab=%s"
	LoadingPageRefreshIntervalInSeconds  = 1
	ReportEventTypeDiagnosticReportAdded = "diagnostic_report.created"
)
