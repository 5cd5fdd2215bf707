package constvars

const (
	URLParamPatientID          = "patient_id"
	URLParamServiceRequestID   = "service_request_id"
	URLParamDiagnosticReportID = "diagnostic_report_id"
)

const (
	URLQueryParamTab   = "tab"
	URLQueryParamSaved   = "saved"
)

const (
	FormFieldStatus     = "status"
	FormFieldConclusion = "conclusion"
	FormFieldVersionID  = "version_id"
)
