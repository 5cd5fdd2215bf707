package constvars

const (
	ResourcePatient          = "Patient"
	ResourceServiceRequest   = "ServiceRequest"
	ResourceDiagnosticReport = "DiagnosticReport"
	ResourceBundle           = "Bundle"
	ResourceOperationOutcome = "OperationOutcome"
)

// FHIR operation endpoints
const (
	FhirOperationGraphQL = "$graphql"
	FhirPathHistory      = "_history"
)

const (
	FhirDiagnosticReportStatusRegistered  = "registered"
	FhirDiagnosticReportStatusPartial     = "partial"
	FhirDiagnosticReportStatusPreliminary = "preliminary"
	FhirDiagnosticReportStatusFinal       = "final"
	FhirDiagnosticReportStatusAmended     = "amended"
	FhirDiagnosticReportStatusCorrected   = "corrected"
	FhirDiagnosticReportStatusAppended    = "appended"
	FhirDiagnosticReportStatusCancelled   = "cancelled"
	FhirDiagnosticReportStatusError       = "entered-in-error"
	FhirDiagnosticReportStatusUnknown     = "unknown"
)

// Default classification attached to reports created from the patient chart.
const (
	DefaultReportCodeSystem  = "http://loinc.org"
	DefaultReportCode        = "11502-2"
	DefaultReportCodeDisplay = "Laboratory report"
)

const (
	FhirBundleTypeHistory = "history"
)

const (
	FhirReferenceFormat = "%s/%s"
)
