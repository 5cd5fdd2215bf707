package responses

import "patient-chart-service/internal/pkg/fhir_dto"

type PatientChart struct {
	PatientID  string                 `json:"patient_id"`
	Generation uint64                 `json:"generation"`
	Status     string                 `json:"status"`
	ActiveTab  string                 `json:"active_tab"`
	Error      string                 `json:"error,omitempty"`
	Chart      *fhir_dto.PatientChart `json:"chart,omitempty"`
	Report     *ReportAction          `json:"report_action,omitempty"`
}

type ReportAction struct {
	Status   string `json:"status"`
	ReportID string `json:"report_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

type CreateDiagnosticReport struct {
	Report     *fhir_dto.DiagnosticReport `json:"report"`
	NavigateTo string                     `json:"navigate_to"`
}
