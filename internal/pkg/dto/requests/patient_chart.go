package requests

type PatientChartParams struct {
	PatientID string `validate:"required,fhir_id"`
	Tab       string `validate:"omitempty,chart_tab"`
}

type ResourceIDParams struct {
	ID string `validate:"required,fhir_id"`
}

type UpdateDiagnosticReport struct {
	ID         string `validate:"required,fhir_id"`
	Status     string `validate:"required,oneof=registered partial preliminary final amended corrected appended cancelled entered-in-error unknown"`
	Conclusion string `validate:"max=4000"`
	VersionID  string `validate:"omitempty,fhir_id"`
}
