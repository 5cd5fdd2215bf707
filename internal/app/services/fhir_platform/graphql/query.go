package graphql

import (
	"fmt"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/utils"

	"github.com/goccy/go-json"
)

const patientChartQueryFormat = `{
  patient: Patient(id: %[1]s) {
    resourceType
    id
    meta { versionId lastUpdated }
    birthDate
    gender
    name { given family text }
    telecom { system value use }
    address { use text line city state postalCode country }
  }
  orders: ServiceRequestList(subject: %[2]s) {
    resourceType
    id
    meta { lastUpdated }
    status
    intent
    category { text }
    code { text }
  }
  reports: DiagnosticReportList(subject: %[2]s) {
    resourceType
    id
    meta { lastUpdated }
    status
    code { text }
  }
}`

// BuildPatientChartQuery composes the single read that loads a patient with
// its orders and reports, filtering both lists by reference to the patient.
func BuildPatientChartQuery(patientID string) string {
	subject := utils.BuildReference(constvars.ResourcePatient, patientID)
	return fmt.Sprintf(patientChartQueryFormat, quote(patientID), quote(subject))
}

func quote(value string) string {
	quoted, err := json.Marshal(value)
	if err != nil {
		return `""`
	}
	return string(quoted)
}
