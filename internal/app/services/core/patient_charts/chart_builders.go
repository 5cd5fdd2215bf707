package patient_charts

import (
	"fmt"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/fhir_dto"
	"patient-chart-service/internal/pkg/utils"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

// TimelineEntry is one dated event on the timeline tab.
type TimelineEntry struct {
	ResourceType string
	ID           string
	Summary      string
	Status       string
	Link         string
	LastUpdated  *time.Time
}

// HistoryEntry is one version of the patient record on the history tab.
type HistoryEntry struct {
	VersionID   string
	Action      string
	Name        string
	LastUpdated *time.Time
}

// BuildDiagnosticReport is the record the create report action sends: a final
// report about patientID carrying the configured classification.
func BuildDiagnosticReport(patientID string, patient *fhir_dto.Patient, report config.Report) *fhir_dto.DiagnosticReport {
	subject := &fhir_dto.Reference{
		Reference: utils.BuildReference(constvars.ResourcePatient, patientID),
	}
	if patient != nil {
		subject.Display = utils.GetFullName(patient.Name)
	}

	return &fhir_dto.DiagnosticReport{
		ResourceType: constvars.ResourceDiagnosticReport,
		Status:       constvars.FhirDiagnosticReportStatusFinal,
		Subject:      subject,
		Code: fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System:  report.CodeSystem,
					Code:    report.Code,
					Display: report.CodeDisplay,
				},
			},
		},
	}
}

func BuildHistory(bundle *fhir_dto.FHIRBundle) ([]HistoryEntry, error) {
	entries := make([]HistoryEntry, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		historyEntry := HistoryEntry{
			Action: historyAction(entry),
		}

		if len(entry.Resource) > 0 {
			var patient fhir_dto.Patient
			err := json.Unmarshal(entry.Resource, &patient)
			if err != nil {
				return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBundle)
			}
			historyEntry.Name = utils.GetFullName(patient.Name)
			if patient.Meta != nil {
				historyEntry.VersionID = patient.Meta.VersionId
				historyEntry.LastUpdated = patient.Meta.LastUpdated
			}
		}

		entries = append(entries, historyEntry)
	}
	return entries, nil
}

// BuildTimeline lists patient versions, orders and reports by meta.lastUpdated,
// newest first. Entries without a timestamp go last.
func BuildTimeline(bundle *fhir_dto.FHIRBundle, chart *fhir_dto.PatientChart) ([]TimelineEntry, error) {
	history, err := BuildHistory(bundle)
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, len(history)+len(chart.Orders)+len(chart.Reports))
	patientID := ""
	if chart.Patient != nil {
		patientID = chart.Patient.ID
	}
	for _, version := range history {
		entries = append(entries, TimelineEntry{
			ResourceType: constvars.ResourcePatient,
			ID:           patientID,
			Summary:      fmt.Sprintf("Patient record %s (version %s)", version.Action, version.VersionID),
			Link:         fmt.Sprintf(constvars.PagePathPatientFormat, patientID),
			LastUpdated:  version.LastUpdated,
		})
	}

	for _, order := range chart.Orders {
		entries = append(entries, TimelineEntry{
			ResourceType: constvars.ResourceServiceRequest,
			ID:           order.ID,
			Summary:      describe("Order", utils.CodeableConceptText(order.Code)),
			Status:       order.Status,
			Link:         fmt.Sprintf(constvars.PagePathServiceRequestFormat, order.ID),
			LastUpdated:  lastUpdated(order.Meta),
		})
	}

	for _, report := range chart.Reports {
		code := report.Code
		entries = append(entries, TimelineEntry{
			ResourceType: constvars.ResourceDiagnosticReport,
			ID:           report.ID,
			Summary:      describe("Report", utils.CodeableConceptText(&code)),
			Status:       report.Status,
			Link:         fmt.Sprintf(constvars.PagePathDiagnosticReportFormat, report.ID),
			LastUpdated:  lastUpdated(report.Meta),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i].LastUpdated, entries[j].LastUpdated
		if left == nil || right == nil {
			return left != nil
		}
		return left.After(*right)
	})
	return entries, nil
}

func historyAction(entry fhir_dto.Entry) string {
	if entry.Request == nil {
		return "updated"
	}
	switch entry.Request.Method {
	case constvars.MethodPost:
		return "created"
	case constvars.MethodDelete:
		return "deleted"
	default:
		return "updated"
	}
}

func describe(kind, text string) string {
	if text == "" {
		return kind
	}
	return fmt.Sprintf("%s: %s", kind, text)
}

func lastUpdated(meta *fhir_dto.Meta) *time.Time {
	if meta == nil {
		return nil
	}
	return meta.LastUpdated
}
