package patient_charts

import (
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/fhir_dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day int) *fhir_dto.Meta {
	updated := time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
	return &fhir_dto.Meta{LastUpdated: &updated}
}

func TestBuildDiagnosticReport(t *testing.T) {
	reportConfig := config.Report{CodeSystem: "http://loinc.org", Code: "11502-2", CodeDisplay: "Laboratory report"}

	t.Run("With Patient", func(t *testing.T) {
		report := BuildDiagnosticReport("123", testChart("123").Patient, reportConfig)

		assert.Equal(t, constvars.ResourceDiagnosticReport, report.ResourceType)
		assert.Equal(t, "final", report.Status)
		assert.Equal(t, "Patient/123", report.Subject.Reference)
		assert.Equal(t, "Jane A. Doe", report.Subject.Display)
		assert.Equal(t, []fhir_dto.Coding{{System: "http://loinc.org", Code: "11502-2", Display: "Laboratory report"}}, report.Code.Coding)
		assert.Empty(t, report.ID, "the platform assigns the id")
	})

	t.Run("Without Patient", func(t *testing.T) {
		report := BuildDiagnosticReport("123", nil, reportConfig)
		assert.Equal(t, "Patient/123", report.Subject.Reference)
		assert.Empty(t, report.Subject.Display)
	})
}

func TestBuildHistory(t *testing.T) {
	bundle := &fhir_dto.FHIRBundle{
		ResourceType: constvars.ResourceBundle,
		Entry: []fhir_dto.Entry{
			{
				Resource: []byte(`{"resourceType":"Patient","id":"123","meta":{"versionId":"2"},"name":[{"given":["Jane"],"family":"Roe"}]}`),
				Request:  &fhir_dto.EntryRequest{Method: constvars.MethodPut},
			},
			{
				Resource: []byte(`{"resourceType":"Patient","id":"123","meta":{"versionId":"1"},"name":[{"given":["Jane"],"family":"Doe"}]}`),
				Request:  &fhir_dto.EntryRequest{Method: constvars.MethodPost},
			},
			{
				Request: &fhir_dto.EntryRequest{Method: constvars.MethodDelete},
			},
		},
	}

	history, err := BuildHistory(bundle)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, HistoryEntry{VersionID: "2", Action: "updated", Name: "Jane Roe"}, history[0])
	assert.Equal(t, HistoryEntry{VersionID: "1", Action: "created", Name: "Jane Doe"}, history[1])
	assert.Equal(t, "deleted", history[2].Action)

	t.Run("Malformed Entry", func(t *testing.T) {
		_, err := BuildHistory(&fhir_dto.FHIRBundle{Entry: []fhir_dto.Entry{{Resource: []byte(`"nope"`)}}})
		assert.Error(t, err)
	})
}

func TestBuildTimeline(t *testing.T) {
	chart := testChart("123")
	chart.Orders = []fhir_dto.ServiceRequest{
		{ID: "o1", Status: "active", Meta: at(3), Code: &fhir_dto.CodeableConcept{Text: "CBC"}},
		{ID: "o2", Status: "draft"},
	}
	chart.Reports = []fhir_dto.DiagnosticReport{
		{ID: "r1", Status: "final", Meta: at(5), Code: fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Display: "Lipid panel"}}}},
	}
	bundle := &fhir_dto.FHIRBundle{
		Entry: []fhir_dto.Entry{
			{Resource: []byte(`{"resourceType":"Patient","id":"123","meta":{"versionId":"1","lastUpdated":"2024-03-04T00:00:00Z"}}`)},
		},
	}

	timeline, err := BuildTimeline(bundle, chart)
	require.NoError(t, err)
	require.Len(t, timeline, 4)

	assert.Equal(t, "r1", timeline[0].ID)
	assert.Equal(t, "Report: Lipid panel", timeline[0].Summary)
	assert.Equal(t, "/DiagnosticReport/r1", timeline[0].Link)

	assert.Equal(t, constvars.ResourcePatient, timeline[1].ResourceType)
	assert.Equal(t, "Patient record updated (version 1)", timeline[1].Summary)

	assert.Equal(t, "o1", timeline[2].ID)
	assert.Equal(t, "Order: CBC", timeline[2].Summary)
	assert.Equal(t, "/ServiceRequest/o1", timeline[2].Link)

	assert.Equal(t, "o2", timeline[3].ID, "undated entries go last")
	assert.Equal(t, "Order", timeline[3].Summary)
}
