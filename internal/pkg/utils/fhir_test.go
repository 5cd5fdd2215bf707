package utils

import (
	"patient-chart-service/internal/pkg/fhir_dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanNameHelpers(t *testing.T) {
	names := []fhir_dto.HumanName{
		{Given: []string{"Jane", "A."}, Family: "Doe"},
		{Given: []string{"Janet"}, Family: "Smith"},
	}

	t.Run("First Name", func(t *testing.T) {
		assert.Equal(t, "Jane", GetFirstName(names), "first given of the first name entry")
	})

	t.Run("Last Name", func(t *testing.T) {
		assert.Equal(t, "Doe", GetLastName(names), "family of the first name entry")
	})

	t.Run("Full Name", func(t *testing.T) {
		assert.Equal(t, "Jane A. Doe", GetFullName(names))
	})

	t.Run("Text Only Name", func(t *testing.T) {
		assert.Equal(t, "Jane Doe", GetFullName([]fhir_dto.HumanName{{Text: "Jane Doe"}}))
	})

	t.Run("No Names", func(t *testing.T) {
		assert.Empty(t, GetFirstName(nil))
		assert.Empty(t, GetLastName(nil))
		assert.Empty(t, GetFullName(nil))
	})
}

func TestFormatAddress(t *testing.T) {
	t.Run("Full Address", func(t *testing.T) {
		address := fhir_dto.Address{
			Line:       []string{"123 Main St", "Apt 4"},
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62701",
		}
		assert.Equal(t, "123 Main St, Apt 4, Springfield, IL 62701", FormatAddress(address))
	})

	t.Run("Text Takes Precedence", func(t *testing.T) {
		address := fhir_dto.Address{Text: "somewhere", City: "Springfield"}
		assert.Equal(t, "somewhere", FormatAddress(address))
	})

	t.Run("City Only", func(t *testing.T) {
		assert.Equal(t, "Springfield", FormatAddress(fhir_dto.Address{City: "Springfield"}))
	})
}

func TestFormatContactPoint(t *testing.T) {
	assert.Equal(t, "555-0100 [home phone]", FormatContactPoint(fhir_dto.ContactPoint{System: "phone", Value: "555-0100", Use: "home"}))
	assert.Equal(t, "jane@example.com [email]", FormatContactPoint(fhir_dto.ContactPoint{System: "email", Value: "jane@example.com"}))
	assert.Equal(t, "555-0100", FormatContactPoint(fhir_dto.ContactPoint{Value: "555-0100"}))
}

func TestCodeableConceptText(t *testing.T) {
	assert.Equal(t, "CBC", CodeableConceptText(&fhir_dto.CodeableConcept{Text: "CBC"}))
	assert.Equal(t, "Laboratory report", CodeableConceptText(&fhir_dto.CodeableConcept{
		Coding: []fhir_dto.Coding{{System: "http://loinc.org", Code: "11502-2", Display: "Laboratory report"}},
	}))
	assert.Equal(t, "11502-2", CodeableConceptText(&fhir_dto.CodeableConcept{
		Coding: []fhir_dto.Coding{{Code: "11502-2"}},
	}))
	assert.Empty(t, CodeableConceptText(nil))
}

func TestBuildReference(t *testing.T) {
	assert.Equal(t, "Patient/123", BuildReference("Patient", "123"))
}

func TestValidateStructFhirID(t *testing.T) {
	type params struct {
		PatientID string `validate:"required,fhir_id"`
		Tab       string `validate:"omitempty,chart_tab"`
	}

	assert.NoError(t, ValidateStruct(params{PatientID: "abc-123.x"}))
	assert.NoError(t, ValidateStruct(params{PatientID: "abc", Tab: "history"}))
	assert.Error(t, ValidateStruct(params{PatientID: "abc/123"}))
	assert.Error(t, ValidateStruct(params{PatientID: ""}))
	assert.Error(t, ValidateStruct(params{PatientID: "abc", Tab: "billing"}))
}

func TestParseResourceLocation(t *testing.T) {
	id, versionID := ParseResourceLocation("https://fhir.example.org/fhir/R4/DiagnosticReport/r1/_history/2", "DiagnosticReport")
	assert.Equal(t, "r1", id)
	assert.Equal(t, "2", versionID)

	id, versionID = ParseResourceLocation("DiagnosticReport/r9", "DiagnosticReport")
	assert.Equal(t, "r9", id)
	assert.Empty(t, versionID)

	id, _ = ParseResourceLocation("https://fhir.example.org/fhir/R4/Patient/1", "DiagnosticReport")
	assert.Empty(t, id)
	id, _ = ParseResourceLocation("", "DiagnosticReport")
	assert.Empty(t, id)
}
