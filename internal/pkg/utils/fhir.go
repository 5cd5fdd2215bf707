package utils

import (
	"fmt"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/fhir_dto"
	"strings"
	"time"
)

func BuildReference(resourceType, id string) string {
	return fmt.Sprintf(constvars.FhirReferenceFormat, resourceType, id)
}

func CalculateAge(birthDate string) int {
	if birthDate == "" {
		return 0
	}

	layout := "2006-01-02"
	dob, err := time.Parse(layout, birthDate)
	if err != nil {
		return 0
	}

	today := time.Now()
	age := today.Year() - dob.Year()
	if today.YearDay() < dob.YearDay() {
		age--
	}

	return age
}

func FormatBirthDate(birthDate string) string {
	if birthDate == "" {
		return ""
	}

	layout := "2006-01-02"
	dob, err := time.Parse(layout, birthDate)
	if err != nil {
		return birthDate
	}

	return dob.Format("02 January 2006")
}

func GetFirstName(names []fhir_dto.HumanName) string {
	if len(names) == 0 || len(names[0].Given) == 0 {
		return ""
	}
	return names[0].Given[0]
}

func GetLastName(names []fhir_dto.HumanName) string {
	if len(names) == 0 {
		return ""
	}
	return names[0].Family
}

// GetFullName renders the first name entry as "given... family", falling back to its text.
func GetFullName(names []fhir_dto.HumanName) string {
	if len(names) == 0 {
		return ""
	}

	name := names[0]
	if name.Text != "" && len(name.Given) == 0 && name.Family == "" {
		return name.Text
	}

	parts := make([]string, 0, len(name.Given)+len(name.Prefix)+1)
	parts = append(parts, name.Prefix...)
	parts = append(parts, name.Given...)
	if name.Family != "" {
		parts = append(parts, name.Family)
	}
	return strings.Join(parts, " ")
}

// FormatAddress joins lines, city, state and postal code the way a postal label reads.
func FormatAddress(address fhir_dto.Address) string {
	if address.Text != "" {
		return address.Text
	}

	var parts []string
	parts = append(parts, address.Line...)
	if address.City != "" {
		parts = append(parts, address.City)
	}

	region := strings.TrimSpace(strings.Join(nonEmpty(address.State, address.PostalCode), " "))
	if region != "" {
		parts = append(parts, region)
	}
	if address.Country != "" {
		parts = append(parts, address.Country)
	}
	return strings.Join(parts, ", ")
}

func FormatContactPoint(contactPoint fhir_dto.ContactPoint) string {
	qualifiers := nonEmpty(contactPoint.Use, contactPoint.System)
	if len(qualifiers) == 0 {
		return contactPoint.Value
	}
	return fmt.Sprintf("%s [%s]", contactPoint.Value, strings.Join(qualifiers, " "))
}

func CodeableConceptText(concept *fhir_dto.CodeableConcept) string {
	if concept == nil {
		return ""
	}
	if concept.Text != "" {
		return concept.Text
	}
	for _, coding := range concept.Coding {
		if coding.Display != "" {
			return coding.Display
		}
		if coding.Code != "" {
			return coding.Code
		}
	}
	return ""
}

func nonEmpty(values ...string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value != "" {
			result = append(result, value)
		}
	}
	return result
}

// ParseResourceLocation reads the id and version of resourceType out of a
// Location header such as "https://host/fhir/DiagnosticReport/r1/_history/2".
func ParseResourceLocation(location, resourceType string) (id, versionID string) {
	segments := strings.Split(strings.Trim(location, "/"), "/")
	for i := len(segments) - 2; i >= 0; i-- {
		if segments[i] != resourceType {
			continue
		}
		id = segments[i+1]
		if i+3 < len(segments) && segments[i+2] == constvars.FhirPathHistory {
			versionID = segments[i+3]
		}
		return id, versionID
	}
	return "", ""
}
