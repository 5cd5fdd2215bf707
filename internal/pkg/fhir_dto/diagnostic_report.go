package fhir_dto

import (
	"slices"

	"github.com/goccy/go-json"
)

// DiagnosticReport models the elements this service reads or edits. Every
// other element of the stored resource is kept in Elements and written back
// unchanged, so a read-modify-write never drops result, performer, basedOn or
// extensions.
type DiagnosticReport struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Meta         *Meta             `json:"meta,omitempty"`
	Status       string            `json:"status,omitempty"`
	Category     []CodeableConcept `json:"category,omitempty"`
	Code         CodeableConcept   `json:"code"`
	Subject      *Reference        `json:"subject,omitempty"`
	Issued       string            `json:"issued,omitempty"`
	Conclusion   string            `json:"conclusion,omitempty"`

	Elements map[string]json.RawMessage `json:"-"`
}

type diagnosticReportFields DiagnosticReport

var diagnosticReportModeled = []string{
	"resourceType", "id", "meta", "status", "category", "code", "subject", "issued", "conclusion",
}

func (r *DiagnosticReport) UnmarshalJSON(data []byte) error {
	var fields diagnosticReportFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var elements map[string]json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return err
	}
	for _, name := range diagnosticReportModeled {
		delete(elements, name)
	}
	if len(elements) == 0 {
		elements = nil
	}

	*r = DiagnosticReport(fields)
	r.Elements = elements
	return nil
}

func (r DiagnosticReport) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(diagnosticReportFields(r))
	if err != nil || len(r.Elements) == 0 {
		return data, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for name, value := range r.Elements {
		if slices.Contains(diagnosticReportModeled, name) {
			continue
		}
		merged[name] = value
	}
	return json.Marshal(merged)
}
