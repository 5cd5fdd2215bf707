package fhir_dto

// ServiceRequest is the order side of the patient chart.
type ServiceRequest struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Meta         *Meta             `json:"meta,omitempty"`
	Status       string            `json:"status,omitempty"`
	Intent       string            `json:"intent,omitempty"`
	Category     []CodeableConcept `json:"category,omitempty"`
	Code         *CodeableConcept  `json:"code,omitempty"`
	Subject      *Reference        `json:"subject,omitempty"`
	AuthoredOn   string            `json:"authoredOn,omitempty"`
}
