package fhir_dto

import "encoding/json"

type FHIRBundle struct {
	ResourceType string  `json:"resourceType"`
	ID           string  `json:"id,omitempty"`
	Type         string  `json:"type"`
	Total        int     `json:"total,omitempty"`
	Entry        []Entry `json:"entry,omitempty"`
}

type Entry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Request  *EntryRequest   `json:"request,omitempty"`
	Response *EntryResponse  `json:"response,omitempty"`
}

type EntryRequest struct {
	Method string `json:"method,omitempty"`
	Url    string `json:"url,omitempty"`
}

type EntryResponse struct {
	Status       string `json:"status,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

// ResourceHeader is the subset every FHIR resource carries.
type ResourceHeader struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id,omitempty"`
	Meta         *Meta  `json:"meta,omitempty"`
}
