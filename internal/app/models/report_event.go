package models

import "time"

type ReportCreatedEvent struct {
	EventType  string    `json:"event_type"`
	ReportID   string    `json:"report_id"`
	PatientID  string    `json:"patient_id"`
	Status     string    `json:"status"`
	Code       string    `json:"code"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
