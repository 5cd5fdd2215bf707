package models

import "time"

// ViewSession is what survives of a browser's patient view between requests.
type ViewSession struct {
	SessionID string    `json:"session_id"`
	PatientID string    `json:"patient_id,omitempty"`
	ActiveTab string    `json:"active_tab"`
	UpdatedAt time.Time `json:"updated_at"`
}
