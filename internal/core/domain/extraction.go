package domain

import "time"

// Extraction records a wheel unpacked into an installation directory.
type Extraction struct {
	Wheel     string    `json:"wheel"`
	InputHash string    `json:"input_hash,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
