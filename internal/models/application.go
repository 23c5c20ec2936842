package models

import (
	"encoding/json"
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// CityApplication is a membership application submitted for one of the
// catalog cities. ApplicationData carries the free-form answers verbatim.
type CityApplication struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	CityName        string            `json:"city_name"`
	Status          ApplicationStatus `json:"status"`
	ApplicationData json.RawMessage   `json:"application_data,omitempty"`
	AppliedAt       time.Time         `json:"applied_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
