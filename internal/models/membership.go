package models

import "time"

type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipPending  MembershipStatus = "pending"
	MembershipInactive MembershipStatus = "inactive"
)

// CityMembership links a profile to a community it has joined.
type CityMembership struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	CityName           string           `json:"city_name"`
	Status             MembershipStatus `json:"status"`
	Role               string           `json:"role"`
	ProgressPercentage int              `json:"progress_percentage"`
	JoinedAt           time.Time        `json:"joined_at"`
}
