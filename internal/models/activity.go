package models

import "time"

type ActivityType string

const (
	ActivityCityJoined ActivityType = "city_joined"
	ActivityBadge      ActivityType = "badge_earned"
	ActivityGovernance ActivityType = "governance_activity"
	ActivityLevelUp    ActivityType = "level_up"
)

// GovernanceActivity records one gamification event for the journey feed.
type GovernanceActivity struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	CityName    string       `json:"city_name,omitempty"`
	Type        ActivityType `json:"activity_type"`
	Description string       `json:"description"`
	XPGained    int64        `json:"xp_gained"`
	CreatedAt   time.Time    `json:"created_at"`
}

// JourneyEvent is one entry of the merged, time-ordered journey feed.
type JourneyEvent struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	City        string       `json:"city,omitempty"`
	XPGained    int64        `json:"xp_gained,omitempty"`
	Date        time.Time    `json:"date"`
}
