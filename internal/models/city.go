package models

type MembershipType string

const (
	MembershipOpen        MembershipType = "Open"
	MembershipApplication MembershipType = "Application"
	MembershipInvitation  MembershipType = "Invitation"
)

type CityStatus string

const (
	CityActive    CityStatus = "Active"
	CityPlanning  CityStatus = "Planning"
	CityTemporary CityStatus = "Temporary"
)

// City describes one network state or crypto city in the static catalog.
type City struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	Location           string         `json:"location"`
	Governance         string         `json:"governance"`
	Population         int            `json:"population"`
	Blockchain         string         `json:"blockchain"`
	Website            string         `json:"website"`
	GitHub             string         `json:"github,omitempty"`
	API                string         `json:"api,omitempty"`
	GovernanceContract string         `json:"governance_contract,omitempty"`
	Tags               []string       `json:"tags"`
	MembershipType     MembershipType `json:"membership_type"`
	AnnualCost         int            `json:"annual_cost"`
	Founded            string         `json:"founded"`
	Status             CityStatus     `json:"status"`
}

// GovernanceSnapshot is a point-in-time view of a city's governance activity.
type GovernanceSnapshot struct {
	ActiveProposals   int     `json:"active_proposals"`
	TotalProposals    int     `json:"total_proposals"`
	VotingPower       int     `json:"voting_power"`
	ParticipationRate float64 `json:"participation_rate"`
	LastVote          string  `json:"last_vote"`
}

// CityEvent is an upcoming community event for a catalog city.
type CityEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
}
