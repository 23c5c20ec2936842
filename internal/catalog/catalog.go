// Package catalog holds the curated set of network states and crypto cities.
// The data is static configuration compiled into the binary; it is never
// fetched or revalidated against an external source at request time.
package catalog

import (
	"sort"
	"strings"

	"nomadcity/internal/models"
)

var cities = []models.City{
	{
		ID:             "prospera",
		Name:           "Próspera",
		Description:    "A charter city in Honduras with blockchain-based governance and property rights.",
		Location:       "Roatán, Honduras",
		Governance:     "Charter City",
		Population:     1200,
		Blockchain:     "Ethereum",
		Website:        "https://prospera.hn",
		Tags:           []string{"Legal Innovation", "Property Rights", "Business-Friendly", "Special Economic Zone"},
		MembershipType: models.MembershipApplication,
		AnnualCost:     15000,
		Founded:        "2020",
		Status:         models.CityActive,
	},
	{
		ID:                 "citydao",
		Name:               "CityDAO",
		Description:        "A decentralized city building community on the Wyoming plains.",
		Location:           "Wyoming, USA",
		Governance:         "DAO",
		Population:         5000,
		Blockchain:         "Ethereum",
		Website:            "https://citydao.io",
		GitHub:             "https://github.com/citydaoproject",
		API:                "https://api.citydao.io",
		GovernanceContract: "0x...",
		Tags:               []string{"Land Ownership", "DAO Governance", "NFT Citizens", "Decentralized"},
		MembershipType:     models.MembershipOpen,
		AnnualCost:         0,
		Founded:            "2021",
		Status:             models.CityActive,
	},
	{
		ID:             "zuzalu",
		Name:           "Zuzalu",
		Description:    "A pop-up city focused on longevity research and crypto innovation.",
		Location:       "Montenegro",
		Governance:     "Community-led",
		Population:     800,
		Blockchain:     "Ethereum",
		Website:        "https://zuzalu.city",
		GitHub:         "https://github.com/zuzalu-city",
		Tags:           []string{"Research", "Longevity", "Temporary", "Innovation", "Crypto"},
		MembershipType: models.MembershipApplication,
		AnnualCost:     8000,
		Founded:        "2023",
		Status:         models.CityTemporary,
	},
	{
		ID:             "cabin",
		Name:           "Cabin",
		Description:    "A network city creating a modern village lifestyle for creators.",
		Location:       "Global Network",
		Governance:     "Network State",
		Population:     2500,
		Blockchain:     "Ethereum",
		Website:        "https://cabin.city",
		GitHub:         "https://github.com/CabinDAO",
		API:            "https://api.cabin.city",
		Tags:           []string{"Creators", "Remote Work", "Nature", "Coliving", "Network City"},
		MembershipType: models.MembershipApplication,
		AnnualCost:     2400,
		Founded:        "2021",
		Status:         models.CityActive,
	},
	{
		ID:             "kift",
		Name:           "Kift",
		Description:    "A network state for African innovators and builders.",
		Location:       "Africa (Distributed)",
		Governance:     "Network State",
		Population:     1500,
		Blockchain:     "Polygon",
		Website:        "https://kift.co",
		Tags:           []string{"African Innovation", "Builders", "Tech", "Distributed"},
		MembershipType: models.MembershipApplication,
		AnnualCost:     1000,
		Founded:        "2022",
		Status:         models.CityActive,
	},
}

var governance = map[string]models.GovernanceSnapshot{
	"prospera": {ActiveProposals: 2, TotalProposals: 31, ParticipationRate: 0.21, LastVote: "2024-02-02"},
	"citydao":  {ActiveProposals: 3, TotalProposals: 47, ParticipationRate: 0.34, LastVote: "2024-01-15"},
	"zuzalu":   {ActiveProposals: 1, TotalProposals: 12, ParticipationRate: 0.58, LastVote: "2024-02-20"},
	"cabin":    {ActiveProposals: 4, TotalProposals: 65, ParticipationRate: 0.29, LastVote: "2024-02-11"},
	"kift":     {ActiveProposals: 2, TotalProposals: 18, ParticipationRate: 0.41, LastVote: "2024-01-28"},
}

var events = map[string][]models.CityEvent{}

func init() {
	for _, c := range cities {
		events[c.ID] = []models.CityEvent{
			{
				ID:          c.ID + "-1",
				Title:       "Monthly Community Call",
				Date:        "2024-03-15",
				Type:        "virtual",
				Description: "Join our monthly community discussion",
			},
			{
				ID:          c.ID + "-2",
				Title:       "Governance Workshop",
				Date:        "2024-03-22",
				Type:        "in-person",
				Description: "Learn about participatory governance",
			},
		}
	}
}

// Cities returns every catalog entry ordered by id.
func Cities() []models.City {
	out := make([]models.City, len(cities))
	copy(out, cities)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup finds a city by its catalog id.
func Lookup(id string) (models.City, bool) {
	for _, c := range cities {
		if c.ID == id {
			return c, true
		}
	}
	return models.City{}, false
}

// LookupByName finds a city by display name, case-insensitively.
func LookupByName(name string) (models.City, bool) {
	for _, c := range cities {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return models.City{}, false
}

// Governance returns the governance snapshot for a city.
func Governance(id string) (models.GovernanceSnapshot, bool) {
	snap, ok := governance[id]
	return snap, ok
}

// Events returns upcoming events for a city.
func Events(id string) ([]models.CityEvent, bool) {
	evts, ok := events[id]
	if !ok {
		return nil, false
	}
	out := make([]models.CityEvent, len(evts))
	copy(out, evts)
	return out, true
}
