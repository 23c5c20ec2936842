package nomad

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"nomadcity/internal/models"
)

// Journey merges badges, memberships, and governance activities into a
// single feed ordered newest-first, the shape the journey page renders.
func (s *Service) Journey(ctx context.Context, userID string) ([]models.JourneyEvent, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	events := make([]models.JourneyEvent, 0)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, city_name, activity_type, description, xp_gained, created_at
		 FROM governance_activities WHERE user_id = ? ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a models.GovernanceActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.CityName, &a.Type, &a.Description, &a.XPGained, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		events = append(events, models.JourneyEvent{
			ID:          a.ID,
			Type:        a.Type,
			Title:       activityTitle(a.Type),
			Description: a.Description,
			City:        a.CityName,
			XPGained:    a.XPGained,
			Date:        a.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	badges, err := s.ListBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, b := range badges {
		events = append(events, models.JourneyEvent{
			ID:          "badge-" + b.ID,
			Type:        models.ActivityBadge,
			Title:       b.Name,
			Description: b.Description,
			Date:        b.EarnedAt,
		})
	}

	memberships, err := s.ListMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, m := range memberships {
		events = append(events, models.JourneyEvent{
			ID:          "membership-" + m.ID,
			Type:        models.ActivityCityJoined,
			Title:       "Joined " + m.CityName,
			Description: fmt.Sprintf("Became a %s of %s", m.Role, m.CityName),
			City:        m.CityName,
			Date:        m.JoinedAt,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events, nil
}

func activityTitle(t models.ActivityType) string {
	switch t {
	case models.ActivityCityJoined:
		return "City Joined"
	case models.ActivityBadge:
		return "Badge Earned"
	case models.ActivityLevelUp:
		return "Level Up"
	default:
		return "Governance Activity"
	}
}
