package nomad

import (
	"context"
	"errors"
	"fmt"

	"nomadcity/internal/models"
)

// ListMemberships returns the profile's city memberships newest-first,
// preferring the dashboard cache when configured.
func (s *Service) ListMemberships(ctx context.Context, userID string) ([]models.CityMembership, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if memberships, ok := s.cache.loadMemberships(ctx, userID); ok {
		return memberships, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, city_name, status, role, progress_percentage, joined_at
		 FROM city_memberships WHERE user_id = ? ORDER BY joined_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	memberships := make([]models.CityMembership, 0)
	for rows.Next() {
		var m models.CityMembership
		if err := rows.Scan(&m.ID, &m.UserID, &m.CityName, &m.Status, &m.Role, &m.ProgressPercentage, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.cache.storeMemberships(ctx, userID, memberships)
	return memberships, nil
}
