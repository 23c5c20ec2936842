package nomad

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nomadcity/internal/catalog"
	"nomadcity/internal/models"
)

// ErrDuplicateApplication is returned when the profile already has a pending
// application for the same city.
var ErrDuplicateApplication = errors.New("application already pending for this city")

// ErrUnknownCity is returned when the city is not in the catalog.
var ErrUnknownCity = errors.New("unknown city")

// SubmitApplication records a membership application for a catalog city,
// awards application XP, and logs a journey activity.
func (s *Service) SubmitApplication(ctx context.Context, userID, cityName string, data json.RawMessage) (*models.CityApplication, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	city, ok := catalog.LookupByName(cityName)
	if !ok {
		return nil, ErrUnknownCity
	}

	var pending int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM city_applications WHERE user_id = ? AND city_name = ? AND status = ?`,
		userID, city.Name, models.ApplicationPending,
	).Scan(&pending)
	if err != nil {
		return nil, fmt.Errorf("check pending applications: %w", err)
	}
	if pending > 0 {
		return nil, ErrDuplicateApplication
	}

	now := time.Now().UTC()
	app := &models.CityApplication{
		ID:              uuid.NewString(),
		UserID:          userID,
		CityName:        city.Name,
		Status:          models.ApplicationPending,
		ApplicationData: data,
		AppliedAt:       now,
		UpdatedAt:       now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO city_applications (id, user_id, city_name, status, application_data, applied_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		app.ID, userID, city.Name, app.Status, nullableJSON(data), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO governance_activities (id, user_id, city_name, activity_type, description, xp_gained, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, city.Name, models.ActivityGovernance,
		fmt.Sprintf("Applied to %s", city.Name), int64(xpApplication), now,
	)
	if err != nil {
		return nil, fmt.Errorf("record application activity: %w", err)
	}
	if err = s.applyStatsDelta(ctx, tx, userID, statsDelta{xp: xpApplication, reputation: repApplication}); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit application: %w", err)
	}
	s.cache.invalidateUser(ctx, userID)
	return app, nil
}

// ListApplications returns the profile's applications newest-first.
func (s *Service) ListApplications(ctx context.Context, userID string) ([]models.CityApplication, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, city_name, status, application_data, applied_at, updated_at
		 FROM city_applications WHERE user_id = ? ORDER BY applied_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]models.CityApplication, 0)
	for rows.Next() {
		var (
			app models.CityApplication
			raw sql.NullString
		)
		if err := rows.Scan(&app.ID, &app.UserID, &app.CityName, &app.Status, &raw, &app.AppliedAt, &app.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		if raw.Valid && raw.String != "" {
			app.ApplicationData = json.RawMessage(raw.String)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ApproveApplication flips a pending application to approved, creates the
// matching membership, and credits the city-joined XP. Returns sql.ErrNoRows
// when no pending application matches.
func (s *Service) ApproveApplication(ctx context.Context, applicationID string) (*models.CityMembership, error) {
	if applicationID == "" {
		return nil, errors.New("application id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var (
		userID   string
		cityName string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT user_id, city_name FROM city_applications WHERE id = ? AND status = ?`,
		applicationID, models.ApplicationPending,
	).Scan(&userID, &cityName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("load application: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE city_applications SET status = ?, updated_at = ? WHERE id = ?`,
		models.ApplicationApproved, now, applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("approve application: %w", err)
	}

	membership := &models.CityMembership{
		ID:                 uuid.NewString(),
		UserID:             userID,
		CityName:           cityName,
		Status:             models.MembershipActive,
		Role:               defaultMemberRole,
		ProgressPercentage: 0,
		JoinedAt:           now,
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO city_memberships (id, user_id, city_name, status, role, progress_percentage, joined_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		membership.ID, userID, cityName, membership.Status, membership.Role, 0, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert membership: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO governance_activities (id, user_id, city_name, activity_type, description, xp_gained, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, cityName, models.ActivityCityJoined,
		fmt.Sprintf("Joined %s", cityName), int64(xpCityJoined), now,
	)
	if err != nil {
		return nil, fmt.Errorf("record join activity: %w", err)
	}
	if err = s.applyStatsDelta(ctx, tx, userID, statsDelta{xp: xpCityJoined, reputation: repCityJoined, citiesJoined: 1}); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approval: %w", err)
	}
	s.cache.invalidateUser(ctx, userID)
	return membership, nil
}

func nullableJSON(data json.RawMessage) any {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}
