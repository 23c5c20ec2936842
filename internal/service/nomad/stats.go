package nomad

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nomadcity/internal/models"
)

// GetStats returns the gamification counters for a profile, preferring the
// dashboard cache when one is configured.
func (s *Service) GetStats(ctx context.Context, userID string) (*models.UserStats, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if stats, ok := s.cache.loadStats(ctx, userID); ok {
		return stats, nil
	}
	stats, err := s.readStats(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	s.cache.storeStats(ctx, userID, stats)
	return stats, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Service) readStats(ctx context.Context, q rowQuerier, userID string) (*models.UserStats, error) {
	var stats models.UserStats
	err := q.QueryRowContext(ctx,
		`SELECT id, user_id, total_xp, level, cities_joined, badges_earned, reputation_score, updated_at
		 FROM user_stats WHERE user_id = ?`, userID,
	).Scan(&stats.ID, &stats.UserID, &stats.TotalXP, &stats.Level, &stats.CitiesJoined,
		&stats.BadgesEarned, &stats.ReputationScore, &stats.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &stats, nil
}

// statsDelta describes a single adjustment to the counters. XP changes may
// push the profile over a level boundary, which is recorded as a journey
// activity inside the same transaction.
type statsDelta struct {
	xp           int64
	reputation   int64
	citiesJoined int
	badgesEarned int
}

func (s *Service) applyStatsDelta(ctx context.Context, tx *sql.Tx, userID string, delta statsDelta) error {
	stats, err := s.readStats(ctx, tx, userID)
	if err != nil {
		return err
	}

	newXP := stats.TotalXP + delta.xp
	newLevel := levelForXP(newXP)
	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE user_stats
		 SET total_xp = ?, level = ?, cities_joined = cities_joined + ?,
		     badges_earned = badges_earned + ?, reputation_score = reputation_score + ?, updated_at = ?
		 WHERE user_id = ?`,
		newXP, newLevel, delta.citiesJoined, delta.badgesEarned, delta.reputation, now, userID,
	)
	if err != nil {
		return fmt.Errorf("update stats: %w", err)
	}

	if newLevel > stats.Level {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO governance_activities (id, user_id, city_name, activity_type, description, xp_gained, created_at)
			 VALUES (?, ?, '', ?, ?, 0, ?)`,
			uuid.NewString(), userID, models.ActivityLevelUp,
			fmt.Sprintf("Reached level %d", newLevel), now,
		)
		if err != nil {
			return fmt.Errorf("record level up: %w", err)
		}
	}
	return nil
}
