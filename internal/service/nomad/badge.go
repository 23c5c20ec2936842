package nomad

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nomadcity/internal/models"
)

// ListBadges returns the profile's badges newest-first.
func (s *Service) ListBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, badge_name, badge_description, badge_icon, rarity, earned_at, tx_signature
		 FROM user_badges WHERE user_id = ? ORDER BY earned_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	badges := make([]models.UserBadge, 0)
	for rows.Next() {
		var b models.UserBadge
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Description, &b.Icon, &b.Rarity, &b.EarnedAt, &b.TxSignature); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// AwardBadge grants a badge, bumps the stats counters by the rarity's XP
// value, and records a journey activity. All writes share one transaction.
func (s *Service) AwardBadge(ctx context.Context, userID, name, description, icon string, rarity models.BadgeRarity) (*models.UserBadge, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if name == "" {
		return nil, errors.New("badge_name is required")
	}
	xp, ok := badgeXP[string(rarity)]
	if !ok {
		return nil, fmt.Errorf("invalid rarity: %s", rarity)
	}

	now := time.Now().UTC()
	badge := &models.UserBadge{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Icon:        icon,
		Rarity:      rarity,
		EarnedAt:    now,
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
		`INSERT INTO user_badges (id, user_id, badge_name, badge_description, badge_icon, rarity, earned_at, tx_signature)
		 VALUES (?, ?, ?, ?, ?, ?, ?, '')`,
		badge.ID, userID, name, description, icon, rarity, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert badge: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO governance_activities (id, user_id, city_name, activity_type, description, xp_gained, created_at)
		 VALUES (?, ?, '', ?, ?, ?, ?)`,
		uuid.NewString(), userID, models.ActivityBadge,
		fmt.Sprintf("Earned badge %q", name), xp, now,
	)
	if err != nil {
		return nil, fmt.Errorf("record badge activity: %w", err)
	}
	if err = s.applyStatsDelta(ctx, tx, userID, statsDelta{xp: xp, reputation: repBadge, badgesEarned: 1}); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit badge: %w", err)
	}
	s.cache.invalidateUser(ctx, userID)
	return badge, nil
}
