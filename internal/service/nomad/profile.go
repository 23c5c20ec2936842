package nomad

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"nomadcity/internal/models"
)

// GetOrCreateProfile returns the profile for a wallet address, creating it
// together with a zeroed stats row on first sight. The second return reports
// whether a new profile was created.
func (s *Service) GetOrCreateProfile(ctx context.Context, walletAddress string) (*models.UserProfile, bool, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, false, errors.New("wallet_address is required")
	}

	profile, err := s.GetProfile(ctx, walletAddress)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	now := time.Now().UTC()
	profile = &models.UserProfile{
		ID:            uuid.NewString(),
		WalletAddress: walletAddress,
		Interests:     []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_profiles (id, wallet_address, username, bio, location, interests, created_at, updated_at)
		 VALUES (?, ?, '', '', '', '[]', ?, ?)`,
		profile.ID, walletAddress, now, now,
	)
	if err != nil {
		return nil, false, fmt.Errorf("create profile: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_stats (id, user_id, total_xp, level, cities_joined, badges_earned, reputation_score, updated_at)
		 VALUES (?, ?, 0, 1, 0, 0, 0, ?)`,
		uuid.NewString(), profile.ID, now,
	)
	if err != nil {
		return nil, false, fmt.Errorf("seed stats: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit profile: %w", err)
	}
	return profile, true, nil
}

// GetProfile fetches the profile for a wallet address. Returns sql.ErrNoRows
// when the wallet has never been seen.
func (s *Service) GetProfile(ctx context.Context, walletAddress string) (*models.UserProfile, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, errors.New("wallet_address is required")
	}
	var (
		profile      models.UserProfile
		interestsRaw string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, wallet_address, username, bio, location, interests, created_at, updated_at
		 FROM user_profiles WHERE wallet_address = ?`, walletAddress,
	).Scan(&profile.ID, &profile.WalletAddress, &profile.Username, &profile.Bio,
		&profile.Location, &interestsRaw, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if err := json.Unmarshal([]byte(interestsRaw), &profile.Interests); err != nil {
		profile.Interests = []string{}
	}
	if profile.Interests == nil {
		profile.Interests = []string{}
	}
	return &profile, nil
}

// UpdateProfile replaces the editable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, walletAddress, username, bio, location string, interests []string) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if interests == nil {
		interests = []string{}
	}
	interestsRaw, err := json.Marshal(interests)
	if err != nil {
		return nil, fmt.Errorf("encode interests: %w", err)
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE user_profiles SET username = ?, bio = ?, location = ?, interests = ?, updated_at = ? WHERE id = ?`,
		username, bio, location, string(interestsRaw), now, profile.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	profile.Username = username
	profile.Bio = bio
	profile.Location = location
	profile.Interests = interests
	profile.UpdatedAt = now
	return profile, nil
}
