package models

import "time"

// UserProfile is the wallet-keyed identity record. The wallet address is
// supplied by the caller; the service performs no signature verification.
type UserProfile struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	Username      string    `json:"username,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Location      string    `json:"location,omitempty"`
	Interests     []string  `json:"interests"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserStats aggregates gamification counters for one profile.
type UserStats struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	TotalXP         int64     `json:"total_xp"`
	Level           int       `json:"level"`
	CitiesJoined    int       `json:"cities_joined"`
	BadgesEarned    int       `json:"badges_earned"`
	ReputationScore int64     `json:"reputation_score"`
	UpdatedAt       time.Time `json:"updated_at"`
}
