package models

import "time"

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// UserBadge is an earned achievement. TxSignature is set when the badge was
// mirrored on chain by an external process; the service treats it as opaque.
type UserBadge struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Name        string      `json:"badge_name"`
	Description string      `json:"badge_description"`
	Icon        string      `json:"badge_icon"`
	Rarity      BadgeRarity `json:"rarity"`
	EarnedAt    time.Time   `json:"earned_at"`
	TxSignature string      `json:"tx_signature,omitempty"`
}
