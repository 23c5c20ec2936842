// Package nomad implements the wallet-keyed profile, gamification, and
// membership-application subsystems backing the non-chat pages.
package nomad

import (
	"database/sql"
	"time"

	"nomadcity/internal/redis"
)

// XP awards per event. Levels derive from total XP: one level per 1000 XP.
const (
	xpPerLevel        = 1000
	xpApplication     = 100
	xpCityJoined      = 250
	repApplication    = 5
	repCityJoined     = 25
	repBadge          = 10
	DefaultCacheTTL   = 10 * time.Minute
	defaultMemberRole = "member"
)

var badgeXP = map[string]int64{
	"common":    50,
	"rare":      150,
	"epic":      400,
	"legendary": 1000,
}

// Service handles profile lifecycle, gamification counters, and city
// applications. The cache client may be nil; reads then go straight to the
// database.
type Service struct {
	db    *sql.DB
	cache *dashboardCache
}

// NewService builds a nomad service. ttl bounds the dashboard cache entries.
func NewService(db *sql.DB, cacheClient *redis.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	s := &Service{db: db}
	if cacheClient != nil {
		s.cache = newDashboardCache(cacheClient, ttl)
		s.cache.startListener()
	}
	return s
}

func levelForXP(totalXP int64) int {
	if totalXP < 0 {
		return 1
	}
	return int(totalXP/xpPerLevel) + 1
}
