package nomad

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"nomadcity/internal/models"
	"nomadcity/internal/redis"
)

const cacheInvalidateChannel = "nomad:invalidate"

type invalidateMessage struct {
	UserID string `json:"user_id"`
}

// dashboardCache keeps per-profile dashboard reads (stats, memberships) in
// redis and broadcasts invalidations so every instance drops its entries when
// a gamification write lands. All methods are nil-receiver safe.
type dashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newDashboardCache(client *redis.Client, ttl time.Duration) *dashboardCache {
	return &dashboardCache{client: client, ttl: ttl}
}

func statsKey(userID string) string       { return fmt.Sprintf("nomad:stats:%s", userID) }
func membershipsKey(userID string) string { return fmt.Sprintf("nomad:memberships:%s", userID) }

// startListener drops local entries when another instance publishes an
// invalidation for a profile.
func (c *dashboardCache) startListener() {
	if c == nil || c.client == nil {
		return
	}
	raw := c.client.Raw()
	if raw == nil {
		return
	}
	go func() {
		ctx := context.Background()
		pubsub := raw.Subscribe(ctx, cacheInvalidateChannel)
		for msg := range pubsub.Channel() {
			var inv invalidateMessage
			if err := json.Unmarshal([]byte(msg.Payload), &inv); err != nil {
				log.Printf("cache invalidation decode failed: %v", err)
				continue
			}
			c.drop(ctx, inv.UserID)
		}
	}()
}

func (c *dashboardCache) storeStats(ctx context.Context, userID string, stats *models.UserStats) {
	if c == nil || c.client == nil || stats == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(userID), data, c.ttl); err != nil {
		log.Printf("cache stats failed: %v", err)
	}
}

func (c *dashboardCache) loadStats(ctx context.Context, userID string) (*models.UserStats, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, statsKey(userID))
	if err != nil {
		if err != redis.ErrCacheMiss {
			log.Printf("cache load stats failed: %v", err)
		}
		return nil, false
	}
	var stats models.UserStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		log.Printf("cache decode stats failed: %v", err)
		return nil, false
	}
	return &stats, true
}

func (c *dashboardCache) storeMemberships(ctx context.Context, userID string, memberships []models.CityMembership) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(memberships)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, membershipsKey(userID), data, c.ttl); err != nil {
		log.Printf("cache memberships failed: %v", err)
	}
}

func (c *dashboardCache) loadMemberships(ctx context.Context, userID string) ([]models.CityMembership, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, membershipsKey(userID))
	if err != nil {
		if err != redis.ErrCacheMiss {
			log.Printf("cache load memberships failed: %v", err)
		}
		return nil, false
	}
	var memberships []models.CityMembership
	if err := json.Unmarshal([]byte(raw), &memberships); err != nil {
		log.Printf("cache decode memberships failed: %v", err)
		return nil, false
	}
	return memberships, true
}

// invalidateUser drops cached entries locally and tells other instances to
// do the same.
func (c *dashboardCache) invalidateUser(ctx context.Context, userID string) {
	if c == nil || c.client == nil || userID == "" {
		return
	}
	c.drop(ctx, userID)
	raw := c.client.Raw()
	if raw == nil {
		return
	}
	payload, err := json.Marshal(invalidateMessage{UserID: userID})
	if err != nil {
		return
	}
	if err := raw.Publish(ctx, cacheInvalidateChannel, payload).Err(); err != nil {
		log.Printf("cache publish invalidation failed: %v", err)
	}
}

func (c *dashboardCache) drop(ctx context.Context, userID string) {
	if c == nil || c.client == nil || userID == "" {
		return
	}
	if err := c.client.Del(ctx, statsKey(userID), membershipsKey(userID)); err != nil && err != redis.ErrCacheMiss {
		log.Printf("cache invalidate failed: %v", err)
	}
}
