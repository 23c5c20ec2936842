package nomad

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"nomadcity/internal/config"
	"nomadcity/internal/models"
	"nomadcity/internal/redis"
)

func newRedisCache(t *testing.T) (*dashboardCache, func()) {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis-backed cache tests")
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split host port: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("atoi port: %v", err)
	}
	db := 0
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			db = parsed
		}
	}
	cfg := &config.Config{
		Redis: config.RedisConfig{Host: host, Port: port, DB: db},
	}
	client, err := redis.NewRedisClient(cfg)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	cache := newDashboardCache(client, time.Minute)
	return cache, func() { client.Close() }
}

func TestDashboardCacheStoreLoadAndInvalidate(t *testing.T) {
	cache, cleanup := newRedisCache(t)
	defer cleanup()
	ctx := context.Background()

	userID := "cache-user-1"
	stats := &models.UserStats{ID: "s1", UserID: userID, TotalXP: 150, Level: 1}
	memberships := []models.CityMembership{{ID: "m1", UserID: userID, CityName: "Cabin"}}

	cache.storeStats(ctx, userID, stats)
	cache.storeMemberships(ctx, userID, memberships)

	gotStats, ok := cache.loadStats(ctx, userID)
	if !ok || gotStats.TotalXP != 150 {
		t.Fatalf("stats not cached: %+v ok=%v", gotStats, ok)
	}
	gotMemberships, ok := cache.loadMemberships(ctx, userID)
	if !ok || len(gotMemberships) != 1 || gotMemberships[0].CityName != "Cabin" {
		t.Fatalf("memberships not cached: %+v ok=%v", gotMemberships, ok)
	}

	cache.invalidateUser(ctx, userID)
	if _, ok := cache.loadStats(ctx, userID); ok {
		t.Fatalf("stats survived invalidation")
	}
	if _, ok := cache.loadMemberships(ctx, userID); ok {
		t.Fatalf("memberships survived invalidation")
	}
}

func TestDashboardCachePubSubInvalidation(t *testing.T) {
	publisher, cleanupPub := newRedisCache(t)
	defer cleanupPub()
	subscriber, cleanupSub := newRedisCache(t)
	defer cleanupSub()

	ctx := context.Background()
	userID := "cache-user-2"

	subscriber.startListener()
	time.Sleep(200 * time.Millisecond)

	subscriber.storeStats(ctx, userID, &models.UserStats{ID: "s2", UserID: userID, TotalXP: 42})
	if _, ok := subscriber.loadStats(ctx, userID); !ok {
		t.Fatalf("stats not cached before invalidation")
	}

	publisher.invalidateUser(ctx, userID)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := subscriber.loadStats(ctx, userID); !ok {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("broadcast invalidation never applied")
}

func TestDashboardCacheNilReceiver(t *testing.T) {
	var cache *dashboardCache
	ctx := context.Background()

	cache.startListener()
	cache.storeStats(ctx, "u", &models.UserStats{})
	cache.storeMemberships(ctx, "u", nil)
	cache.invalidateUser(ctx, "u")
	if _, ok := cache.loadStats(ctx, "u"); ok {
		t.Fatalf("nil cache reported a hit")
	}
	if _, ok := cache.loadMemberships(ctx, "u"); ok {
		t.Fatalf("nil cache reported a hit")
	}
}
