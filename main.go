package main

import (
	"context"
	"log"
	"os"
	"time"

	"nomadcity/internal/api"
	"nomadcity/internal/config"
	"nomadcity/internal/redis"
	"nomadcity/internal/service/ai"
	"nomadcity/internal/service/nomad"
	"nomadcity/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("NOMADCITY_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dbType := os.Getenv("NOMADCITY_DB")
	if dbType == "" {
		dbType = "sqlite3"
	}
	log.Printf("dbType: %s\n", dbType)
	db, err := storage.Open(dbType, cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Create necessary tables: profiles, stats, badges, memberships,
	// applications, activities
	if err := storage.Migrate(db, dbType); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Redis only serves the dashboard cache; the service runs without it.
	rdb, err := redis.NewRedisClient(cfg)
	if err != nil {
		log.Printf("redis unavailable, dashboard cache disabled: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	aiService, err := ai.NewService(context.Background(), cfg)
	if err != nil {
		log.Fatalf("init ai service: %v", err)
	}
	log.Printf("chat provider: %s", aiService.Provider())

	cacheTTL := time.Duration(cfg.BasicConfig.CacheTTL) * time.Minute
	nomadService := nomad.NewService(db, rdb, cacheTTL)

	handlers := api.NewHandler(aiService, nomadService)

	router := gin.Default()
	handlers.RegisterRoutes(router)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8090"
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
