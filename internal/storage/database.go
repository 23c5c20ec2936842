package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"nomadcity/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the configured database for the given driver type.
func Open(dbType string, cfg *config.Config) (*sql.DB, error) {
	dbCfg, ok := cfg.Databases[dbType]
	if !ok {
		return nil, fmt.Errorf("database config for %s not found", dbType)
	}

	var (
		db  *sql.DB
		err error
	)

	switch strings.ToLower(dbType) {
	case "sqlite", "sqlite3":
		if dbCfg.DSN == "" {
			return nil, fmt.Errorf("sqlite dsn must be provided")
		}
		db, err = sql.Open("sqlite3", dbCfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			dbCfg.Username,
			dbCfg.Password,
			dbCfg.Host,
			dbCfg.Port,
			dbCfg.DBName,
			dbCfg.Params,
		)
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", dbType)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate ensures the required tables are present.
func Migrate(db *sql.DB, driver string) error {
	var stmts []string
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS user_profiles (
				id TEXT PRIMARY KEY,
				wallet_address TEXT NOT NULL UNIQUE,
				username TEXT NOT NULL DEFAULT '',
				bio TEXT NOT NULL DEFAULT '',
				location TEXT NOT NULL DEFAULT '',
				interests TEXT NOT NULL DEFAULT '[]',
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS user_stats (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL UNIQUE,
				total_xp INTEGER NOT NULL DEFAULT 0,
				level INTEGER NOT NULL DEFAULT 1,
				cities_joined INTEGER NOT NULL DEFAULT 0,
				badges_earned INTEGER NOT NULL DEFAULT 0,
				reputation_score INTEGER NOT NULL DEFAULT 0,
				updated_at DATETIME NOT NULL,
				FOREIGN KEY(user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			)`,
			`CREATE TABLE IF NOT EXISTS user_badges (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				badge_name TEXT NOT NULL,
				badge_description TEXT NOT NULL DEFAULT '',
				badge_icon TEXT NOT NULL DEFAULT '',
				rarity TEXT NOT NULL DEFAULT 'common',
				earned_at DATETIME NOT NULL,
				tx_signature TEXT NOT NULL DEFAULT '',
				FOREIGN KEY(user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_user_badges_user ON user_badges(user_id, earned_at DESC)`,
			`CREATE TABLE IF NOT EXISTS city_memberships (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				city_name TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				role TEXT NOT NULL DEFAULT 'member',
				progress_percentage INTEGER NOT NULL DEFAULT 0,
				joined_at DATETIME NOT NULL,
				FOREIGN KEY(user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_city_memberships_user ON city_memberships(user_id, joined_at DESC)`,
			`CREATE TABLE IF NOT EXISTS city_applications (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				city_name TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				application_data TEXT,
				applied_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL,
				FOREIGN KEY(user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_city_applications_user ON city_applications(user_id, applied_at DESC)`,
			`CREATE TABLE IF NOT EXISTS governance_activities (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				city_name TEXT NOT NULL DEFAULT '',
				activity_type TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				xp_gained INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME NOT NULL,
				FOREIGN KEY(user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_governance_activities_user ON governance_activities(user_id, created_at DESC)`,
		}
	case "mysql":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS user_profiles (
				id VARCHAR(36) NOT NULL,
				wallet_address VARCHAR(255) NOT NULL UNIQUE,
				username VARCHAR(255) NOT NULL DEFAULT '',
				bio TEXT,
				location VARCHAR(255) NOT NULL DEFAULT '',
				interests TEXT,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL,
				PRIMARY KEY (id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS user_stats (
				id VARCHAR(36) NOT NULL,
				user_id VARCHAR(36) NOT NULL UNIQUE,
				total_xp BIGINT NOT NULL DEFAULT 0,
				level INT NOT NULL DEFAULT 1,
				cities_joined INT NOT NULL DEFAULT 0,
				badges_earned INT NOT NULL DEFAULT 0,
				reputation_score BIGINT NOT NULL DEFAULT 0,
				updated_at DATETIME NOT NULL,
				PRIMARY KEY (id),
				CONSTRAINT fk_user_stats_user FOREIGN KEY (user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS user_badges (
				id VARCHAR(36) NOT NULL,
				user_id VARCHAR(36) NOT NULL,
				badge_name VARCHAR(255) NOT NULL,
				badge_description TEXT,
				badge_icon VARCHAR(255) NOT NULL DEFAULT '',
				rarity VARCHAR(50) NOT NULL DEFAULT 'common',
				earned_at DATETIME NOT NULL,
				tx_signature VARCHAR(255) NOT NULL DEFAULT '',
				PRIMARY KEY (id),
				INDEX idx_user_badges_user (user_id, earned_at),
				CONSTRAINT fk_user_badges_user FOREIGN KEY (user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS city_memberships (
				id VARCHAR(36) NOT NULL,
				user_id VARCHAR(36) NOT NULL,
				city_name VARCHAR(255) NOT NULL,
				status VARCHAR(50) NOT NULL DEFAULT 'pending',
				role VARCHAR(100) NOT NULL DEFAULT 'member',
				progress_percentage INT NOT NULL DEFAULT 0,
				joined_at DATETIME NOT NULL,
				PRIMARY KEY (id),
				INDEX idx_city_memberships_user (user_id, joined_at),
				CONSTRAINT fk_city_memberships_user FOREIGN KEY (user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS city_applications (
				id VARCHAR(36) NOT NULL,
				user_id VARCHAR(36) NOT NULL,
				city_name VARCHAR(255) NOT NULL,
				status VARCHAR(50) NOT NULL DEFAULT 'pending',
				application_data TEXT,
				applied_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL,
				PRIMARY KEY (id),
				INDEX idx_city_applications_user (user_id, applied_at),
				CONSTRAINT fk_city_applications_user FOREIGN KEY (user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS governance_activities (
				id VARCHAR(36) NOT NULL,
				user_id VARCHAR(36) NOT NULL,
				city_name VARCHAR(255) NOT NULL DEFAULT '',
				activity_type VARCHAR(50) NOT NULL,
				description TEXT,
				xp_gained BIGINT NOT NULL DEFAULT 0,
				created_at DATETIME NOT NULL,
				PRIMARY KEY (id),
				INDEX idx_governance_activities_user (user_id, created_at),
				CONSTRAINT fk_governance_activities_user FOREIGN KEY (user_id) REFERENCES user_profiles(id) ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		}
	default:
		return fmt.Errorf("unsupported driver for migration: %s", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate (%s): %w", driver, err)
		}
	}
	return nil
}
