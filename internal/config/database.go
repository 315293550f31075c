package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupDatabase opens a GORM connection for the configured driver ("sqlite"
// or "postgres"), applies connection pool settings, and picks the GORM log
// mode from the slog level.
func SetupDatabase(cfg *DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("database config is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	// Debug-level logger logs every statement; anything quieter logs only
	// slow queries and errors.
	logMode := gormlogger.Warn
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configurePool(db, &cfg.Pool); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, err
	}

	logger.Info("database connected",
		slog.String("driver", cfg.Driver),
		slog.Int("max_idle_conns", poolIdleConns(cfg.Pool.MaxIdleConns)),
		slog.Int("max_open_conns", poolOpenConns(cfg.Pool.MaxOpenConns)),
		slog.String("conn_max_lifetime", poolLifetime(cfg.Pool.ConnMaxLifetime)),
	)

	return db, nil
}

func openDialector(cfg *DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		// The parent directory must exist before sqlite can create the file.
		dir := filepath.Dir(cfg.SQLite.Path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory %q: %w", dir, err)
			}
		}
		return sqlite.Open(cfg.SQLite.Path), nil
	case "postgres":
		return postgres.Open(postgresDSN(&cfg.Postgres)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// configurePool applies pool settings to the underlying sql.DB, substituting
// defaults for zero or empty values.
func configurePool(db *gorm.DB, pool *PoolConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(poolIdleConns(pool.MaxIdleConns))
	sqlDB.SetMaxOpenConns(poolOpenConns(pool.MaxOpenConns))

	raw := poolLifetime(pool.ConnMaxLifetime)
	lifetime, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid pool.conn_max_lifetime %q: %w", pool.ConnMaxLifetime, err)
	}
	if lifetime <= 0 {
		return fmt.Errorf("invalid pool.conn_max_lifetime %q: must be positive", pool.ConnMaxLifetime)
	}
	sqlDB.SetConnMaxLifetime(lifetime)

	return nil
}

func poolIdleConns(v int) int {
	if v <= 0 {
		return 10
	}
	return v
}

func poolOpenConns(v int) int {
	if v <= 0 {
		return 100
	}
	return v
}

func poolLifetime(v string) string {
	if strings.TrimSpace(v) == "" {
		return "1h"
	}
	return v
}

func postgresDSN(cfg *PostgresConfig) string {
	if cfg == nil {
		return ""
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   cfg.DBName,
	}

	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}

	query := url.Values{}
	if cfg.SSLMode != "" {
		query.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = query.Encode()

	return u.String()
}
