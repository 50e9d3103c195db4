// Package db はGORMによるデータベース接続を提供します。PostgreSQLとSQLiteに対応します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"umkm_backend/internal/shared/env"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// ConnectTimeout は起動時にPostgreSQLへの接続を待つ最大時間です。
	ConnectTimeout = 60 * time.Second
	retryInterval  = time.Second
)

// ErrNotConfigured は DB_DRIVER が未設定の場合に返ります。
var ErrNotConfigured = errors.New("database is not configured")

// Config はデータベース接続設定です。
type Config struct {
	Driver        string
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	InstanceName  string // Cloud SQL のインスタンス接続名。設定時はUnixソケットで接続
	SQLitePath    string
	RunMigrations bool
}

// Opener はDSNからDB接続を開く関数です。
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数から設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		Driver:        env.String("DB_DRIVER", ""),
		User:          env.String("DB_USER", ""),
		Password:      env.String("DB_PASSWORD", ""),
		Name:          env.String("DB_NAME", ""),
		Host:          env.String("DB_HOST", "localhost"),
		Port:          env.String("DB_PORT", "5432"),
		SSLMode:       env.String("DB_SSLMODE", "disable"),
		InstanceName:  env.String("INSTANCE_CONNECTION_NAME", ""),
		SQLitePath:    env.String("SQLITE_PATH", "umkm.db"),
		RunMigrations: env.Bool("RUN_MIGRATIONS", false),
	}
}

// BuildDSN はPostgreSQL用のDSNを生成します。InstanceName が設定されている場合はそちらを優先します。
func BuildDSN(cfg Config) string {
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, cfg.User, cfg.Password, cfg.Name, sslmode)
	if cfg.InstanceName == "" && port != "" {
		dsn += " port=" + port
	}
	return dsn
}

// ConnectWithRetry は timeout まで一定間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func openSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// OpenDB は設定に従って接続を開き、RunMigrations が有効なら models をマイグレーションします。
// Driver が空の場合は ErrNotConfigured を返します。
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "":
		return nil, ErrNotConfigured
	case DriverPostgres:
		db, err = ConnectWithRetry(BuildDSN(cfg), ConnectTimeout, openPostgres)
	case DriverSQLite:
		db, err = openSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("database migrated", "driver", cfg.Driver, "models", len(models))
	}
	return db, nil
}
