package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MariaDB driver
	"go.uber.org/zap"

	"github.com/opencivicmap/civicsync/config"
)

// Store owns the connection pool for the canonical, fallback, and audit
// tables. It is constructed once in main and passed to everything that
// reads or writes; there is no package-level handle.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// New opens the connection pool and verifies it with a ping.
func New(cfg config.DatabaseConfig, log *zap.SugaredLogger) (*Store, error) {
	// DSN: username:password@protocol(address)/dbname?param=value
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Infof("Database: connected to %s/%s", cfg.Host, cfg.DBName)
	return &Store{db: db, log: log}, nil
}

// NewWithDB wraps an existing handle. Used by tests to substitute a mock.
func NewWithDB(db *sql.DB, log *zap.SugaredLogger) *Store {
	return &Store{db: db, log: log}
}

// Ping verifies the pool is still usable; the health endpoint calls this.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// Close shuts the pool down. Called on application shutdown.
func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
		s.log.Info("Database: connection closed")
	}
}
