package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Config holds the PostgreSQL connection parameters.
type Config struct {
	Host         string `envconfig:"HOST" default:"localhost"`
	Port         string `envconfig:"PORT" default:"5432"`
	Username     string `envconfig:"USERNAME" default:"pos"`
	Password     string `envconfig:"PASSWORD" default:"pos"`
	Database     string `envconfig:"DATABASE" default:"pos"`
	Schema       string `envconfig:"SCHEMA"`
	ResetOnStart bool   `envconfig:"RESET_ON_START" default:"true"`
}

func (c Config) DSN() string {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
	if c.Schema != "" {
		dsn += "&search_path=" + c.Schema
	}
	return dsn
}

// Service owns the PostgreSQL pool behind the ledger stores.
type Service interface {
	Health() map[string]string
	DB() *sqlx.DB
	Close() error
}

type service struct {
	db   *sqlx.DB
	name string
}

// Open connects to PostgreSQL through the pgx stdlib driver and verifies the
// connection with a ping.
func Open(ctx context.Context, cfg Config) (Service, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping postgres at %s:%s", cfg.Host, cfg.Port)
	}

	return &service{db: db, name: cfg.Database}, nil
}

func (s *service) DB() *sqlx.DB {
	return s.db
}

// Health pings the pool and reports its connection counters. The map is
// returned as-is in the /api/health response.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		log.WithError(err).Error("db down")
		return map[string]string{
			"status": "down",
			"error":  err.Error(),
		}
	}

	dbStats := s.db.Stats()
	return map[string]string{
		"status":           "up",
		"open_connections": strconv.Itoa(dbStats.OpenConnections),
		"in_use":           strconv.Itoa(dbStats.InUse),
		"idle":             strconv.Itoa(dbStats.Idle),
		"wait_count":       strconv.FormatInt(dbStats.WaitCount, 10),
		"wait_duration":    dbStats.WaitDuration.String(),
	}
}

// Close closes the database connection.
func (s *service) Close() error {
	log.Infof("Disconnected from database: %s", s.name)
	return s.db.Close()
}

// Migrate applies the embedded schema. It uses its own connection, which is
// closed before returning.
func Migrate(cfg Config) error {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return errors.Wrap(err, "open postgres for migration")
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		_ = db.Close()
		return errors.Wrap(err, "migration driver")
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		_ = db.Close()
		return errors.Wrap(err, "migration source")
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = db.Close()
		return errors.Wrap(err, "init migrations")
	}
	defer func() {
		_, _ = m.Close()
		_ = db.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}

// Reset empties the ledger tables so that a restarted process begins with the
// same state as the in-memory backend. With several processes sharing one
// database, each one wipes the others' records on start; such deployments
// must set RESET_ON_START=false.
func Reset(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, "TRUNCATE TABLE purchases, customers, products RESTART IDENTITY")
	return errors.Wrap(err, "reset ledger tables")
}
