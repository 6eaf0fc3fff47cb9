package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Драйверы и соответствующие диалекты goose.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Connect открывает пул соединений и проверяет его пингом с таймаутом.
func Connect(driver, dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	switch driver {
	case DriverSQLite:
		// один писатель на файл
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

// Migrate applies the embedded migrations.
func Migrate(db *sql.DB, driver string, logger *slog.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{logger: logger})

	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("unsupported migration dialect %q: %w", driver, err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Open = Connect + Migrate.
func Open(driver, dsn string, timeout time.Duration, logger *slog.Logger) (*sql.DB, error) {
	conn, err := Connect(driver, dsn, timeout)
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn, driver, logger); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Info(fmt.Sprintf(format, v...), slog.String("component", "goose"))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	if l.logger != nil {
		l.logger.Error(fmt.Sprintf(format, v...), slog.String("component", "goose"))
	}
	os.Exit(1)
}
