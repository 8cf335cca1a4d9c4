// Package gormstore implements the persistence ports on GORM with the SQLite
// driver. Records are package-private GORM models translated to and from
// domain entities at the repository boundary; GORM types never leak past this
// package.
//
// Soft deletion is explicit: records carry a plain *time.Time deleted_at
// column and every query states whether it includes deleted rows. Uniqueness
// of active titles, usernames, and emails is enforced by partial unique
// indexes over rows where deleted_at IS NULL, so soft-deleting a row frees
// its title for reuse.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/platform/config"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Open connects to the SQLite database named by the storage configuration and
// runs schema migrations. TranslateError is enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey regardless of driver.
func Open(cfg *config.StorageConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		// GORM's own logger stays silent; request logging happens in the
		// HTTP middleware.
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %q: %w", cfg.DSN, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing sql.DB: %w", err)
	}
	// SQLite allows a single writer; capping the pool avoids SQLITE_BUSY
	// under concurrent requests and keeps :memory: databases coherent.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&taskListRecord{}, &taskRecord{}, &userRecord{}); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("accessing sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Compile-time interface check.
var _ ports.HealthChecker = (*HealthChecker)(nil)

// HealthChecker reports database connectivity for the readiness probe.
type HealthChecker struct {
	db *gorm.DB
}

// NewHealthChecker creates a health checker over the given connection.
func NewHealthChecker(db *gorm.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name identifies the database in readiness check results.
func (h *HealthChecker) Name() string { return "db" }

// HealthCheck pings the database.
func (h *HealthChecker) HealthCheck(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	return nil
}

// notFound wraps domain.ErrNotFound with entity context, mirroring the
// "%s: %w" idiom used across the adapters.
func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
}

// conflict wraps domain.ErrConflict with the colliding value for context.
func conflict(what, value string) error {
	return fmt.Errorf("%s %q: %w", what, value, domain.ErrConflict)
}

// isDuplicate reports whether err is a translated unique-constraint violation.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
