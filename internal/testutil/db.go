// Package testutil provides a throwaway database carrying the production
// schema for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"playlist-rater/internal/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated SQLite database that lives in t.TempDir. Foreign
// keys are enforced so deletes cascade the way they do on Postgres.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	config := db.Config()
	config.Logger = logger.Default.LogMode(logger.Silent)
	conn, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.ApplyPool(conn, db.PoolOptions{MaxOpenConns: 1}); err != nil {
		t.Fatalf("configure pool: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
