// Package testdb gives tests a migrated in-memory SQLite database.
package testdb

import (
	"fmt"
	"testing"

	"workflow-hub-be/internal/model"
	"workflow-hub-be/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New returns a fresh database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLiteDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	database.MustMigrate(db, model.All()...)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
