package service

import (
	"testing"

	"backend/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. A single connection keeps
// the :memory: store alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserRole{},
		&model.RefreshToken{},
		&model.TaxRecord{},
		&model.Complaint{},
		&model.AuditLog{},
	))

	return db
}

// seedUser inserts an account with a complete (eligible) profile.
func seedUser(t *testing.T, db *gorm.DB, email, aadhar string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		Password:     "$2a$10$abcdefghijklmnopqrstuv",
		FullName:     "Ramesh Kumar",
		Phone:        "9876543210",
		AadharNumber: aadhar,
		Address:      "Ward 12, Muzaffarpur",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
