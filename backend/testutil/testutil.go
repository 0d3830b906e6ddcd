// Package testutil builds throwaway databases and apps for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"studybuddy/backend/config"
	"studybuddy/backend/models"
	"studybuddy/backend/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:studybuddy_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serializes access.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, utils.Migrate(db))
	return db
}

// Config returns settings suitable for tests: no rate limit, no demo seed.
func Config() *config.Config {
	cfg := config.Default()
	cfg.DBDriver = "sqlite"
	cfg.AuthRateLimit = 0
	cfg.SeedDemo = false
	return cfg
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateCourse inserts a course with the given number of lessons.
func CreateCourse(t *testing.T, db *gorm.DB, instructorID uint, title string, price float64, lessons int) models.Course {
	t.Helper()
	course := models.Course{Title: title, InstructorID: instructorID, Price: price, Category: "Programming", Level: "beginner"}
	for i := 1; i <= lessons; i++ {
		course.Lessons = append(course.Lessons, models.Lesson{
			Title:     fmt.Sprintf("Lesson %d", i),
			VideoURL:  "#",
			SortOrder: i,
		})
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}
