package repository

import (
	"testing"
	"time"

	"momentcanvas/internal/database"
	"momentcanvas/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test a fresh in-memory schema, including the partial
// unique index the migration creates.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func createTestUser(t *testing.T, db *gorm.DB, nickname string) *models.User {
	t.Helper()
	user := &models.User{LoginID: nickname, Nickname: nickname, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", nickname, err)
	}
	return user
}

func createTestDiary(t *testing.T, db *gorm.DB, authorID uint, targetDate time.Time, vis models.Visibility, deleted models.YesOrNo) *models.Diary {
	t.Helper()
	diary := &models.Diary{
		AuthorID:   authorID,
		Title:      "entry",
		Content:    "body",
		Mood:       3,
		Visibility: vis,
		TargetDate: targetDate,
		IsDeleted:  deleted,
	}
	if err := db.Create(diary).Error; err != nil {
		t.Fatalf("create diary: %v", err)
	}
	return diary
}
