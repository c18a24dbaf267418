package handlers

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AmanSingh2427/Whatapp/internal/database"
	"github.com/AmanSingh2427/Whatapp/internal/models"
	"github.com/AmanSingh2427/Whatapp/pkg/utils"
)

// SetupTestDB initializes an isolated in-memory SQLite DB for testing.
func SetupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupMessage{},
	); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	database.DB = db
}

func seedUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := models.User{
		ID:        utils.GenerateID(),
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return &user
}
