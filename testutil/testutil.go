package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yusufkaramustafa/Timesheet-App/database"
	"github.com/yusufkaramustafa/Timesheet-App/models"
	"github.com/yusufkaramustafa/Timesheet-App/repository"
)

// OpenTestDB opens a private in-memory SQLite database with migrations
// applied. Closed automatically via t.Cleanup. The DSN is named after the
// test so every pooled connection shares one database while tests stay
// isolated from each other.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// CreateUser inserts a user with a bcrypt-hashed password.
func CreateUser(t *testing.T, db *gorm.DB, username, password, role string) models.User {
	t.Helper()
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Username: username, PasswordHash: string(hashedBytes), Role: role}
	if err := repository.NewUserRepository(db).Create(context.Background(), &user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// CreateTimesheet inserts a timesheet row directly, bypassing validation.
func CreateTimesheet(t *testing.T, db *gorm.DB, ownerID uint, date, project string, hours float64, description string) models.Timesheet {
	t.Helper()
	parsed, err := time.ParseInLocation(models.DateLayout, date, time.UTC)
	if err != nil {
		t.Fatalf("parse date %s: %v", date, err)
	}
	ts := models.Timesheet{
		UserID:      ownerID,
		Date:        parsed,
		Project:     project,
		Hours:       hours,
		Description: description,
	}
	if err := db.Create(&ts).Error; err != nil {
		t.Fatalf("create timesheet: %v", err)
	}
	return ts
}

// SignToken returns a signed HS256 token with the claims the server issues.
func SignToken(t *testing.T, secret []byte, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
