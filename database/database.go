package database

import (
	"fmt"
	"os"

	"digicoop-backend/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=digicoop port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Producer{},
		&models.Product{},
	)
}

// CreateDefaultAdmin seeds an administrator account on first boot. The
// account only classifies as admin because its email sits on an admin
// domain; no role column is written.
func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@digicoops.com"
	}
	if adminPassword == "" {
		logrus.Warn("ADMIN_PASSWORD not set, skipping default admin creation")
		return nil
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:     adminEmail,
		Password:  string(hashedPassword),
		FirstName: "Admin",
		Profile:   models.ProfilePersonal,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logrus.WithField("email", adminEmail).Info("default admin created")
	return nil
}
