package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/models"
)

// Init opens the MySQL connection and runs migrations. TranslateError is on
// so duplicate-key violations surface as gorm.ErrDuplicatedKey and reach the
// error chokepoint in a dialect-independent shape.
func Init(databaseURL string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema for every model. Shared with the test setup.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Session{},
		&models.Chapter{},
		&models.ChapterMember{},
		&models.Profile{},
		&models.State{},
		&models.City{},
		&models.Item{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedInitialData inserts the fixed role set, a small geographic reference
// set, and the bootstrap SUPER_ADMIN account when they are absent. Roles are
// reference data: the API never writes them after this.
func SeedInitialData(db *gorm.DB, adminEmail, adminPassword string) error {
	roles := []models.Role{
		{Name: models.RoleSuperAdmin, Description: "Super Administrator with full access"},
		{Name: models.RoleSubAdmin, Description: "Sub Administrator with limited access"},
		{Name: models.RoleLeader, Description: "Team Leader with basic access"},
		{Name: models.RoleMember, Description: "Chapter member"},
	}
	for _, role := range roles {
		var existing models.Role
		err := db.Where("name = ?", role.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
			}
		} else if err != nil {
			return err
		}
	}

	if err := seedGeoData(db); err != nil {
		return err
	}

	// Bootstrap admin so the first SUPER_ADMIN-gated call is possible.
	var admin models.User
	err := db.Where("email = ?", adminEmail).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hashed, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash seed admin password: %w", err)
		}
		var superAdmin models.Role
		if err := db.Where("name = ?", models.RoleSuperAdmin).First(&superAdmin).Error; err != nil {
			return err
		}
		admin = models.User{
			Email:    adminEmail,
			Password: hashed,
			Name:     "Super Admin",
			Roles:    []models.Role{superAdmin},
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create seed admin user: %w", err)
		}
	} else if err != nil {
		return err
	}

	return nil
}

// seedGeoData loads a starter state/city set. Deployments extend these
// tables out of band.
func seedGeoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.State{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	states := []struct {
		state  models.State
		cities []string
	}{
		{models.State{Name: "Karnataka", Code: "KA"}, []string{"Bengaluru", "Mysuru", "Mangaluru"}},
		{models.State{Name: "Maharashtra", Code: "MH"}, []string{"Mumbai", "Pune", "Nagpur"}},
		{models.State{Name: "Tamil Nadu", Code: "TN"}, []string{"Chennai", "Coimbatore", "Madurai"}},
		{models.State{Name: "Delhi", Code: "DL"}, []string{"New Delhi"}},
	}
	for _, entry := range states {
		state := entry.state
		if err := db.Create(&state).Error; err != nil {
			return fmt.Errorf("failed to seed state %s: %w", state.Name, err)
		}
		for _, name := range entry.cities {
			city := models.City{Name: name, StateID: state.ID}
			if err := db.Create(&city).Error; err != nil {
				return fmt.Errorf("failed to seed city %s: %w", name, err)
			}
		}
	}
	return nil
}
