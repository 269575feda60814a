package config

import (
	"log"
	"os"

	"surprise-bag-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "surprise_bag_dev_secret"))

type Config struct {
	Port   string
	DBPath string

	// Super-admin provisioning. Both must be set for EnsureSuperAdmin to
	// create an account; there are no credentials baked into the code.
	SuperAdminUsername string
	SuperAdminPassword string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		DBPath:             getEnv("DB_PATH", "surprise_bag.db"),
		SuperAdminUsername: os.Getenv("SUPERADMIN_USERNAME"),
		SuperAdminPassword: os.Getenv("SUPERADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB(cfg *Config) {
	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Order{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// EnsureSuperAdmin provisions the super-admin account once at startup.
// Idempotent: it does nothing when a super admin already exists or when
// no credentials are configured.
func EnsureSuperAdmin(db *gorm.DB, cfg *Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.SuperAdminUsername == "" || cfg.SuperAdminPassword == "" {
		log.Println("No super admin exists and SUPERADMIN_USERNAME/SUPERADMIN_PASSWORD are unset; skipping provisioning")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:              cfg.SuperAdminUsername,
		PasswordHash:          string(hash),
		Role:                  models.RoleSuperAdmin,
		CanAddAdmin:           true,
		CanDeleteShopProducts: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Provisioned super admin %q", admin.Username)
	return nil
}
