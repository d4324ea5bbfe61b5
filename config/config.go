package config

import (
	"os"

	"github.com/racsaibot-coder/rich-aroma-os/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs staff tokens, read from env with a dev fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "rich_aroma_staff_secret_2025"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads .env if present. Missing file is fine in production.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}
}

// InitDB opens the database and migrates all models. The storage variant is
// picked exactly once here: DB_PATH=":memory:" runs fully in memory (all
// state lost on restart), anything else is a durable sqlite file. It is
// never switched per call.
func InitDB() {
	dsn := getEnv("DB_PATH", "rich_aroma.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	DB = db
	logrus.WithField("dsn", dsn).Info("database connected and migrated")
}

// Migrate applies the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.BalanceHistoryEntry{},
		&models.Order{},
		&models.InventoryItem{},
		&models.Recipe{},
		&models.ModifierRecipe{},
		&models.Badge{},
		&models.CustomerBadge{},
		&models.CashShift{},
		&models.CashTransaction{},
		&models.Employee{},
		&models.Setting{},
		&models.Receipt{},
		&models.DiscountCode{},
	)
}
