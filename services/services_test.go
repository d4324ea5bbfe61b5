package services

import (
	"testing"

	"github.com/racsaibot-coder/rich-aroma-os/config"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single connection
// keeps every goroutine on the same sqlite instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createCustomer(t *testing.T, db *gorm.DB, c models.Customer) *models.Customer {
	t.Helper()
	if c.Tier == "" {
		c.Tier = models.TierBronze
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create customer %s: %v", c.ID, err)
	}
	return &c
}

func reloadCustomer(t *testing.T, db *gorm.DB, id string) *models.Customer {
	t.Helper()
	var c models.Customer
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		t.Fatalf("reload customer %s: %v", id, err)
	}
	return &c
}

func reloadOrder(t *testing.T, db *gorm.DB, id string) *models.Order {
	t.Helper()
	var o models.Order
	if err := db.First(&o, "id = ?", id).Error; err != nil {
		t.Fatalf("reload order %s: %v", id, err)
	}
	return &o
}
