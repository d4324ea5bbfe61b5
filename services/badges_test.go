package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"
)

func hasBadge(db *gorm.DB, customerID string, badgeID models.BadgeKind) bool {
	var count int64
	db.Model(&models.CustomerBadge{}).
		Where("customer_id = ? AND badge_id = ?", customerID, string(badgeID)).
		Count(&count)
	return count > 0
}

func TestCustomerNumericSuffix(t *testing.T) {
	tests := []struct {
		id   string
		want int
		ok   bool
	}{
		{"C001", 1, true},
		{"C057", 57, true},
		{"C1500", 1500, true},
		{"guest", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := customerNumericSuffix(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("customerNumericSuffix(%q) = %d, %v; want %d, %v", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFounderBadge(t *testing.T) {
	db := newTestDB(t)
	if err := SeedDefaultBadges(db); err != nil {
		t.Fatalf("seed badges: %v", err)
	}
	createCustomer(t, db, models.Customer{ID: "C057", Name: "Early", Phone: "50411111111"})
	createCustomer(t, db, models.Customer{ID: "C500", Name: "Late", Phone: "50422222222"})

	for _, id := range []string{"C057", "C500"} {
		order, err := CreateOrder(db, CreateOrderInput{
			Items:         []models.OrderLine{{ItemID: "espresso", Quantity: 1}},
			Total:         30,
			PaymentMethod: models.PayCash,
			CustomerID:    strPtr(id),
		})
		if err != nil {
			t.Fatalf("CreateOrder for %s: %v", id, err)
		}
		if _, err := CompleteOrder(db, order.ID); err != nil {
			t.Fatalf("CompleteOrder for %s: %v", id, err)
		}
	}

	if !hasBadge(db, "C057", models.BadgeFounder) {
		t.Error("C057 should hold the founder badge")
	}
	if hasBadge(db, "C500", models.BadgeFounder) {
		t.Error("C500 must not hold the founder badge")
	}
}

func TestBigSpenderAwardedExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	if err := SeedDefaultBadges(db); err != nil {
		t.Fatalf("seed badges: %v", err)
	}
	// High id keeps the founder badge out of the picture.
	createCustomer(t, db, models.Customer{ID: "C900", Name: "Whale", Phone: "50433333333"})

	// The 2000 threshold is crossed on the second completion; the badge
	// check on the third completion must not duplicate the award.
	for _, total := range []float64{1500, 600, 100} {
		order, err := CreateOrder(db, CreateOrderInput{
			Items:         []models.OrderLine{{ItemID: "catering", Quantity: 1}},
			Total:         total,
			PaymentMethod: models.PayCash,
			CustomerID:    strPtr("C900"),
		})
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		if _, err := CompleteOrder(db, order.ID); err != nil {
			t.Fatalf("CompleteOrder: %v", err)
		}
	}

	var count int64
	db.Model(&models.CustomerBadge{}).
		Where("customer_id = ? AND badge_id = ?", "C900", string(models.BadgeBigSpender)).
		Count(&count)
	if count != 1 {
		t.Errorf("big_spender awards = %d, want exactly 1", count)
	}
}

func TestEarlyBirdBadge(t *testing.T) {
	db := newTestDB(t)
	if err := SeedDefaultBadges(db); err != nil {
		t.Fatalf("seed badges: %v", err)
	}
	createCustomer(t, db, models.Customer{ID: "C901", Name: "Dawn", Phone: "50444444444"})

	// Five historic orders at 07:00 cafe time (13:00 UTC at fixed UTC-6).
	morning := time.Date(2025, 8, 20, 13, 0, 0, 0, time.UTC)
	seedHistoricOrders(t, db, "C901", morning, 5)

	order, err := CreateOrder(db, CreateOrderInput{
		Items:         []models.OrderLine{{ItemID: "espresso", Quantity: 1}},
		Total:         30,
		PaymentMethod: models.PayCash,
		CustomerID:    strPtr("C901"),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := CompleteOrder(db, order.ID); err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}

	if !hasBadge(db, "C901", models.BadgeEarlyBird) {
		t.Error("C901 should hold the early_bird badge after five pre-8am orders")
	}
}

func TestNoEarlyBirdForAfternoonRegulars(t *testing.T) {
	db := newTestDB(t)
	if err := SeedDefaultBadges(db); err != nil {
		t.Fatalf("seed badges: %v", err)
	}
	createCustomer(t, db, models.Customer{ID: "C902", Name: "Dusk", Phone: "50455555555"})

	// 15:00 cafe time (21:00 UTC) is never an early order.
	afternoon := time.Date(2025, 8, 20, 21, 0, 0, 0, time.UTC)
	seedHistoricOrders(t, db, "C902", afternoon, 5)

	order, err := CreateOrder(db, CreateOrderInput{
		Items:         []models.OrderLine{{ItemID: "espresso", Quantity: 1}},
		Total:         30,
		PaymentMethod: models.PayCash,
		CustomerID:    strPtr("C902"),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := CompleteOrder(db, order.ID); err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}

	if hasBadge(db, "C902", models.BadgeEarlyBird) {
		t.Error("C902 must not hold the early_bird badge")
	}
}

func TestVerifyFounder(t *testing.T) {
	db := newTestDB(t)
	if err := SeedDefaultBadges(db); err != nil {
		t.Fatalf("seed badges: %v", err)
	}
	createCustomer(t, db, models.Customer{ID: "C050", Name: "OG", Phone: "50460606060", Points: 200})

	upgraded, err := VerifyFounder(db, "C050")
	if err != nil {
		t.Fatalf("VerifyFounder: %v", err)
	}
	if !upgraded.IsVIP {
		t.Error("founder not upgraded to VIP")
	}
	if upgraded.Tier != models.TierGold || upgraded.Points != 1500 {
		t.Errorf("tier/points = %s/%d, want gold/1500", upgraded.Tier, upgraded.Points)
	}
	if !hasBadge(db, "C050", models.BadgeFounder) {
		t.Error("founder badge not awarded")
	}

	// Idempotent: a second verification must not duplicate the badge.
	if _, err := VerifyFounder(db, "C050"); err != nil {
		t.Fatalf("repeat VerifyFounder: %v", err)
	}
	var count int64
	db.Model(&models.CustomerBadge{}).
		Where("customer_id = ? AND badge_id = ?", "C050", "founder").Count(&count)
	if count != 1 {
		t.Errorf("founder awards = %d, want 1", count)
	}
}

func TestVerifyFounderOutsideRange(t *testing.T) {
	db := newTestDB(t)
	createCustomer(t, db, models.Customer{ID: "C500", Name: "Late", Phone: "50470707070"})

	if _, err := VerifyFounder(db, "C500"); !apperr.IsKind(err, apperr.Conflict) {
		t.Errorf("got %v, want Conflict", err)
	}
	if _, err := VerifyFounder(db, "C404"); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("unknown customer: got %v, want NotFound", err)
	}

	c := reloadCustomer(t, db, "C500")
	if c.IsVIP || c.Tier != models.TierBronze {
		t.Errorf("rejected verification changed the customer: vip=%v tier=%s", c.IsVIP, c.Tier)
	}
}

func seedHistoricOrders(t *testing.T, db *gorm.DB, customerID string, at time.Time, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		order := models.Order{
			ID:            fmt.Sprintf("ORD-%04d", 900+i),
			OrderNumber:   900 + i,
			Total:         30,
			Status:        models.StatusCompleted,
			PaymentMethod: models.PayCash,
			CustomerID:    &customerID,
			CreatedAt:     at.AddDate(0, 0, -i),
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}
}
