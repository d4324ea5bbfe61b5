package services

import (
	"strconv"
	"time"
	"unicode"

	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Defaults applied when a badge's criteria omit a threshold.
const (
	defaultFounderMaxID     = 100
	defaultEarlyBirdCount   = 5
	defaultBigSpenderAmount = 2000.0
)

// Opening hours are anchored to cafe local time, fixed UTC-6, no DST.
const cafeUTCOffsetHours = -6

// evaluateBadges runs after loyalty accrual on the same completion
// transition. It awards every badge the customer newly qualifies for.
// Awards are best-effort: failures are logged and never fail the order;
// the (customer_id, badge_id) unique index is the final backstop against
// a duplicate slipping past the pre-check.
func evaluateBadges(db *gorm.DB, customer *models.Customer, order *models.Order) {
	var badges []models.Badge
	if err := db.Find(&badges).Error; err != nil {
		logrus.WithField("customer_id", customer.ID).WithError(err).
			Warn("badge catalog lookup failed")
		return
	}

	var held []models.CustomerBadge
	if err := db.Where("customer_id = ?", customer.ID).Find(&held).Error; err != nil {
		logrus.WithField("customer_id", customer.ID).WithError(err).
			Warn("held badges lookup failed")
		return
	}
	heldSet := make(map[string]bool, len(held))
	for _, h := range held {
		heldSet[h.BadgeID] = true
	}

	for _, badge := range badges {
		if heldSet[badge.ID] {
			continue
		}
		if !qualifies(db, customer, badge.Criteria.Data()) {
			continue
		}
		award := models.CustomerBadge{
			CustomerID: customer.ID,
			BadgeID:    badge.ID,
			AwardedAt:  time.Now().UTC(),
		}
		if err := db.Create(&award).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"customer_id": customer.ID,
				"badge_id":    badge.ID,
			}).WithError(err).Warn("badge award failed")
			continue
		}
		logrus.WithFields(logrus.Fields{
			"customer_id": customer.ID,
			"badge_id":    badge.ID,
			"order_id":    order.ID,
		}).Info("badge awarded")
	}
}

func qualifies(db *gorm.DB, customer *models.Customer, crit models.BadgeCriteria) bool {
	switch crit.Kind {
	case models.BadgeFounder:
		maxID := crit.MaxID
		if maxID == 0 {
			maxID = defaultFounderMaxID
		}
		n, ok := customerNumericSuffix(customer.ID)
		return ok && n <= maxID

	case models.BadgeEarlyBird:
		count := crit.Count
		if count == 0 {
			count = defaultEarlyBirdCount
		}
		return earlyOrderCount(db, customer.ID) >= count

	case models.BadgeBigSpender:
		amount := crit.Amount
		if amount == 0 {
			amount = defaultBigSpenderAmount
		}
		return customer.TotalSpent >= amount
	}
	return false
}

// customerNumericSuffix extracts the trailing number of an id like "C057".
func customerNumericSuffix(id string) (int, bool) {
	start := len(id)
	for start > 0 && unicode.IsDigit(rune(id[start-1])) {
		start--
	}
	if start == len(id) {
		return 0, false
	}
	n, err := strconv.Atoi(id[start:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// earlyOrderCount counts before-8am orders among the customer's last 100.
func earlyOrderCount(db *gorm.DB, customerID string) int {
	var orders []models.Order
	err := db.Where("customer_id = ?", customerID).
		Order("created_at desc").Limit(100).Find(&orders).Error
	if err != nil {
		logrus.WithField("customer_id", customerID).WithError(err).
			Warn("early bird order lookup failed")
		return 0
	}
	count := 0
	for _, o := range orders {
		localHour := (o.CreatedAt.UTC().Hour() + cafeUTCOffsetHours + 24) % 24
		if localHour < 8 {
			count++
		}
	}
	return count
}

// VerifyFounder is the admin action for founding customers: it grants VIP,
// lifts the point total to the gold floor so the tier recompute on later
// completions keeps them gold, and awards the founder badge. Idempotent.
func VerifyFounder(db *gorm.DB, customerID string) (*models.Customer, error) {
	customer, err := getCustomer(db, customerID)
	if err != nil {
		return nil, err
	}

	n, ok := customerNumericSuffix(customer.ID)
	if !ok || n > defaultFounderMaxID {
		return nil, apperr.Newf(apperr.Conflict, "customer %s is not in the founding range", customerID)
	}

	newPoints := customer.Points
	if newPoints < 1500 {
		newPoints = 1500
	}
	newTier := TierForPoints(newPoints)

	err = db.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(map[string]any{
		"is_vip": true,
		"points": newPoints,
		"tier":   newTier,
	}).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "failed to upgrade founder", err)
	}

	var held int64
	db.Model(&models.CustomerBadge{}).
		Where("customer_id = ? AND badge_id = ?", customer.ID, "founder").Count(&held)
	if held == 0 {
		award := models.CustomerBadge{
			CustomerID: customer.ID,
			BadgeID:    "founder",
			AwardedAt:  time.Now().UTC(),
		}
		if err := db.Create(&award).Error; err != nil {
			logrus.WithField("customer_id", customer.ID).WithError(err).
				Warn("founder badge award failed")
		}
	}

	customer.IsVIP = true
	customer.Points = newPoints
	customer.Tier = newTier
	return customer, nil
}

// SeedDefaultBadges inserts the built-in badge catalog if missing.
func SeedDefaultBadges(db *gorm.DB) error {
	defaults := []models.Badge{
		{
			ID:   "founder",
			Name: "Founder",
			Criteria: datatypes.NewJSONType(models.BadgeCriteria{
				Kind:  models.BadgeFounder,
				MaxID: defaultFounderMaxID,
			}),
		},
		{
			ID:   "early_bird",
			Name: "Early Bird",
			Criteria: datatypes.NewJSONType(models.BadgeCriteria{
				Kind:  models.BadgeEarlyBird,
				Count: defaultEarlyBirdCount,
			}),
		},
		{
			ID:   "big_spender",
			Name: "Big Spender",
			Criteria: datatypes.NewJSONType(models.BadgeCriteria{
				Kind:   models.BadgeBigSpender,
				Amount: defaultBigSpenderAmount,
			}),
		},
	}
	for _, b := range defaults {
		var existing models.Badge
		if err := db.First(&existing, "id = ?", b.ID).Error; err == nil {
			continue
		}
		if err := db.Create(&b).Error; err != nil {
			return err
		}
	}
	return nil
}
