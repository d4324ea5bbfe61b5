package services

import (
	"math"

	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"gorm.io/gorm"
)

// TierForPoints is the pure tier function. No hysteresis: the tier is
// strictly determined by the current point total.
func TierForPoints(points int) models.Tier {
	switch {
	case points >= 1500:
		return models.TierGold
	case points >= 500:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}

// accrueLoyalty awards points for a completed order. Base points are the
// whole currency units of the total; wallet payment and VIP status each
// double the award (composing to 4x). Points, lifetime spend, visit count
// and the recomputed tier are persisted in a single update.
//
// Callers must only invoke this from the winning pending→completed
// transition; that transition is the double-award guard.
func accrueLoyalty(db *gorm.DB, customerID string, order *models.Order) (*models.Customer, error) {
	customer, err := getCustomer(db, customerID)
	if err != nil {
		return nil, err
	}

	pointsBase := int(math.Floor(order.Total))
	multiplier := 1
	if order.PaymentMethod == models.PayWallet {
		multiplier *= 2
	}
	if customer.IsVIP {
		multiplier *= 2
	}
	earned := pointsBase * multiplier

	newPoints := customer.Points + earned
	newSpent := customer.TotalSpent + order.Total
	newVisits := customer.Visits + 1
	newTier := TierForPoints(newPoints)

	err = db.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(map[string]any{
		"points":      newPoints,
		"total_spent": newSpent,
		"visits":      newVisits,
		"tier":        newTier,
	}).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "failed to persist loyalty accrual", err)
	}

	customer.Points = newPoints
	customer.TotalSpent = newSpent
	customer.Visits = newVisits
	customer.Tier = newTier
	return customer, nil
}
