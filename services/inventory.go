package services

import (
	"fmt"

	"github.com/racsaibot-coder/rich-aroma-os/models"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DeductInventoryForOrder resolves every line item and modifier into
// ingredient decrements via the recipe tables. Stock is clamped at zero and
// individual failures never abort the order: they are collected and logged
// as an integrity warning.
func DeductInventoryForOrder(db *gorm.DB, order *models.Order) {
	var errs *multierror.Error

	for _, line := range order.Items {
		var recipes []models.Recipe
		if err := db.Where("menu_item_id = ?", line.ItemID).Find(&recipes).Error; err != nil {
			errs = multierror.Append(errs, fmt.Errorf("recipe lookup for %s: %w", line.ItemID, err))
			continue
		}
		for _, r := range recipes {
			qty := r.QuantityPerUnit * float64(line.Quantity)
			if err := decrementStock(db, r.InventoryItemID, qty); err != nil {
				errs = multierror.Append(errs, err)
			}
		}

		for _, mod := range line.Modifiers {
			if mod.ID == "" {
				continue
			}
			var modRecipes []models.ModifierRecipe
			if err := db.Where("modifier_id = ?", mod.ID).Find(&modRecipes).Error; err != nil {
				errs = multierror.Append(errs, fmt.Errorf("modifier recipe lookup for %s: %w", mod.ID, err))
				continue
			}
			for _, r := range modRecipes {
				qty := r.QuantityPerUnit * float64(line.Quantity)
				if err := decrementStock(db, r.InventoryItemID, qty); err != nil {
					errs = multierror.Append(errs, err)
				}
			}
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		logrus.WithField("order_id", order.ID).WithError(err).
			Warn("inventory deduction incomplete, stock may drift")
	}
}

func decrementStock(db *gorm.DB, inventoryItemID string, qty float64) error {
	err := db.Model(&models.InventoryItem{}).
		Where("id = ?", inventoryItemID).
		Update("current_stock", gorm.Expr("MAX(current_stock - ?, 0)", qty)).Error
	if err != nil {
		return fmt.Errorf("decrement %s by %.3f: %w", inventoryItemID, qty, err)
	}
	return nil
}
