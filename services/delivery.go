package services

import (
	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"
	"github.com/racsaibot-coder/rich-aroma-os/statemachine"

	"gorm.io/gorm"
)

// ClaimDelivery atomically assigns an unclaimed delivery order to a driver.
// The conditional update on "driver_id IS NULL" is a compare-and-swap:
// under concurrent claims exactly one driver wins, every other claimant
// gets a Conflict.
func ClaimDelivery(db *gorm.DB, orderID, driverID string) (*models.Order, error) {
	if driverID == "" {
		return nil, apperr.New(apperr.Validation, "driver id is required")
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND driver_id IS NULL", orderID).
		Updates(map[string]any{
			"driver_id":       driverID,
			"delivery_status": models.DeliveryAssigned,
		})
	if res.Error != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "claim failed", res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the order does not exist or another driver got there first.
		if _, err := getOrder(db, orderID); err != nil {
			return nil, err
		}
		return nil, apperr.New(apperr.Conflict, "order already claimed")
	}

	return getOrder(db, orderID)
}

// AssignDelivery is the staff override: unconditional, and may reassign an
// already-claimed order.
func AssignDelivery(db *gorm.DB, orderID, driverID string) (*models.Order, error) {
	if driverID == "" {
		return nil, apperr.New(apperr.Validation, "driver id is required")
	}
	if _, err := getOrder(db, orderID); err != nil {
		return nil, err
	}

	err := db.Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"driver_id":       driverID,
		"delivery_status": models.DeliveryAssigned,
	}).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "assignment failed", err)
	}
	return getOrder(db, orderID)
}

// SetDeliveryStatus advances the courier leg. Reaching "delivered" forces
// the order to completed, re-entering loyalty and badge evaluation through
// the completion idempotency guard.
func SetDeliveryStatus(db *gorm.DB, orderID string, status models.DeliveryStatus) (*models.Order, error) {
	order, err := getOrder(db, orderID)
	if err != nil {
		return nil, err
	}

	if err := statemachine.CanTransition(order.DeliveryStatus, status); err != nil {
		return nil, err
	}

	err = db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("delivery_status", status).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "delivery status update failed", err)
	}

	if status == models.DeliveryDone {
		return CompleteOrder(db, orderID)
	}
	return getOrder(db, orderID)
}
