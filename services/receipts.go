package services

import (
	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"gorm.io/gorm"
)

// SubmitReceipt records a payment receipt reference, insert-once. The
// pre-check catches the common case; the unique index on ref_number is the
// backstop for a concurrent duplicate.
func SubmitReceipt(db *gorm.DB, ticketCode, refNumber string) (*models.Receipt, error) {
	if refNumber == "" {
		return nil, apperr.New(apperr.Validation, "reference number is required")
	}

	var existing int64
	err := db.Model(&models.Receipt{}).Where("ref_number = ?", refNumber).Count(&existing).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "receipt lookup failed", err)
	}
	if existing > 0 {
		return nil, apperr.New(apperr.Conflict, "reference number already used")
	}

	receipt := models.Receipt{TicketCode: ticketCode, RefNumber: refNumber}
	if err := db.Create(&receipt).Error; err != nil {
		return nil, apperr.Wrap(apperr.Conflict, "reference number already used", err)
	}
	return &receipt, nil
}
