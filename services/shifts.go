package services

import (
	"errors"
	"time"

	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShiftReport is the reconciliation summary returned when a shift closes.
type ShiftReport struct {
	Shift        models.CashShift `json:"shift"`
	Opening      float64          `json:"opening"`
	Sales        float64          `json:"sales"`
	Transactions float64          `json:"transactions"`
	Expected     float64          `json:"expected"`
	Declared     float64          `json:"declared"`
	Discrepancy  float64          `json:"discrepancy"`
}

// OpenShift starts a cash drawer custody period. Exactly one shift may be
// open system-wide: the count pre-check catches the common case, the
// partial unique index on status turns a racing second open into a
// Conflict instead of two open drawers.
func OpenShift(db *gorm.DB, employeeID string, openingAmount float64) (*models.CashShift, error) {
	if employeeID == "" {
		return nil, apperr.New(apperr.Validation, "employee id is required")
	}
	if openingAmount < 0 {
		return nil, apperr.New(apperr.Validation, "opening amount cannot be negative")
	}

	var open int64
	err := db.Model(&models.CashShift{}).Where("status = ?", models.ShiftOpen).Count(&open).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "open shift check failed", err)
	}
	if open > 0 {
		return nil, apperr.New(apperr.Conflict, "a shift is already open")
	}

	shift := models.CashShift{
		ID:            uuid.NewString(),
		EmployeeID:    employeeID,
		OpeningAmount: openingAmount,
		OpenedAt:      time.Now().UTC(),
		Status:        models.ShiftOpen,
	}
	if err := db.Create(&shift).Error; err != nil {
		return nil, apperr.Wrap(apperr.Conflict, "a shift is already open", err)
	}
	return &shift, nil
}

// AddCashTransaction appends a signed drawer adjustment to an open shift.
// No running total is cached; reconciliation sums the log at close.
func AddCashTransaction(db *gorm.DB, shiftID string, amount float64, reason, performedBy string) (*models.CashTransaction, error) {
	if amount == 0 {
		return nil, apperr.New(apperr.Validation, "amount cannot be zero")
	}

	shift, err := getShift(db, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status == models.ShiftClosed {
		return nil, apperr.New(apperr.Conflict, "shift already closed")
	}

	tx := models.CashTransaction{
		ShiftID:     shift.ID,
		Amount:      amount,
		Reason:      reason,
		PerformedBy: performedBy,
	}
	if err := db.Create(&tx).Error; err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "failed to record cash transaction", err)
	}
	return &tx, nil
}

// CloseShift reconciles the drawer: expected = opening + cash sales
// within the shift window + signed transactions; discrepancy =
// declared - expected. Every cash order created during the shift counts,
// whatever its status: the till took the money at the register.
func CloseShift(db *gorm.DB, shiftID string, declared float64, notes string) (*ShiftReport, error) {
	shift, err := getShift(db, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status == models.ShiftClosed {
		return nil, apperr.New(apperr.Conflict, "shift already closed")
	}

	now := time.Now().UTC()

	var cashSales float64
	err = db.Model(&models.Order{}).
		Where("payment_method = ? AND created_at BETWEEN ? AND ?",
			models.PayCash, shift.OpenedAt, now).
		Select("COALESCE(SUM(total), 0)").Scan(&cashSales).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "cash sales aggregation failed", err)
	}

	var txTotal float64
	err = db.Model(&models.CashTransaction{}).
		Where("shift_id = ?", shift.ID).
		Select("COALESCE(SUM(amount), 0)").Scan(&txTotal).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "transaction aggregation failed", err)
	}

	expected := shift.OpeningAmount + cashSales + txTotal
	discrepancy := declared - expected

	err = db.Model(&models.CashShift{}).Where("id = ?", shift.ID).Updates(map[string]any{
		"closed_at":               now,
		"closing_amount_declared": declared,
		"expected_amount":         expected,
		"discrepancy":             discrepancy,
		"notes":                   notes,
		"status":                  models.ShiftClosed,
	}).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "failed to close shift", err)
	}

	closed, err := getShift(db, shift.ID)
	if err != nil {
		return nil, err
	}
	return &ShiftReport{
		Shift:        *closed,
		Opening:      shift.OpeningAmount,
		Sales:        cashSales,
		Transactions: txTotal,
		Expected:     expected,
		Declared:     declared,
		Discrepancy:  discrepancy,
	}, nil
}

// CurrentShift returns the open shift, or NotFound when the drawer is idle.
func CurrentShift(db *gorm.DB) (*models.CashShift, error) {
	var shift models.CashShift
	err := db.Where("status = ?", models.ShiftOpen).First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "no open shift")
		}
		return nil, apperr.Wrap(apperr.IntegrityWarning, "shift lookup failed", err)
	}
	return &shift, nil
}

func getShift(db *gorm.DB, shiftID string) (*models.CashShift, error) {
	var shift models.CashShift
	if err := db.First(&shift, "id = ?", shiftID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "shift %s not found", shiftID)
		}
		return nil, apperr.Wrap(apperr.IntegrityWarning, "shift lookup failed", err)
	}
	return &shift, nil
}
