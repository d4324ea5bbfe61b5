package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const liveDropKey = "live_drop"

// LiveDrop is the flash-sale state, kept in the durable settings store so a
// restart never resets the remaining stock.
type LiveDrop struct {
	Active  bool    `json:"active"`
	Product string  `json:"product"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
}

// LiveDropResult is returned on a successful flash-sale purchase.
type LiveDropResult struct {
	Code       string  `json:"code"`
	Paid       float64 `json:"paid"`
	NewBalance float64 `json:"new_balance"`
}

// LiveDropStatus reads the current drop. A missing key means no drop.
func LiveDropStatus(db *gorm.DB) (*LiveDrop, error) {
	var setting models.Setting
	err := db.First(&setting, "key = ?", liveDropKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &LiveDrop{}, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "live drop lookup failed", err)
	}
	var drop LiveDrop
	if err := json.Unmarshal(setting.Value, &drop); err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "live drop state corrupt", err)
	}
	return &drop, nil
}

// SetLiveDrop replaces the drop state (staff action).
func SetLiveDrop(db *gorm.DB, drop LiveDrop) error {
	raw, err := json.Marshal(drop)
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid live drop state", err)
	}
	setting := models.Setting{Key: liveDropKey, Value: raw}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return apperr.Wrap(apperr.IntegrityWarning, "failed to store live drop", err)
	}
	return nil
}

// PayLiveDrop sells one unit of the active drop to a wallet customer
// identified by phone and PIN. Payment is a full credit-first debit; the
// stock decrement that follows is read-update-write (accepted limitation).
func PayLiveDrop(db *gorm.DB, phone, pin string) (*LiveDropResult, error) {
	drop, err := LiveDropStatus(db)
	if err != nil {
		return nil, err
	}
	if !drop.Active || drop.Stock <= 0 {
		return nil, apperr.New(apperr.Conflict, "drop sold out or inactive")
	}

	customer, err := getCustomerByPhone(db, phone)
	if err != nil {
		return nil, err
	}
	if customer.PIN == "" || customer.PIN != pin {
		return nil, apperr.New(apperr.Validation, "invalid PIN")
	}

	payment, err := PayWithBalance(db, customer.ID, drop.Price, "")
	if err != nil {
		return nil, err
	}

	drop.Stock--
	if err := SetLiveDrop(db, *drop); err != nil {
		return nil, err
	}

	return &LiveDropResult{
		Code:       fmt.Sprintf("RA-%04d", 1000+rand.Intn(9000)),
		Paid:       payment.Paid,
		NewBalance: payment.NewBalance,
	}, nil
}

func getCustomerByPhone(db *gorm.DB, phone string) (*models.Customer, error) {
	clean := digitsOnly(phone)
	if clean == "" {
		return nil, apperr.New(apperr.Validation, "phone is required")
	}
	var customer models.Customer
	if err := db.First(&customer, "phone = ?", clean).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "customer not found")
		}
		return nil, apperr.Wrap(apperr.IntegrityWarning, "customer lookup failed", err)
	}
	return &customer, nil
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
