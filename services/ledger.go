package services

import (
	"errors"
	"math"

	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BalanceLoadResult is returned by LoadBalance.
type BalanceLoadResult struct {
	Loaded     float64 `json:"loaded"`
	Bonus      float64 `json:"bonus"`
	NewBalance float64 `json:"new_balance"`
}

// BalancePaymentResult is returned by PayWithBalance with the credit/cash
// split breakdown.
type BalancePaymentResult struct {
	Paid         float64 `json:"paid"`
	DeductCredit float64 `json:"credit"`
	DeductCash   float64 `json:"cash"`
	NewBalance   float64 `json:"new_balance"`
}

// LoadBalance adds funds to a customer's wallet. VIP members get a 10%
// bonus on top of the loaded amount.
func LoadBalance(db *gorm.DB, customerID string, amount float64) (*BalanceLoadResult, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.Validation, "amount must be positive")
	}

	customer, err := getCustomer(db, customerID)
	if err != nil {
		return nil, err
	}

	bonus := 0.0
	if customer.IsVIP {
		bonus = math.Round(amount * 0.10)
	}
	newCash := customer.CashBalance + amount + bonus

	err = db.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(map[string]any{
		"cash_balance": newCash,
		"total_loaded": customer.TotalLoaded + amount,
	}).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "failed to credit balance", err)
	}

	appendBalanceHistory(db, models.BalanceHistoryEntry{
		CustomerID: customer.ID,
		Type:       models.BalanceLoad,
		Amount:     amount,
		Bonus:      bonus,
	})

	return &BalanceLoadResult{
		Loaded:     amount,
		Bonus:      bonus,
		NewBalance: customer.MembershipCredit + newCash,
	}, nil
}

// PayWithBalance debits a customer's wallet, consuming membership credit
// before cash. The update is guarded on the balances read, so a concurrent
// debit on the same customer surfaces as a Conflict instead of silently
// overdrawing either bucket.
func PayWithBalance(db *gorm.DB, customerID string, amount float64, orderID string) (*BalancePaymentResult, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.Validation, "amount must be positive")
	}

	customer, err := getCustomer(db, customerID)
	if err != nil {
		return nil, err
	}

	credit, cash := customer.MembershipCredit, customer.CashBalance
	if credit+cash < amount {
		return nil, apperr.Newf(apperr.InsufficientBalance,
			"insufficient balance: have %.2f, need %.2f", credit+cash, amount)
	}

	deductCredit := math.Min(credit, amount)
	deductCash := amount - deductCredit

	res := db.Model(&models.Customer{}).
		Where("id = ? AND membership_credit = ? AND cash_balance = ?", customer.ID, credit, cash).
		Updates(map[string]any{
			"membership_credit": credit - deductCredit,
			"cash_balance":      cash - deductCash,
		})
	if res.Error != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "failed to debit balance", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.New(apperr.Conflict, "balance changed concurrently, retry")
	}

	appendBalanceHistory(db, models.BalanceHistoryEntry{
		CustomerID: customer.ID,
		Type:       models.BalancePayment,
		Amount:     -amount,
		OrderID:    orderID,
	})

	return &BalancePaymentResult{
		Paid:         amount,
		DeductCredit: deductCredit,
		DeductCash:   deductCash,
		NewBalance:   (credit - deductCredit) + (cash - deductCash),
	}, nil
}

// payPartialWithBalance drains everything the customer has, all credit
// then all cash, and returns the amount actually paid. Used by order
// settlement when the wallet cannot cover the full total.
func payPartialWithBalance(db *gorm.DB, customer *models.Customer, orderID string) (float64, error) {
	paid := customer.MembershipCredit + customer.CashBalance
	if paid <= 0 {
		return 0, nil
	}

	res := db.Model(&models.Customer{}).
		Where("id = ? AND membership_credit = ? AND cash_balance = ?",
			customer.ID, customer.MembershipCredit, customer.CashBalance).
		Updates(map[string]any{"membership_credit": 0.0, "cash_balance": 0.0})
	if res.Error != nil {
		return 0, apperr.Wrap(apperr.IntegrityWarning, "failed to drain balance", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, apperr.New(apperr.Conflict, "balance changed concurrently, retry")
	}

	appendBalanceHistory(db, models.BalanceHistoryEntry{
		CustomerID: customer.ID,
		Type:       models.BalancePayment,
		Amount:     -paid,
		OrderID:    orderID,
	})
	return paid, nil
}

func getCustomer(db *gorm.DB, customerID string) (*models.Customer, error) {
	var customer models.Customer
	if err := db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "customer %s not found", customerID)
		}
		return nil, apperr.Wrap(apperr.IntegrityWarning, "customer lookup failed", err)
	}
	return &customer, nil
}

// appendBalanceHistory is best-effort: the balance has already moved and
// there is no cross-operation rollback, so a failed log entry is reported
// but not propagated.
func appendBalanceHistory(db *gorm.DB, entry models.BalanceHistoryEntry) {
	if err := db.Create(&entry).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": entry.CustomerID,
			"type":        entry.Type,
			"amount":      entry.Amount,
		}).WithError(err).Warn("failed to append balance history")
	}
}
