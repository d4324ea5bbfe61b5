package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tier is the loyalty rank, a pure function of the current point total
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

type Customer struct {
	ID                        string                      `json:"id" gorm:"primaryKey"` // C001, C002, ...
	Name                      string                      `json:"name" gorm:"not null"`
	Phone                     string                      `json:"phone" gorm:"uniqueIndex"`
	PIN                       string                      `json:"-"`
	CashBalance               float64                     `json:"cash_balance" gorm:"default:0"`
	MembershipCredit          float64                     `json:"membership_credit" gorm:"default:0"`
	MembershipCreditExpiresAt *time.Time                  `json:"membership_credit_expires_at"`
	IsVIP                     bool                        `json:"is_vip" gorm:"default:false"`
	Points                    int                         `json:"points" gorm:"default:0"`
	Tier                      Tier                        `json:"tier" gorm:"not null;default:'bronze'"`
	TotalSpent                float64                     `json:"total_spent" gorm:"default:0"`
	TotalLoaded               float64                     `json:"total_loaded" gorm:"default:0"`
	Visits                    int                         `json:"visits" gorm:"default:0"`
	Tags                      datatypes.JSONSlice[string] `json:"tags,omitempty"`
	Notes                     string                      `json:"notes,omitempty"`
	CreatedAt                 time.Time                   `json:"created_at"`
	UpdatedAt                 time.Time                   `json:"updated_at"`
}

// BalanceHistoryEntryType distinguishes loads from payments
type BalanceHistoryEntryType string

const (
	BalanceLoad    BalanceHistoryEntryType = "load"
	BalancePayment BalanceHistoryEntryType = "payment"
)

// BalanceHistoryEntry is the append-only wallet audit log. Amount is signed:
// positive for loads, negative for payments.
type BalanceHistoryEntry struct {
	ID         uint                    `json:"id" gorm:"primaryKey"`
	CustomerID string                  `json:"customer_id" gorm:"index;not null"`
	Type       BalanceHistoryEntryType `json:"type" gorm:"not null"`
	Amount     float64                 `json:"amount"`
	Bonus      float64                 `json:"bonus"`
	OrderID    string                  `json:"order_id,omitempty"`
	Notes      string                  `json:"notes,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}
