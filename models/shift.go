package models

import "time"

// ShiftStatus: open → closed (terminal)
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "open"
	ShiftClosed ShiftStatus = "closed"
)

// CashShift is a bounded custody period for the cash drawer. At most one
// shift is open system-wide; the partial unique index on Status enforces
// that at the database, not just in the open-shift pre-check.
type CashShift struct {
	ID                    string      `json:"id" gorm:"primaryKey"`
	EmployeeID            string      `json:"employee_id" gorm:"not null"`
	OpeningAmount         float64     `json:"opening_amount"`
	OpenedAt              time.Time   `json:"opened_at"`
	ClosedAt              *time.Time  `json:"closed_at"`
	ClosingAmountDeclared float64     `json:"closing_amount_declared"`
	ExpectedAmount        float64     `json:"expected_amount"`
	Discrepancy           float64     `json:"discrepancy"`
	Notes                 string      `json:"notes"`
	Status                ShiftStatus `json:"status" gorm:"not null;default:'open';uniqueIndex:idx_single_open_shift,where:status = 'open'"`
}

// CashTransaction is a drawer adjustment within a shift. Amount is signed:
// positive = cash in, negative = payout or drop.
type CashTransaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ShiftID     string    `json:"shift_id" gorm:"index;not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Reason      string    `json:"reason"`
	PerformedBy string    `json:"performed_by"`
	CreatedAt   time.Time `json:"created_at"`
}
