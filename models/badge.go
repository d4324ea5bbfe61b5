package models

import (
	"time"

	"gorm.io/datatypes"
)

// BadgeKind tags the criteria variant a badge is evaluated with
type BadgeKind string

const (
	BadgeFounder    BadgeKind = "founder"
	BadgeEarlyBird  BadgeKind = "early_bird"
	BadgeBigSpender BadgeKind = "big_spender"
)

// BadgeCriteria is a tagged variant: exactly one of the threshold fields is
// meaningful depending on Kind.
type BadgeCriteria struct {
	Kind   BadgeKind `json:"kind"`
	MaxID  int       `json:"max_id,omitempty"`  // founder: numeric suffix of customer id
	Count  int       `json:"count,omitempty"`   // early_bird: orders before 8am
	Amount float64   `json:"amount,omitempty"`  // big_spender: lifetime spend
}

type Badge struct {
	ID        string                            `json:"id" gorm:"primaryKey"`
	Name      string                            `json:"name" gorm:"not null"`
	Criteria  datatypes.JSONType[BadgeCriteria] `json:"criteria"`
	CreatedAt time.Time                         `json:"created_at"`
}

// CustomerBadge records a single award. The composite unique index is the
// final backstop against double awards.
type CustomerBadge struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CustomerID string    `json:"customer_id" gorm:"uniqueIndex:idx_customer_badge;not null"`
	BadgeID    string    `json:"badge_id" gorm:"uniqueIndex:idx_customer_badge;not null"`
	AwardedAt  time.Time `json:"awarded_at"`
}
