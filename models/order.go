package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus represents all possible states of a cafe order
type OrderStatus string

const (
	StatusPending     OrderStatus = "pending"
	StatusPaid        OrderStatus = "paid"
	StatusPartialPaid OrderStatus = "partial_paid"
	StatusCompleted   OrderStatus = "completed"
	StatusCancelled   OrderStatus = "cancelled"
)

// PaymentMethod is how the customer settles the order
type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayWallet PaymentMethod = "wallet"
)

// DeliveryStatus tracks the courier leg of a delivery order
type DeliveryStatus string

const (
	DeliveryNone     DeliveryStatus = "none"
	DeliveryPending  DeliveryStatus = "pending"
	DeliveryAssigned DeliveryStatus = "assigned"
	DeliveryOnRoute  DeliveryStatus = "out_for_delivery"
	DeliveryDone     DeliveryStatus = "delivered"
)

// OrderModifier is a modifier attached to a line item, snapshotted at order time
type OrderModifier struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Price float64 `json:"price,omitempty"`
}

// OrderLine is one line of an order. Name and Price are snapshots.
type OrderLine struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Price     float64         `json:"price"`
	Quantity  int             `json:"quantity"`
	Modifiers []OrderModifier `json:"modifiers,omitempty"`
}

type Order struct {
	ID             string                         `json:"id" gorm:"primaryKey"`
	OrderNumber    int                            `json:"order_number" gorm:"uniqueIndex;not null"`
	Items          datatypes.JSONSlice[OrderLine] `json:"items"`
	Subtotal       float64                        `json:"subtotal"`
	Tax            float64                        `json:"tax"`
	Discount       float64                        `json:"discount"`
	DiscountCode   string                         `json:"discount_code,omitempty"`
	Total          float64                        `json:"total"`
	Status         OrderStatus                    `json:"status" gorm:"not null;default:'pending'"`
	PaymentMethod  PaymentMethod                  `json:"payment_method" gorm:"not null"`
	CustomerID     *string                        `json:"customer_id"`
	Customer       *Customer                      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	DriverID       *string                        `json:"driver_id"` // write-once via the claim path
	DeliveryStatus DeliveryStatus                 `json:"delivery_status" gorm:"not null;default:'none'"`
	Notes          string                         `json:"notes"`
	CreatedAt      time.Time                      `json:"created_at"`
	CompletedAt    *time.Time                     `json:"completed_at"`
}
