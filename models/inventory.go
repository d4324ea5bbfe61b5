package models

import (
	"time"

	"gorm.io/datatypes"
)

type InventoryItem struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Unit         string    `json:"unit"`
	CurrentStock float64   `json:"current_stock" gorm:"default:0"` // clamped at zero, never negative
	UpdatedAt    time.Time `json:"updated_at"`
}

// Recipe maps one menu item to one ingredient decrement per unit sold.
type Recipe struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	MenuItemID      string  `json:"menu_item_id" gorm:"index;not null"`
	InventoryItemID string  `json:"inventory_item_id" gorm:"not null"`
	QuantityPerUnit float64 `json:"quantity_per_unit" gorm:"not null"`
}

// ModifierRecipe is the same mapping for order-line modifiers.
type ModifierRecipe struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	ModifierID      string  `json:"modifier_id" gorm:"index;not null"`
	InventoryItemID string  `json:"inventory_item_id" gorm:"not null"`
	QuantityPerUnit float64 `json:"quantity_per_unit" gorm:"not null"`
}

// Setting is a durable keyed store for small pieces of system state that
// would otherwise live in process memory (e.g. the live-drop counter).
type Setting struct {
	Key       string         `json:"key" gorm:"primaryKey"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Receipt records a submitted payment receipt. RefNumber is insert-once.
type Receipt struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TicketCode string    `json:"ticket_code"`
	RefNumber  string    `json:"ref_number" gorm:"uniqueIndex;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// DiscountCode is consumed as an input by order creation; the core never
// reprices with it.
type DiscountCode struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	Percent   float64   `json:"percent" gorm:"not null"`
	CreatorID *string   `json:"creator_id"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}
