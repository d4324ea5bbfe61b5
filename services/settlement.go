package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateOrderInput carries everything the coordinator needs. Totals are
// trusted as given: the core never reprices from the menu.
type CreateOrderInput struct {
	Items         []models.OrderLine   `json:"items" binding:"required,min=1"`
	Subtotal      float64              `json:"subtotal"`
	Tax           float64              `json:"tax"`
	Discount      float64              `json:"discount"`
	DiscountCode  string               `json:"discount_code"`
	Total         float64              `json:"total"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
	CustomerID    *string              `json:"customer_id"`
	Delivery      bool                 `json:"delivery"`
	Notes         string               `json:"notes"`
}

// CreateOrder builds and persists a new order. Wallet payments settle
// immediately through the ledger: full cover → paid, anything less drains
// the wallet and leaves the order partial_paid (no amount-due is persisted).
// Cash and card orders stay pending until settled at the till.
func CreateOrder(db *gorm.DB, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.New(apperr.Validation, "at least one item is required")
	}
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, apperr.Newf(apperr.Validation, "invalid quantity for item %s", line.ItemID)
		}
	}
	switch in.PaymentMethod {
	case models.PayCash, models.PayCard, models.PayWallet:
	default:
		return nil, apperr.Newf(apperr.Validation, "invalid payment method %q", in.PaymentMethod)
	}
	if in.Total < 0 {
		return nil, apperr.New(apperr.Validation, "total cannot be negative")
	}

	orderNumber, err := nextOrderNumber(db)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		ID:             fmt.Sprintf("ORD-%04d", orderNumber),
		OrderNumber:    orderNumber,
		Items:          in.Items,
		Subtotal:       in.Subtotal,
		Tax:            in.Tax,
		Discount:       in.Discount,
		DiscountCode:   in.DiscountCode,
		Total:          in.Total,
		Status:         models.StatusPending,
		PaymentMethod:  in.PaymentMethod,
		CustomerID:     in.CustomerID,
		DeliveryStatus: models.DeliveryNone,
		Notes:          in.Notes,
	}
	if in.Delivery {
		order.DeliveryStatus = models.DeliveryPending
	}

	if in.PaymentMethod == models.PayWallet {
		if in.CustomerID == nil {
			return nil, apperr.New(apperr.Validation, "wallet payment requires a customer")
		}
		customer, err := getCustomer(db, *in.CustomerID)
		if err != nil {
			return nil, err
		}

		available := customer.MembershipCredit + customer.CashBalance
		if available >= in.Total {
			if _, err := PayWithBalance(db, customer.ID, in.Total, order.ID); err != nil {
				return nil, err
			}
			order.Status = models.StatusPaid
		} else {
			if _, err := payPartialWithBalance(db, customer, order.ID); err != nil {
				return nil, err
			}
			order.Status = models.StatusPartialPaid
		}
	}

	if err := db.Create(&order).Error; err != nil {
		// The wallet may already be debited at this point. There is no
		// cross-operation rollback; the failure is surfaced as-is.
		return nil, apperr.Wrap(apperr.IntegrityWarning, "failed to persist order", err)
	}

	DeductInventoryForOrder(db, &order)

	return &order, nil
}

// CompleteOrder marks an order completed and, on the winning transition
// only, runs loyalty accrual and badge evaluation. The conditional update
// is the idempotency guard: a duplicate complete call affects zero rows and
// is a no-op.
func CompleteOrder(db *gorm.DB, orderID string) (*models.Order, error) {
	order, err := getOrder(db, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res := db.Model(&models.Order{}).
		Where("id = ? AND status <> ?", orderID, models.StatusCompleted).
		Updates(map[string]any{"status": models.StatusCompleted, "completed_at": now})
	if res.Error != nil {
		return nil, apperr.Wrap(apperr.IntegrityWarning, "failed to complete order", res.Error)
	}

	if res.RowsAffected == 1 && order.CustomerID != nil {
		customer, err := accrueLoyalty(db, *order.CustomerID, order)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id":    order.ID,
				"customer_id": *order.CustomerID,
			}).WithError(err).Warn("loyalty accrual failed")
		} else {
			evaluateBadges(db, customer, order)
		}
	}

	return getOrder(db, orderID)
}

func getOrder(db *gorm.DB, orderID string) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "order %s not found", orderID)
		}
		return nil, apperr.Wrap(apperr.IntegrityWarning, "order lookup failed", err)
	}
	return &order, nil
}

// nextOrderNumber assigns max+1. Two simultaneous creations can race for
// the same number; the unique index makes the loser fail loudly rather
// than silently duplicate.
func nextOrderNumber(db *gorm.DB) (int, error) {
	var current int
	err := db.Model(&models.Order{}).
		Select("COALESCE(MAX(order_number), 0)").Scan(&current).Error
	if err != nil {
		return 0, apperr.Wrap(apperr.IntegrityWarning, "failed to allocate order number", err)
	}
	return current + 1, nil
}
