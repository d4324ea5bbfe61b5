package services

import (
	"testing"

	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"
)

func walletOrderInput(customerID string, total float64) CreateOrderInput {
	return CreateOrderInput{
		Items:         []models.OrderLine{{ItemID: "latte", Name: "Latte", Price: total, Quantity: 1}},
		Subtotal:      total,
		Total:         total,
		PaymentMethod: models.PayWallet,
		CustomerID:    &customerID,
	}
}

func TestCreateOrderWalletPartialPayment(t *testing.T) {
	db := newTestDB(t)
	createCustomer(t, db, models.Customer{
		ID: "C001", Name: "Ana", Phone: "50411111111",
		MembershipCredit: 500, CashBalance: 50,
	})

	order, err := CreateOrder(db, walletOrderInput("C001", 600))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Status != models.StatusPartialPaid {
		t.Errorf("status = %s, want partial_paid", order.Status)
	}

	c := reloadCustomer(t, db, "C001")
	if c.MembershipCredit != 0 || c.CashBalance != 0 {
		t.Errorf("wallet not fully drained: credit %.2f cash %.2f", c.MembershipCredit, c.CashBalance)
	}
}

func TestCreateOrderWalletExactDrain(t *testing.T) {
	db := newTestDB(t)
	createCustomer(t, db, models.Customer{
		ID: "C001", Name: "Ana", Phone: "50411111111",
		MembershipCredit: 500, CashBalance: 100,
	})

	order, err := CreateOrder(db, walletOrderInput("C001", 600))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Status != models.StatusPaid {
		t.Errorf("status = %s, want paid (exact cover)", order.Status)
	}

	c := reloadCustomer(t, db, "C001")
	if c.MembershipCredit != 0 || c.CashBalance != 0 {
		t.Errorf("balances = credit %.2f cash %.2f, want 0 / 0", c.MembershipCredit, c.CashBalance)
	}
}

func TestCreateOrderCashStaysPending(t *testing.T) {
	db := newTestDB(t)

	order, err := CreateOrder(db, CreateOrderInput{
		Items:         []models.OrderLine{{ItemID: "espresso", Name: "Espresso", Price: 30, Quantity: 1}},
		Subtotal:      30,
		Total:         30,
		PaymentMethod: models.PayCash,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
}

func TestCreateOrderNumbering(t *testing.T) {
	db := newTestDB(t)

	first, err := CreateOrder(db, CreateOrderInput{
		Items:         []models.OrderLine{{ItemID: "espresso", Quantity: 1}},
		Total:         30,
		PaymentMethod: models.PayCash,
	})
	if err != nil {
		t.Fatalf("first order: %v", err)
	}
	second, err := CreateOrder(db, CreateOrderInput{
		Items:         []models.OrderLine{{ItemID: "espresso", Quantity: 2}},
		Total:         60,
		PaymentMethod: models.PayCard,
	})
	if err != nil {
		t.Fatalf("second order: %v", err)
	}

	if first.OrderNumber != 1 || second.OrderNumber != 2 {
		t.Errorf("order numbers = %d, %d, want 1, 2", first.OrderNumber, second.OrderNumber)
	}
	if first.ID != "ORD-0001" || second.ID != "ORD-0002" {
		t.Errorf("order ids = %s, %s", first.ID, second.ID)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name string
		in   CreateOrderInput
	}{
		{"no items", CreateOrderInput{PaymentMethod: models.PayCash}},
		{"zero quantity", CreateOrderInput{
			Items:         []models.OrderLine{{ItemID: "latte", Quantity: 0}},
			PaymentMethod: models.PayCash,
		}},
		{"bad payment method", CreateOrderInput{
			Items:         []models.OrderLine{{ItemID: "latte", Quantity: 1}},
			PaymentMethod: "bitcoin",
		}},
		{"wallet without customer", CreateOrderInput{
			Items:         []models.OrderLine{{ItemID: "latte", Quantity: 1}},
			Total:         50,
			PaymentMethod: models.PayWallet,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateOrder(db, tt.in)
			if apperr.KindOf(err) != apperr.Validation {
				t.Errorf("kind = %v, want Validation", apperr.KindOf(err))
			}
		})
	}
}

func TestCreateOrderInsufficientWalletIsPartialNotError(t *testing.T) {
	db := newTestDB(t)
	createCustomer(t, db, models.Customer{
		ID: "C001", Name: "Ana", Phone: "50411111111", CashBalance: 10,
	})

	order, err := CreateOrder(db, walletOrderInput("C001", 100))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Status != models.StatusPartialPaid {
		t.Errorf("status = %s, want partial_paid", order.Status)
	}
}

func TestInventoryCascadeOnCreate(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.InventoryItem{ID: "beans", Name: "Coffee Beans", Unit: "g", CurrentStock: 100})
	db.Create(&models.InventoryItem{ID: "milk", Name: "Milk", Unit: "ml", CurrentStock: 500})
	db.Create(&models.Recipe{MenuItemID: "latte", InventoryItemID: "beans", QuantityPerUnit: 18})
	db.Create(&models.Recipe{MenuItemID: "latte", InventoryItemID: "milk", QuantityPerUnit: 200})
	db.Create(&models.ModifierRecipe{ModifierID: "extra-shot", InventoryItemID: "beans", QuantityPerUnit: 9})

	_, err := CreateOrder(db, CreateOrderInput{
		Items: []models.OrderLine{{
			ItemID:    "latte",
			Quantity:  2,
			Modifiers: []models.OrderModifier{{ID: "extra-shot"}},
		}},
		Total:         120,
		PaymentMethod: models.PayCash,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	var beans, milk models.InventoryItem
	db.First(&beans, "id = ?", "beans")
	db.First(&milk, "id = ?", "milk")
	// beans: 2×18 for the lattes + 2×9 for the extra shot
	if beans.CurrentStock != 46 {
		t.Errorf("beans stock = %.1f, want 46", beans.CurrentStock)
	}
	if milk.CurrentStock != 100 {
		t.Errorf("milk stock = %.1f, want 100", milk.CurrentStock)
	}
}

func TestInventoryClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.InventoryItem{ID: "beans", Name: "Coffee Beans", CurrentStock: 10})
	db.Create(&models.Recipe{MenuItemID: "latte", InventoryItemID: "beans", QuantityPerUnit: 18})

	_, err := CreateOrder(db, CreateOrderInput{
		Items:         []models.OrderLine{{ItemID: "latte", Quantity: 3}},
		Total:         180,
		PaymentMethod: models.PayCash,
	})
	if err != nil {
		t.Fatalf("CreateOrder must not fail on stock shortfall: %v", err)
	}

	var beans models.InventoryItem
	db.First(&beans, "id = ?", "beans")
	if beans.CurrentStock != 0 {
		t.Errorf("stock = %.1f, want clamped to 0", beans.CurrentStock)
	}
}
