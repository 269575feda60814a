// Package lifecycle drives an order from creation through cancellation,
// payment and pickup. Every compound step (reserve+create, cancel+release,
// pickup+purge) is one transaction: both halves commit or neither does.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"surprise-bag-api/apperr"
	"surprise-bag-api/ledger"
	"surprise-bag-api/models"
	"surprise-bag-api/policy"

	"gorm.io/gorm"
)

// CancelWindow is how long after creation a pending order may still be
// cancelled by its customer.
const CancelWindow = 5 * time.Minute

var errCodeExhausted = apperr.New(apperr.Conflict, "Could not allocate a pickup code")

// InsufficientPaymentError reports how far short the offered amount fell.
type InsufficientPaymentError struct {
	Due  float64
	Paid float64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("Payment failed, not enough. Amount due: %g, Paid: %g", e.Due, e.Paid)
}

type Engine struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Engine {
	return &Engine{db: db, now: time.Now}
}

// NewWithClock lets tests control the notion of "now".
func NewWithClock(db *gorm.DB, now func() time.Time) *Engine {
	return &Engine{db: db, now: now}
}

// Create places a customer order: stock reservation, pickup-code
// generation and the order insert are a single atomic unit.
func (e *Engine) Create(customer *models.User, itemID uint, qty int) (*models.Order, error) {
	if !policy.CanPlaceOrder(customer) {
		return nil, apperr.New(apperr.Authorization, "Only customers can place orders")
	}
	if qty < 1 {
		return nil, apperr.New(apperr.Validation, "Quantity must be at least 1")
	}

	var order models.Order
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := ledger.Reserve(tx, itemID, qty); err != nil {
			return err
		}
		code, err := generatePickupCode(tx)
		if err != nil {
			return err
		}
		order = models.Order{
			UserID:     customer.ID,
			FoodItemID: itemID,
			Status:     models.OrderPending,
			PickupCode: code,
			Quantity:   qty,
			CreatedAt:  e.now().UTC(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperr.Wrap(apperr.Conflict, "Failed to place order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel voids a pending order inside the cancellation window and
// restores its stock in the same transaction.
func (e *Engine) Cancel(customer *models.User, orderID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ? AND user_id = ?", orderID, customer.ID).First(&order).Error; err != nil {
			return apperr.New(apperr.NotFound, "Order not found")
		}
		if order.Status != models.OrderPending {
			return apperr.New(apperr.Validation, "Order cannot be cancelled")
		}
		if e.now().UTC().Sub(order.CreatedAt) > CancelWindow {
			return apperr.New(apperr.Validation, "Order can only be cancelled within 5 minutes")
		}
		if err := tx.Model(&order).Update("status", models.OrderCancelled).Error; err != nil {
			return err
		}
		return ledger.Release(tx, order.FoodItemID, order.Quantity)
	})
}

// Pay settles a pending order. The amount must cover
// discount_price * quantity; overpayment is not tracked.
func (e *Engine) Pay(customer *models.User, pickupCode string, amount float64) (float64, error) {
	var due float64
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("pickup_code = ? AND user_id = ?", pickupCode, customer.ID).First(&order).Error; err != nil {
			return apperr.New(apperr.NotFound, "Order not found")
		}
		if order.Status != models.OrderPending {
			return apperr.New(apperr.Validation, "Order cannot be paid")
		}
		var item models.FoodItem
		if err := tx.First(&item, order.FoodItemID).Error; err != nil {
			return apperr.New(apperr.NotFound, "Food item not found")
		}
		due = item.DiscountPrice * float64(order.Quantity)
		if amount < due {
			short := &InsufficientPaymentError{Due: due, Paid: amount}
			return apperr.Wrap(apperr.Validation, short.Error(), short)
		}
		return tx.Model(&order).Update("status", models.OrderPaid).Error
	})
	if err != nil {
		return 0, err
	}
	return due, nil
}

// ConfirmPickup completes a paid order and purges its record. Any
// authenticated bearer of the code may confirm; the code itself is the
// capability.
func (e *Engine) ConfirmPickup(pickupCode string) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("pickup_code = ?", pickupCode).First(&order).Error; err != nil {
			return apperr.New(apperr.NotFound, "Order not found")
		}
		if order.Status != models.OrderPaid {
			return apperr.New(apperr.Validation, "Order not paid yet")
		}
		if err := tx.Model(&order).Update("status", models.OrderPickedUp).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// Status is the owner-restricted read of a live order.
func (e *Engine) Status(customer *models.User, pickupCode string) (*models.Order, error) {
	var order models.Order
	err := e.db.Where("pickup_code = ? AND user_id = ?", pickupCode, customer.ID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Order not found")
		}
		return nil, err
	}
	return &order, nil
}

// ListForCustomer returns all of a customer's live orders, cancelled
// included. Picked-up orders no longer exist to be listed.
func (e *Engine) ListForCustomer(customer *models.User) ([]models.Order, error) {
	if !policy.CanPlaceOrder(customer) {
		return nil, apperr.New(apperr.Authorization, "Only customers can view their orders")
	}
	var orders []models.Order
	if err := e.db.Where("user_id = ?", customer.ID).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
