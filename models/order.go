package models

import "time"

// OrderStatus represents the states of a surprise-bag order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderPickedUp  OrderStatus = "picked_up"
	OrderCancelled OrderStatus = "cancelled"
)

// Order reserves stock from a FoodItem while pending or paid. A cancelled
// order has already returned its stock; a picked-up order is deleted
// immediately after the transition (pickup confirmation is consumption,
// not history).
type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     uint        `json:"user_id" gorm:"not null;index"`
	User       *User       `json:"-" gorm:"foreignKey:UserID"`
	FoodItemID uint        `json:"food_item_id" gorm:"not null"`
	FoodItem   *FoodItem   `json:"-" gorm:"foreignKey:FoodItemID"`
	Status     OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	PickupCode string      `json:"pickup_code" gorm:"uniqueIndex;not null"`
	Quantity   int         `json:"quantity" gorm:"not null;default:1"`
	CreatedAt  time.Time   `json:"created_at"`
}
