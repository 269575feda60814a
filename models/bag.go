package models

import "time"

// FoodItem is a surprise-bag listing. Quantity is the live stock counter
// and must never go negative; order placement and cancellation are the
// only mutations outside of owner edits.
type FoodItem struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null;index"`
	OriginalPrice float64   `json:"original_price" gorm:"not null"`
	DiscountPrice float64   `json:"discount_price" gorm:"not null"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	ShopID        *uint     `json:"shop_id"` // nullable for legacy/system-created items
	Shop          *User     `json:"-" gorm:"foreignKey:ShopID"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
