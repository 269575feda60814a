// Package ledger is the single source of truth for surprise-bag stock.
// Reserve and Release are written to be safe under concurrent callers:
// both are single conditional UPDATE statements, so two orders racing for
// the last bag resolve to exactly one winner inside the store.
package ledger

import (
	"errors"

	"surprise-bag-api/apperr"
	"surprise-bag-api/models"
	"surprise-bag-api/policy"

	"gorm.io/gorm"
)

type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// ItemInput is the full set of client-settable fields. The owner is
// never part of it; it always comes from the authenticated actor.
type ItemInput struct {
	Name          string  `json:"name" binding:"required"`
	OriginalPrice float64 `json:"original_price" binding:"required,gt=0"`
	DiscountPrice float64 `json:"discount_price" binding:"required,gt=0"`
	Quantity      int     `json:"quantity" binding:"min=0"`
}

func (in *ItemInput) validate() error {
	if in.DiscountPrice > in.OriginalPrice {
		return apperr.New(apperr.Validation, "Discount price cannot exceed the original price")
	}
	if in.Quantity < 0 {
		return apperr.New(apperr.Validation, "Quantity cannot be negative")
	}
	return nil
}

// CreateItem lists a new bag owned by the actor.
func (l *Ledger) CreateItem(actor *models.User, in ItemInput) (*models.FoodItem, error) {
	if !policy.CanCreateBag(actor) {
		return nil, apperr.New(apperr.Authorization, "Not authorized to create bags")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	ownerID := actor.ID
	item := models.FoodItem{
		Name:          in.Name,
		OriginalPrice: in.OriginalPrice,
		DiscountPrice: in.DiscountPrice,
		Quantity:      in.Quantity,
		ShopID:        &ownerID,
	}
	if err := l.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces the client-settable fields of an existing bag.
func (l *Ledger) UpdateItem(id uint, actor *models.User, in ItemInput) (*models.FoodItem, error) {
	item, err := l.authorize(id, actor)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.OriginalPrice = in.OriginalPrice
	item.DiscountPrice = in.DiscountPrice
	item.Quantity = in.Quantity
	if err := l.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a bag per the access policy.
func (l *Ledger) DeleteItem(id uint, actor *models.User) error {
	item, err := l.authorize(id, actor)
	if err != nil {
		return err
	}
	return l.db.Delete(item).Error
}

func (l *Ledger) authorize(id uint, actor *models.User) (*models.FoodItem, error) {
	item, err := l.GetItem(id)
	if err != nil {
		return nil, err
	}
	var owner *models.User
	if item.ShopID != nil {
		var u models.User
		if err := l.db.First(&u, *item.ShopID).Error; err == nil {
			owner = &u
		}
	}
	if !policy.CanManageBag(actor, owner) {
		return nil, apperr.New(apperr.Authorization, "Not authorized to manage this bag")
	}
	return item, nil
}

func (l *Ledger) GetItem(id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := l.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Food item not found")
		}
		return nil, err
	}
	return &item, nil
}

// ListAvailable returns bags with stock left, for the public browse view.
func (l *Ledger) ListAvailable() ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := l.db.Where("quantity > 0").Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll includes zero-stock bags, for shop/admin views.
func (l *Ledger) ListAll() ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := l.db.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (l *Ledger) ListByShop(shopID uint) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := l.db.Where("shop_id = ?", shopID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Reserve subtracts qty from the item's stock. The decrement and the
// quantity check are one UPDATE, so stock can never go negative even
// under concurrent reservations. Callers run it inside the transaction
// that creates the order.
func Reserve(tx *gorm.DB, itemID uint, qty int) error {
	if qty < 1 {
		return apperr.New(apperr.Validation, "Quantity must be at least 1")
	}
	res := tx.Model(&models.FoodItem{}).
		Where("id = ? AND quantity >= ?", itemID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.FoodItem{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.New(apperr.NotFound, "Food item not found")
		}
		return apperr.New(apperr.Validation, "Not enough items available")
	}
	return nil
}

// Release returns qty to the item's stock on cancellation. Unconditional:
// nothing caps restored stock at any earlier ceiling.
func Release(tx *gorm.DB, itemID uint, qty int) error {
	return tx.Model(&models.FoodItem{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error
}
