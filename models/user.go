package models

import "time"

// Role defines allowed roles in the system
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleShop       Role = "shop"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Capability is a per-admin permission flag, independent of role.
// Super admins hold every capability implicitly; the flags are only
// meaningful on admin accounts.
type Capability string

const (
	CapAddAdmin           Capability = "can_add_admin"
	CapDeleteShopProducts Capability = "can_delete_shop_products"
)

type User struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	Username              string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash          string    `json:"-" gorm:"not null"`
	Role                  Role      `json:"role" gorm:"not null;default:'customer'"`
	CanAddAdmin           bool      `json:"can_add_admin" gorm:"default:false"`
	CanDeleteShopProducts bool      `json:"can_delete_shop_products" gorm:"default:false"`
	Location              *string   `json:"location"`
	Phone                 *string   `json:"phone"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// HasCapability reports whether the user holds the given capability flag.
// Flags on non-admin roles are ignored.
func (u *User) HasCapability(c Capability) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	if u.Role != RoleAdmin {
		return false
	}
	switch c {
	case CapAddAdmin:
		return u.CanAddAdmin
	case CapDeleteShopProducts:
		return u.CanDeleteShopProducts
	}
	return false
}
