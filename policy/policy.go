// Package policy is the single access-decision point for every mutating
// operation. Handlers and engines ask it; none of them re-derive
// authorization on their own.
package policy

import "surprise-bag-api/models"

// CanCreateBag reports whether the actor may create a food-item listing.
// The created item's owner is always the actor, never client-supplied.
func CanCreateBag(actor *models.User) bool {
	switch actor.Role {
	case models.RoleShop, models.RoleAdmin, models.RoleSuperAdmin:
		return true
	}
	return false
}

// CanManageBag reports whether the actor may edit or delete an item owned
// by owner. Rules, in order:
//   - the owner may always act on their own item
//   - shop-owned items: super admin, or admin holding can_delete_shop_products
//   - admin/super-admin-owned items (not the actor's): super admin only
//   - ownerless legacy items: admin and super admin only
func CanManageBag(actor *models.User, owner *models.User) bool {
	if owner == nil {
		return actor.Role == models.RoleAdmin || actor.Role == models.RoleSuperAdmin
	}
	if actor.ID == owner.ID {
		return true
	}
	switch owner.Role {
	case models.RoleShop:
		return actor.HasCapability(models.CapDeleteShopProducts)
	case models.RoleAdmin, models.RoleSuperAdmin:
		return actor.Role == models.RoleSuperAdmin
	}
	return false
}

// CanAddAdmin reports whether the actor may create admin accounts.
func CanAddAdmin(actor *models.User) bool {
	return actor.HasCapability(models.CapAddAdmin)
}

// CanPlaceOrder reports whether the actor may place orders.
func CanPlaceOrder(actor *models.User) bool {
	return actor.Role == models.RoleCustomer
}

// OwnsOrder reports whether the actor is the customer who placed the order.
func OwnsOrder(actor *models.User, order *models.Order) bool {
	return actor.ID == order.UserID
}
