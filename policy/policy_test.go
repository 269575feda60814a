package policy

import (
	"testing"

	"surprise-bag-api/models"

	"github.com/stretchr/testify/assert"
)

func user(id uint, role models.Role) *models.User {
	return &models.User{ID: id, Username: "u", Role: role}
}

func TestCanCreateBag(t *testing.T) {
	assert.False(t, CanCreateBag(user(1, models.RoleCustomer)))
	assert.True(t, CanCreateBag(user(2, models.RoleShop)))
	assert.True(t, CanCreateBag(user(3, models.RoleAdmin)))
	assert.True(t, CanCreateBag(user(4, models.RoleSuperAdmin)))
}

func TestCanManageBag(t *testing.T) {
	shop := user(1, models.RoleShop)
	otherShop := user(2, models.RoleShop)
	admin := user(3, models.RoleAdmin)
	adminWithCap := &models.User{ID: 4, Role: models.RoleAdmin, CanDeleteShopProducts: true}
	super := user(5, models.RoleSuperAdmin)
	customer := user(6, models.RoleCustomer)

	tests := []struct {
		name  string
		actor *models.User
		owner *models.User
		want  bool
	}{
		{"owner manages own bag", shop, shop, true},
		{"other shop denied", otherShop, shop, false},
		{"plain admin denied on shop bag", admin, shop, false},
		{"capable admin allowed on shop bag", adminWithCap, shop, true},
		{"super admin allowed on shop bag", super, shop, true},
		{"admin manages own bag", admin, admin, true},
		{"admin denied on another admin's bag", adminWithCap, admin, false},
		{"super admin allowed on admin bag", super, admin, true},
		{"admin denied on super admin's bag", admin, super, false},
		{"customer denied", customer, shop, false},
		{"nil owner: admin allowed", admin, nil, true},
		{"nil owner: super admin allowed", super, nil, true},
		{"nil owner: shop denied", shop, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageBag(tt.actor, tt.owner))
		})
	}
}

func TestCanAddAdmin(t *testing.T) {
	assert.True(t, CanAddAdmin(user(1, models.RoleSuperAdmin)))
	assert.False(t, CanAddAdmin(user(2, models.RoleAdmin)))
	assert.True(t, CanAddAdmin(&models.User{ID: 3, Role: models.RoleAdmin, CanAddAdmin: true}))
	// Flags are ignored for non-admin roles
	assert.False(t, CanAddAdmin(&models.User{ID: 4, Role: models.RoleShop, CanAddAdmin: true}))
	assert.False(t, CanAddAdmin(&models.User{ID: 5, Role: models.RoleCustomer, CanAddAdmin: true}))
}

func TestCanPlaceOrderAndOwnsOrder(t *testing.T) {
	customer := user(7, models.RoleCustomer)
	assert.True(t, CanPlaceOrder(customer))
	assert.False(t, CanPlaceOrder(user(8, models.RoleShop)))

	order := &models.Order{UserID: 7}
	assert.True(t, OwnsOrder(customer, order))
	assert.False(t, OwnsOrder(user(9, models.RoleCustomer), order))
}
