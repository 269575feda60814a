// Package directory holds user records and answers role/ownership
// questions: registration, authentication, role promotion and capability
// flags. It has no side effects beyond its own records.
package directory

import (
	"errors"

	"surprise-bag-api/apperr"
	"surprise-bag-api/models"
	"surprise-bag-api/policy"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Directory struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// RegisterCustomer creates a customer account. Customers carry no
// location or phone; the request schema never accepts them.
func (d *Directory) RegisterCustomer(username, password string) (*models.User, error) {
	return d.register(&models.User{
		Username: username,
		Role:     models.RoleCustomer,
	}, password)
}

// RegisterShop creates a shop account. Location and phone are required
// for shops; the handler enforces their presence before calling here.
func (d *Directory) RegisterShop(username, password, location, phone string) (*models.User, error) {
	return d.register(&models.User{
		Username: username,
		Role:     models.RoleShop,
		Location: &location,
		Phone:    &phone,
	}, password)
}

// RegisterAdmin creates an admin account on behalf of a privileged actor.
func (d *Directory) RegisterAdmin(actor *models.User, username, password string) (*models.User, error) {
	if !policy.CanAddAdmin(actor) {
		return nil, apperr.New(apperr.Authorization, "Not authorized to add admins")
	}
	return d.register(&models.User{
		Username: username,
		Role:     models.RoleAdmin,
	}, password)
}

func (d *Directory) register(user *models.User, password string) (*models.User, error) {
	var existing models.User
	if err := d.db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return nil, apperr.New(apperr.Conflict, "Username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Conflict, "Failed to create user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := d.db.Create(user).Error; err != nil {
		return nil, apperr.Wrap(apperr.Conflict, "Username already exists", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair.
func (d *Directory) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, apperr.New(apperr.Authentication, "Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Authentication, "Invalid username or password")
	}
	return &user, nil
}

func (d *Directory) LookupByUsername(username string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	return &user, nil
}

func (d *Directory) LookupByID(id uint) (*models.User, error) {
	var user models.User
	if err := d.db.First(&user, id).Error; err != nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	return &user, nil
}

func (d *Directory) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := d.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (d *Directory) ListShops() ([]models.User, error) {
	var shops []models.User
	if err := d.db.Where("role = ?", models.RoleShop).Order("id").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// PromoteToAdmin escalates a user to the admin role. Super admin only;
// promoting another super admin, or someone who already is an admin, is
// an invalid transition.
func (d *Directory) PromoteToAdmin(actor *models.User, username string) (*models.User, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, apperr.New(apperr.Authorization, "Not authorized")
	}
	target, err := d.LookupByUsername(username)
	if err != nil {
		return nil, err
	}
	if target.Role == models.RoleSuperAdmin {
		return nil, apperr.New(apperr.Conflict, "Cannot change the role of a super admin")
	}
	if target.Role == models.RoleAdmin {
		return nil, apperr.New(apperr.Conflict, "User is already an admin")
	}
	if err := d.db.Model(target).Update("role", models.RoleAdmin).Error; err != nil {
		return nil, err
	}
	return target, nil
}

// GrantCapability sets a capability flag on an admin account. Granting a
// flag the target already holds is rejected, not silently accepted.
func (d *Directory) GrantCapability(actor *models.User, username string, c models.Capability) (*models.User, error) {
	return d.setCapability(actor, username, c, true)
}

// RevokeCapability clears a capability flag on an admin account.
// Capabilities can never be revoked from a super admin.
func (d *Directory) RevokeCapability(actor *models.User, username string, c models.Capability) (*models.User, error) {
	return d.setCapability(actor, username, c, false)
}

func (d *Directory) setCapability(actor *models.User, username string, c models.Capability, value bool) (*models.User, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, apperr.New(apperr.Authorization, "Not authorized")
	}
	target, err := d.LookupByUsername(username)
	if err != nil {
		return nil, err
	}
	if !value && target.Role == models.RoleSuperAdmin {
		return nil, apperr.New(apperr.Authorization, "Cannot revoke capabilities from a super admin")
	}
	if target.Role != models.RoleAdmin {
		return nil, apperr.New(apperr.Conflict, "User must be an admin to change this capability")
	}

	var column string
	var current bool
	switch c {
	case models.CapAddAdmin:
		column, current = "can_add_admin", target.CanAddAdmin
	case models.CapDeleteShopProducts:
		column, current = "can_delete_shop_products", target.CanDeleteShopProducts
	default:
		return nil, apperr.Newf(apperr.Validation, "Unknown capability %q", c)
	}
	if current == value {
		if value {
			return nil, apperr.New(apperr.Conflict, "User already has this capability")
		}
		return nil, apperr.New(apperr.Conflict, "User does not have this capability")
	}
	if err := d.db.Model(target).Update(column, value).Error; err != nil {
		return nil, err
	}
	return target, nil
}
