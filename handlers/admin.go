package handlers

import (
	"net/http"

	"surprise-bag-api/middleware"
	"surprise-bag-api/models"

	"github.com/gin-gonic/gin"
)

type AddAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type CapabilityRequest struct {
	Capability models.Capability `json:"capability" binding:"required"`
}

// ListUsers returns every user record (admin and super admin)
func ListUsers(c *gin.Context) {
	list, err := users().ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "users": list})
}

// AddAdmin creates an admin account; allowed for super admins and for
// admins holding can_add_admin
func AddAdmin(c *gin.Context) {
	actor := middleware.GetUser(c)

	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	admin, err := users().RegisterAdmin(actor, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin " + admin.Username + " added successfully",
		"user":    admin,
	})
}

// PromoteToAdmin escalates a user to admin (super admin only)
func PromoteToAdmin(c *gin.Context) {
	actor := middleware.GetUser(c)
	target, err := users().PromoteToAdmin(actor, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": target.Username + " is now an admin",
		"user":    target,
	})
}

// GrantCapability sets a capability flag on an admin (super admin only)
func GrantCapability(c *gin.Context) {
	setCapability(c, true)
}

// RevokeCapability clears a capability flag on an admin (super admin only)
func RevokeCapability(c *gin.Context) {
	setCapability(c, false)
}

func setCapability(c *gin.Context, grant bool) {
	actor := middleware.GetUser(c)

	var req CapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := c.Param("username")
	var (
		target *models.User
		err    error
	)
	if grant {
		target, err = users().GrantCapability(actor, username, req.Capability)
	} else {
		target, err = users().RevokeCapability(actor, username, req.Capability)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	verb := "granted to"
	if !grant {
		verb = "revoked for"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Capability " + string(req.Capability) + " " + verb + " " + target.Username,
		"user":    target,
	})
}
