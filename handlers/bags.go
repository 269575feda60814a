package handlers

import (
	"net/http"
	"strconv"

	"surprise-bag-api/ledger"
	"surprise-bag-api/middleware"
	"surprise-bag-api/models"

	"github.com/gin-gonic/gin"
)

// CreateBag lists a new bag owned by the caller (shop/admin/super admin)
func CreateBag(c *gin.Context) {
	actor := middleware.GetUser(c)

	var in ledger.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := bags().CreateItem(actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bag created", "bag": item})
}

// UpdateBag replaces a bag's fields, subject to the access policy
func UpdateBag(c *gin.Context) {
	actor := middleware.GetUser(c)
	id, ok := bagID(c)
	if !ok {
		return
	}

	var in ledger.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := bags().UpdateItem(id, actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bag updated", "bag": item})
}

// DeleteBag removes a bag, subject to the access policy
func DeleteBag(c *gin.Context) {
	actor := middleware.GetUser(c)
	id, ok := bagID(c)
	if !ok {
		return
	}
	if err := bags().DeleteItem(id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bag deleted", "bag_id": id})
}

// MyBags lists the caller's own bags; admins and super admins see every
// bag, zero-stock included.
func MyBags(c *gin.Context) {
	actor := middleware.GetUser(c)

	var (
		items []models.FoodItem
		err   error
	)
	switch actor.Role {
	case models.RoleAdmin, models.RoleSuperAdmin:
		items, err = bags().ListAll()
	default:
		items, err = bags().ListByShop(actor.ID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "bags": items})
}

func bagID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bag id"})
		return 0, false
	}
	return uint(id), true
}
