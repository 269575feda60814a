package handlers

import (
	"net/http"
	"strconv"

	"surprise-bag-api/config"
	"surprise-bag-api/models"

	"github.com/gin-gonic/gin"
)

// ListBags returns every bag with stock left (public browse view)
func ListBags(c *gin.Context) {
	items, err := bags().ListAvailable()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "bags": items})
}

// ListShops returns all registered shops
func ListShops(c *gin.Context) {
	shops, err := users().ListShops()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(shops), "shops": shops})
}

// ListShopProducts returns a shop's bag listings, zero-stock included
func ListShopProducts(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop id"})
		return
	}

	var shop models.User
	if err := config.DB.Where("id = ? AND role = ?", shopID, models.RoleShop).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	items, err := bags().ListByShop(uint(shopID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "products": items})
}
