package handlers

import (
	"net/http"
	"strconv"

	"surprise-bag-api/middleware"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	FoodItemID uint `json:"food_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// PlaceOrder reserves stock and creates a pending order (customer only)
func PlaceOrder(c *gin.Context) {
	customer := middleware.GetUser(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := orders().Create(customer, req.FoodItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed", "order": order})
}

// MyOrders returns all live orders for the logged-in customer
func MyOrders(c *gin.Context) {
	customer := middleware.GetUser(c)
	list, err := orders().ListForCustomer(customer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
}

// OrderStatus is the owner-restricted lookup by pickup code
func OrderStatus(c *gin.Context) {
	customer := middleware.GetUser(c)
	order, err := orders().Status(customer, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder voids a pending order within the cancellation window and
// restores its stock
func CancelOrder(c *gin.Context) {
	customer := middleware.GetUser(c)
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	if err := orders().Cancel(customer, uint(orderID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order_id": orderID})
}

// PayOrder settles a pending order against the computed amount due
func PayOrder(c *gin.Context) {
	customer := middleware.GetUser(c)

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	due, err := orders().Pay(customer, c.Param("code"), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order paid", "amount_due": due})
}

// ConfirmPickup completes a paid order and purges its record. Open to
// any authenticated caller presenting a valid code.
func ConfirmPickup(c *gin.Context) {
	code := c.Param("code")
	if err := orders().ConfirmPickup(code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pickup confirmed", "pickup_code": code})
}
