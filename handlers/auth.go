package handlers

import (
	"net/http"

	"surprise-bag-api/middleware"
	"surprise-bag-api/models"

	"github.com/gin-gonic/gin"
)

// Customer registration carries no location or phone by design; shops
// must supply both.
type RegisterCustomerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterShopRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Location string `json:"location" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterCustomer creates a customer account and logs it in
func RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := users().RegisterCustomer(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	issueRegistrationResponse(c, user)
}

// RegisterShop creates a shop account and logs it in
func RegisterShop(c *gin.Context) {
	var req RegisterShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := users().RegisterShop(req.Username, req.Password, req.Location, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	issueRegistrationResponse(c, user)
}

func issueRegistrationResponse(c *gin.Context, user *models.User) {
	token, err := middleware.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    user,
	})
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := users().Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := middleware.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// GetProfile returns the authenticated user's record
func GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.GetUser(c)})
}
