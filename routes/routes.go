package routes

import (
	"surprise-bag-api/handlers"
	"surprise-bag-api/middleware"
	"surprise-bag-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/register/customer", handlers.RegisterCustomer)
		public.POST("/register/shop", handlers.RegisterShop)
		public.POST("/login", handlers.Login)

		// Browsing needs no auth
		public.GET("/bags", handlers.ListBags)
		public.GET("/shops", handlers.ListShops)
		public.GET("/shops/:id/products", handlers.ListShopProducts)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Anyone presenting a valid code may confirm pickup
		auth.POST("/pickup/:code", handlers.ConfirmPickup)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/orders")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("", handlers.PlaceOrder)
		customer.GET("", handlers.MyOrders)
		customer.GET("/status/:code", handlers.OrderStatus)
		customer.POST("/:id/cancel", handlers.CancelOrder)
		customer.POST("/pay/:code", handlers.PayOrder)
	}

	// ── Bag management (shop, admin, super admin) ──────────────────
	bags := r.Group("/api/bags")
	bags.Use(middleware.AuthRequired(), middleware.RoleRequired(
		models.RoleShop, models.RoleAdmin, models.RoleSuperAdmin))
	{
		bags.POST("", handlers.CreateBag)
		bags.GET("/mine", handlers.MyBags)
		bags.PUT("/:id", handlers.UpdateBag)
		bags.DELETE("/:id", handlers.DeleteBag)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(
		models.RoleAdmin, models.RoleSuperAdmin))
	{
		admin.GET("/users", handlers.ListUsers)
		admin.POST("/admins", handlers.AddAdmin)
	}

	// ── Super admin routes ─────────────────────────────────────────
	superadmin := r.Group("/api/superadmin")
	superadmin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleSuperAdmin))
	{
		superadmin.POST("/promote/:username", handlers.PromoteToAdmin)
		superadmin.POST("/capabilities/:username/grant", handlers.GrantCapability)
		superadmin.POST("/capabilities/:username/revoke", handlers.RevokeCapability)
	}
}
