package routes

import (
	"github.com/racsaibot-coder/rich-aroma-os/handlers"
	"github.com/racsaibot-coder/rich-aroma-os/middleware"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", handlers.Login)

		// Ordering (kiosk / self-order page, no auth)
		public.POST("/orders", handlers.CreateOrder)
		public.GET("/orders", handlers.ListOrders)
		public.GET("/orders/:id", handlers.GetOrder)

		// Loyalty signup + lookup
		public.POST("/customers", handlers.CreateCustomer)
		public.GET("/customers/:id", handlers.GetCustomer)

		// POS helpers
		public.GET("/discount-codes/:code", handlers.LookupDiscountCode)
		public.POST("/receipts", handlers.SubmitReceipt)

		// Flash drop
		public.GET("/live/status", handlers.GetLiveStatus)
		public.POST("/live/pay", handlers.PayLiveDrop)

		public.GET("/state-machine", handlers.GetDeliveryStateMachine)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/driver")
	{
		driver.GET("/orders/available", handlers.GetAvailableDeliveries)
		driver.POST("/orders/:id/claim", handlers.ClaimDelivery)
		driver.PATCH("/orders/:id/delivery-status", handlers.SetDeliveryStatus)
	}

	// ── Staff routes ───────────────────────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired())
	{
		staff.POST("/orders/:id/complete", handlers.CompleteOrder)
		staff.POST("/orders/:id/assign-driver", handlers.AssignDelivery)

		staff.POST("/customers/:id/load-balance", handlers.LoadBalance)
		staff.POST("/customers/:id/pay-balance", handlers.PayBalance)

		staff.POST("/shifts", handlers.OpenShift)
		staff.GET("/shifts/current", handlers.GetCurrentShift)
		staff.POST("/shifts/:id/transactions", handlers.AddCashTransaction)
		staff.POST("/shifts/:id/close", handlers.CloseShift)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/live/drop", handlers.SetLiveDrop)
		admin.POST("/customers/:id/verify-founder", handlers.VerifyFounder)
	}
}
