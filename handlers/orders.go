package handlers

import (
	"net/http"

	"github.com/racsaibot-coder/rich-aroma-os/config"
	"github.com/racsaibot-coder/rich-aroma-os/models"
	"github.com/racsaibot-coder/rich-aroma-os/services"

	"github.com/gin-gonic/gin"
)

// CreateOrder builds a new order; wallet payments settle against the
// customer's balance immediately
func CreateOrder(c *gin.Context) {
	var req services.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := services.CreateOrder(config.DB, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// CompleteOrder marks an order completed; points and badges are awarded on
// the first completion only
func CompleteOrder(c *gin.Context) {
	order, err := services.CompleteOrder(config.DB, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders returns the most recent orders, optionally filtered by status
func ListOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Order("created_at desc").Limit(50)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	query.Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns a single order
func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Customer").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}
