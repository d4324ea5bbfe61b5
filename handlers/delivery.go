package handlers

import (
	"net/http"

	"github.com/racsaibot-coder/rich-aroma-os/config"
	"github.com/racsaibot-coder/rich-aroma-os/models"
	"github.com/racsaibot-coder/rich-aroma-os/services"
	"github.com/racsaibot-coder/rich-aroma-os/statemachine"

	"github.com/gin-gonic/gin"
)

type ClaimRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
}

type DeliveryStatusRequest struct {
	Status models.DeliveryStatus `json:"status" binding:"required"`
}

// GetAvailableDeliveries shows delivery orders that no driver has claimed
func GetAvailableDeliveries(c *gin.Context) {
	var orders []models.Order
	config.DB.
		Where("delivery_status = ? AND driver_id IS NULL", models.DeliveryPending).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ClaimDelivery lets a driver atomically acquire an unassigned order;
// exactly one of two simultaneous claimants wins
func ClaimDelivery(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := services.ClaimDelivery(config.DB, c.Param("id"), req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// AssignDelivery is the staff override, allowed to reassign a claimed order
func AssignDelivery(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := services.AssignDelivery(config.DB, c.Param("id"), req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetDeliveryStateMachine documents the courier lifecycle for clients
func GetDeliveryStateMachine(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": []models.DeliveryStatus{models.DeliveryDone},
		"description":     "Delivery Order Courier Lifecycle State Machine",
	})
}

// SetDeliveryStatus advances the courier leg; "delivered" also completes
// the order
func SetDeliveryStatus(c *gin.Context) {
	var req DeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := services.SetDeliveryStatus(config.DB, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
