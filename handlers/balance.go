package handlers

import (
	"net/http"

	"github.com/racsaibot-coder/rich-aroma-os/config"
	"github.com/racsaibot-coder/rich-aroma-os/services"

	"github.com/gin-gonic/gin"
)

type LoadBalanceRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type PayBalanceRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	OrderID string  `json:"order_id"`
}

// LoadBalance adds funds to a customer wallet (VIPs get a 10% bonus)
func LoadBalance(c *gin.Context) {
	var req LoadBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.LoadBalance(config.DB, c.Param("id"), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PayBalance debits a wallet, credit bucket first
func PayBalance(c *gin.Context) {
	var req PayBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.PayWithBalance(config.DB, c.Param("id"), req.Amount, req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
