package handlers

import (
	"net/http"

	"github.com/racsaibot-coder/rich-aroma-os/config"
	"github.com/racsaibot-coder/rich-aroma-os/services"

	"github.com/gin-gonic/gin"
)

type LivePayRequest struct {
	Phone string `json:"phone" binding:"required"`
	PIN   string `json:"pin" binding:"required"`
}

// GetLiveStatus returns the current flash-drop state
func GetLiveStatus(c *gin.Context) {
	drop, err := services.LiveDropStatus(config.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drop)
}

// SetLiveDrop replaces the flash-drop state (staff only)
func SetLiveDrop(c *gin.Context) {
	var drop services.LiveDrop
	if err := c.ShouldBindJSON(&drop); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.SetLiveDrop(config.DB, drop); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drop)
}

// PayLiveDrop sells one unit of the active drop against a wallet balance
func PayLiveDrop(c *gin.Context) {
	var req LivePayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.PayLiveDrop(config.DB, req.Phone, req.PIN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
