package handlers

import (
	"net/http"

	"github.com/racsaibot-coder/rich-aroma-os/config"
	"github.com/racsaibot-coder/rich-aroma-os/services"

	"github.com/gin-gonic/gin"
)

type ReceiptRequest struct {
	TicketCode string `json:"ticket_code"`
	RefNumber  string `json:"ref_number" binding:"required"`
}

// LookupDiscountCode validates a discount code for the POS
func LookupDiscountCode(c *gin.Context) {
	result, err := services.LookupDiscountCode(config.DB, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitReceipt records a bank-transfer receipt reference, insert-once
func SubmitReceipt(c *gin.Context) {
	var req ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := services.SubmitReceipt(config.DB, req.TicketCode, req.RefNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "receipt": receipt})
}
