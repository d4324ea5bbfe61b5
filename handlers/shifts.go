package handlers

import (
	"net/http"

	"github.com/racsaibot-coder/rich-aroma-os/config"
	"github.com/racsaibot-coder/rich-aroma-os/middleware"
	"github.com/racsaibot-coder/rich-aroma-os/services"

	"github.com/gin-gonic/gin"
)

type OpenShiftRequest struct {
	OpeningAmount float64 `json:"opening_amount" binding:"min=0"`
}

type CashTransactionRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Reason string  `json:"reason" binding:"required"`
}

type CloseShiftRequest struct {
	ClosingAmountDeclared float64 `json:"closing_amount_declared" binding:"min=0"`
	Notes                 string  `json:"notes"`
}

// OpenShift starts the cash drawer custody period for the caller
func OpenShift(c *gin.Context) {
	var req OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := services.OpenShift(config.DB, middleware.GetEmployeeID(c), req.OpeningAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// GetCurrentShift returns the open shift, if any
func GetCurrentShift(c *gin.Context) {
	shift, err := services.CurrentShift(config.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// AddCashTransaction records a signed drawer adjustment (payout or cash-in)
func AddCashTransaction(c *gin.Context) {
	var req CashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := services.AddCashTransaction(config.DB, c.Param("id"),
		req.Amount, req.Reason, middleware.GetEmployeeID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// CloseShift reconciles and closes the drawer, returning the full report
func CloseShift(c *gin.Context) {
	var req CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := services.CloseShift(config.DB, c.Param("id"),
		req.ClosingAmountDeclared, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
