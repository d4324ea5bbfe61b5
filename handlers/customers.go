package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/racsaibot-coder/rich-aroma-os/config"
	"github.com/racsaibot-coder/rich-aroma-os/models"
	"github.com/racsaibot-coder/rich-aroma-os/services"

	"github.com/gin-gonic/gin"
)

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	PIN   string `json:"pin"`
}

// CreateCustomer registers a loyalty customer with the next C-number id
func CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clean := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, req.Phone)

	var existing models.Customer
	if err := config.DB.First(&existing, "phone = ?", clean).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone already registered", "customer_id": existing.ID})
		return
	}

	customer := models.Customer{
		ID:    nextCustomerID(),
		Name:  req.Name,
		Phone: clean,
		PIN:   req.PIN,
		Tier:  models.TierBronze,
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomer returns a customer with their badge and balance history
func GetCustomer(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var badges []models.CustomerBadge
	config.DB.Where("customer_id = ?", customer.ID).Find(&badges)

	var history []models.BalanceHistoryEntry
	config.DB.Where("customer_id = ?", customer.ID).Order("created_at desc").Limit(50).Find(&history)

	c.JSON(http.StatusOK, gin.H{
		"customer":        customer,
		"badges":          badges,
		"balance_history": history,
	})
}

// VerifyFounder upgrades a founding customer to VIP/gold and awards the
// founder badge (admin only)
func VerifyFounder(c *gin.Context) {
	customer, err := services.VerifyFounder(config.DB, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Founder verified", "customer": customer})
}

// nextCustomerID extends the C001 sequence from the highest existing id.
// Not race-safe, same as order numbering.
func nextCustomerID() string {
	var last models.Customer
	next := 1
	if err := config.DB.Order("id desc").First(&last).Error; err == nil {
		if n, err := strconv.Atoi(strings.TrimLeft(last.ID, "C")); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("C%03d", next)
}
