package handlers

import (
	"net/http"

	"github.com/racsaibot-coder/rich-aroma-os/config"
	"github.com/racsaibot-coder/rich-aroma-os/middleware"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	PIN        string `json:"pin" binding:"required,min=4"`
}

// Login authenticates a staff member by ID and PIN and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var emp models.Employee
	if err := config.DB.First(&emp, "id = ? AND active = ?", req.EmployeeID, true).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid employee or PIN"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(req.PIN)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid employee or PIN"})
		return
	}

	token, err := middleware.GenerateToken(&emp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"employee": gin.H{
			"id":   emp.ID,
			"name": emp.Name,
			"role": emp.Role,
		},
	})
}
