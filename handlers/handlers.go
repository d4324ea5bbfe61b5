package handlers

import (
	"github.com/racsaibot-coder/rich-aroma-os/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps a typed business error onto the wire.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
}
