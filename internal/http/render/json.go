package render

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Thin wrappers so handlers keep a uniform response shape.

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ValidationFailed answers a 422 with the per-field messages, matching
// the payload shape of the error-handling middleware.
func ValidationFailed(c *gin.Context, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "Certains champs sont invalides.",
		"fields": fields,
	})
}
