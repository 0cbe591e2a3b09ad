package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// respondError sends a client-safe error message with the given status.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// logAndRespondError logs the underlying error with request detail and
// returns only the generic message to the client.
func logAndRespondError(c *gin.Context, status int, err error, message string) {
	slog.Error(message,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
	)
	respondError(c, status, message)
}
