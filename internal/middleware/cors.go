package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the API with
	// credentials. A single "*" entry reflects any Origin, which is the
	// demo default so a local client works out of the box.
	AllowedOrigins []string
}

// CORS returns middleware that answers preflight requests and sets
// response headers for allowed origins.
func CORS(config CORSConfig) gin.HandlerFunc {
	reflectAny := false
	allowedSet := make(map[string]bool)
	for _, origin := range config.AllowedOrigins {
		if origin == "*" {
			reflectAny = true
			continue
		}
		allowedSet[normalizeOrigin(origin)] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (reflectAny || allowedSet[normalizeOrigin(origin)]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(origin), "/")
}
