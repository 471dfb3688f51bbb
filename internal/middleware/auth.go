// Package middleware contains Gin middleware for the JSON API.
// Middleware in Gin is a handler that runs before (or after) the route handler.
// It calls c.Next() to proceed or c.Abort() to stop the chain.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyAPIKey is where APIKeyAuth stores the caller's key for later middleware.
const ContextKeyAPIKey = "api_key"

// APIKeyAuth returns middleware that validates API keys sent via the X-API-Key
// header or the api_key query param.
//
// With no keys configured the API is open: the middleware passes every request
// through without setting a key, and RateLimit falls back to the client IP.
//
// Go closures: APIKeyAuth runs once at route setup and returns the handler.
// The returned function captures keySet, so the set is built only once.
func APIKeyAuth(validKeys []string) gin.HandlerFunc {
	// Go has no built-in set type; map[string]struct{} is the idiom, and
	// struct{} takes zero bytes.
	keySet := make(map[string]struct{}, len(validKeys))
	for _, k := range validKeys {
		if k != "" {
			keySet[k] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if len(keySet) == 0 {
			c.Next()
			return
		}

		key := requestKey(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing API key",
			})
			return
		}

		if _, ok := keySet[key]; !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid API key",
			})
			return
		}

		// gin.Context doubles as a request-scoped key-value store; RateLimit
		// reads the key back from it.
		c.Set(ContextKeyAPIKey, key)
		c.Next()
	}
}

func requestKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	return c.Query("api_key")
}
