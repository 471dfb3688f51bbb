// Package handler contains HTTP request handlers for the search page and JSON API.
// In Gin, a handler is any function with signature func(*gin.Context).
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness and which completion backend is wired in.
// It never calls the backend: a health probe must not spend API quota.
type HealthHandler struct {
	provider string
	model    string
}

// NewHealthHandler creates a HealthHandler for the given backend.
func NewHealthHandler(provider, model string) *HealthHandler {
	return &HealthHandler{provider: provider, model: model}
}

// Healthz responds with service status.
// Route: GET /healthz
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "therapist-finder",
		"provider": h.provider,
		"model":    h.model,
	})
}
