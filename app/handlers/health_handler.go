package handlers

import (
	"context"
	"net/http"
	"time"

	"autoglm-helper/app/clients"
	"autoglm-helper/app/dto"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	storage clients.StorageAdapter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage clients.StorageAdapter) *HealthHandler {
	return &HealthHandler{storage: storage}
}

// Health handles health check
func (h *HealthHandler) Health(c *gin.Context) {
	respondJSON(c, http.StatusOK, dto.HealthResponse{Status: "healthy"})
}

// Ready reports whether the command store is reachable
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, dto.HealthResponse{Status: "ready"})
}
