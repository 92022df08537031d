package handlers

import (
	"log"
	"net/http"

	"autoglm-helper/app/dto"
	"autoglm-helper/app/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles token management
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RotateToken issues a new token; the old one stops working immediately
func (h *AuthHandler) RotateToken(c *gin.Context) {
	token, err := h.auth.RotateToken()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	issuedAt, err := h.auth.TokenIssuedAt()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	log.Printf("[auth] token rotated (%s)", services.MaskToken(token))
	respondJSON(c, http.StatusOK, dto.TokenResponse{Success: true, Token: token, IssuedAt: issuedAt.UnixMilli()})
}
