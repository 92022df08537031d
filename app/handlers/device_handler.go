package handlers

import (
	"net/http"

	"autoglm-helper/app/dto"
	"autoglm-helper/app/services"

	"github.com/gin-gonic/gin"
)

// Service identity reported by /status
const (
	ServiceName    = "AutoGLM Helper"
	ServiceVersion = "1.0.0"
)

// DeviceHandler exposes the automation capability over HTTP
type DeviceHandler struct {
	automation *services.AutomationService
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(automation *services.AutomationService) *DeviceHandler {
	return &DeviceHandler{automation: automation}
}

// Status reports service identity and accessibility state
func (h *DeviceHandler) Status(c *gin.Context) {
	respondJSON(c, http.StatusOK, dto.StatusResponse{
		Status:               "ok",
		Service:              ServiceName,
		Version:              ServiceVersion,
		AccessibilityEnabled: h.automation.IsAccessibilityEnabled(c.Request.Context()),
	})
}

// Screenshot captures the screen
func (h *DeviceHandler) Screenshot(c *gin.Context) {
	image, ok := h.automation.TakeScreenshot(c.Request.Context())
	if !ok {
		respondFailure(c, http.StatusInternalServerError, "Failed to take screenshot")
		return
	}
	respondJSON(c, http.StatusOK, dto.ScreenshotResponse{Success: true, Image: image, Format: "base64"})
}

// Tap performs a tap
func (h *DeviceHandler) Tap(c *gin.Context) {
	var req dto.TapRequest
	if !bindRequest(c, &req) {
		return
	}
	h.respondAction(c, h.automation.Tap(c.Request.Context(), *req.X, *req.Y), "tap")
}

// Swipe performs a swipe
func (h *DeviceHandler) Swipe(c *gin.Context) {
	var req dto.SwipeRequest
	if !bindRequest(c, &req) {
		return
	}
	ok := h.automation.Swipe(c.Request.Context(), *req.X1, *req.Y1, *req.X2, *req.Y2, req.DurationMs())
	h.respondAction(c, ok, "swipe")
}

// Input types text
func (h *DeviceHandler) Input(c *gin.Context) {
	var req dto.InputRequest
	if !bindRequest(c, &req) {
		return
	}
	h.respondAction(c, h.automation.Input(c.Request.Context(), req.Text), "input")
}

// respondAction reports a capability result; a failed action is still a 200
func (h *DeviceHandler) respondAction(c *gin.Context, ok bool, action string) {
	if !ok {
		respondFailure(c, http.StatusOK, "Failed to perform "+action)
		return
	}
	respondJSON(c, http.StatusOK, dto.SuccessResponse{Success: true})
}
