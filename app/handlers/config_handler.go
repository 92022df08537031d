package handlers

import (
	"errors"
	"net/http"

	"autoglm-helper/app/dto"
	"autoglm-helper/app/services"

	"github.com/gin-gonic/gin"
)

// ConfigHandler handles provider settings and presets
type ConfigHandler struct {
	config *services.ConfigService
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(config *services.ConfigService) *ConfigHandler {
	return &ConfigHandler{config: config}
}

// GetConfig returns the provider settings with defaults applied
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.config.GetConfig()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, dto.NewConfigResponse(*cfg))
}

// UpdateConfig updates the fields present in the body
func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	var req dto.ConfigUpdateRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := h.config.UpdateConfig(services.ConfigUpdate{
		APIKey:   req.APIKey,
		BaseURL:  req.BaseURL,
		Model:    req.Model,
		Provider: req.Provider,
	}); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	cfg, err := h.config.GetConfig()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, dto.ConfigUpdateResponse{Success: true, Config: dto.NewConfigResponse(*cfg)})
}

// ListPresets returns the saved presets and the active one
func (h *ConfigHandler) ListPresets(c *gin.Context) {
	presets, active, err := h.config.ListPresets()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	resp := dto.PresetListResponse{
		Success:      true,
		ActivePreset: active,
		Presets:      make([]dto.PresetResponse, len(presets)),
	}
	for i, p := range presets {
		resp.Presets[i] = dto.NewPresetResponse(p)
	}
	respondJSON(c, http.StatusOK, resp)
}

// SavePreset stores the current settings under a name
func (h *ConfigHandler) SavePreset(c *gin.Context) {
	var req dto.PresetRequest
	if !bindRequest(c, &req) {
		return
	}

	preset, err := h.config.SavePreset(req.Name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, dto.PresetSavedResponse{Success: true, Preset: dto.NewPresetResponse(*preset)})
}

// ActivatePreset applies a saved preset
func (h *ConfigHandler) ActivatePreset(c *gin.Context) {
	var req dto.PresetRequest
	if !bindRequest(c, &req) {
		return
	}

	cfg, err := h.config.ActivatePreset(req.Name)
	if err != nil {
		if errors.Is(err, services.ErrPresetNotFound) {
			respondFailure(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, dto.ConfigUpdateResponse{Success: true, Config: dto.NewConfigResponse(*cfg)})
}
