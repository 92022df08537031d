package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"autoglm-helper/app/clients"
	"autoglm-helper/app/domains"
)

// Preference keys for provider settings
const (
	KeyAPIKey       = "api_key"
	KeyBaseURL      = "base_url"
	KeyModel        = "model"
	KeyProvider     = "provider"
	KeyActivePreset = "active_preset"
	KeyPresets      = "config_presets"
)

// ErrPresetNotFound is returned when activating an unknown preset
var ErrPresetNotFound = errors.New("preset not found")

// ConfigUpdate carries the fields present in an update request; nil means untouched
type ConfigUpdate struct {
	APIKey   *string
	BaseURL  *string
	Model    *string
	Provider *string
}

// ConfigService stores provider settings and presets in preference storage
type ConfigService struct {
	prefs clients.PreferenceStore
}

// NewConfigService creates a new config service
func NewConfigService(prefs clients.PreferenceStore) *ConfigService {
	return &ConfigService{prefs: prefs}
}

// GetConfig returns the stored settings with defaults applied
func (s *ConfigService) GetConfig() (*domains.ProviderConfig, error) {
	cfg := &domains.ProviderConfig{}
	fields := []struct {
		key    string
		def    string
		target *string
	}{
		{KeyAPIKey, "", &cfg.APIKey},
		{KeyBaseURL, domains.DefaultBaseURL, &cfg.BaseURL},
		{KeyModel, domains.DefaultModel, &cfg.Model},
		{KeyProvider, domains.DefaultProvider, &cfg.Provider},
		{KeyActivePreset, "", &cfg.ActivePreset},
	}
	for _, f := range fields {
		value, err := s.prefs.GetString(f.key, f.def)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.key, err)
		}
		if strings.TrimSpace(value) == "" {
			value = f.def
		}
		*f.target = value
	}
	return cfg, nil
}

// UpdateConfig writes the fields present in update.
// Blank base_url, model and provider reset to their defaults; api_key is stored as given.
func (s *ConfigService) UpdateConfig(update ConfigUpdate) error {
	values := make(map[string]string)
	if update.APIKey != nil {
		values[KeyAPIKey] = *update.APIKey
	}
	if update.BaseURL != nil {
		values[KeyBaseURL] = orDefault(*update.BaseURL, domains.DefaultBaseURL)
	}
	if update.Model != nil {
		values[KeyModel] = orDefault(*update.Model, domains.DefaultModel)
	}
	if update.Provider != nil {
		values[KeyProvider] = orDefault(*update.Provider, domains.DefaultProvider)
	}
	if len(values) == 0 {
		return nil
	}
	if err := s.prefs.PutStrings(values); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	return nil
}

// ListPresets returns the saved presets, most recently saved first, and the active preset name
func (s *ConfigService) ListPresets() ([]domains.Preset, string, error) {
	presets, err := s.loadPresets()
	if err != nil {
		return nil, "", err
	}
	active, err := s.prefs.GetString(KeyActivePreset, "")
	if err != nil {
		return nil, "", fmt.Errorf("failed to read active preset: %w", err)
	}
	return presets, active, nil
}

// SavePreset snapshots the current settings under name and marks it active
func (s *ConfigService) SavePreset(name string) (*domains.Preset, error) {
	name = strings.TrimSpace(name)

	cfg, err := s.GetConfig()
	if err != nil {
		return nil, err
	}
	presets, err := s.loadPresets()
	if err != nil {
		return nil, err
	}

	preset := domains.Preset{
		Name:     name,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
		Provider: cfg.Provider,
	}
	updated := []domains.Preset{preset}
	for _, p := range presets {
		if p.Name != name {
			updated = append(updated, p)
		}
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal presets: %w", err)
	}
	if err := s.prefs.PutStrings(map[string]string{
		KeyPresets:      string(data),
		KeyActivePreset: name,
	}); err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}
	return &preset, nil
}

// ActivatePreset copies the named preset into the current settings
func (s *ConfigService) ActivatePreset(name string) (*domains.ProviderConfig, error) {
	name = strings.TrimSpace(name)

	presets, err := s.loadPresets()
	if err != nil {
		return nil, err
	}
	for _, p := range presets {
		if p.Name != name {
			continue
		}
		if err := s.prefs.PutStrings(map[string]string{
			KeyAPIKey:       p.APIKey,
			KeyBaseURL:      orDefault(p.BaseURL, domains.DefaultBaseURL),
			KeyModel:        orDefault(p.Model, domains.DefaultModel),
			KeyProvider:     orDefault(p.Provider, domains.DefaultProvider),
			KeyActivePreset: name,
		}); err != nil {
			return nil, fmt.Errorf("failed to activate preset: %w", err)
		}
		return s.GetConfig()
	}
	return nil, ErrPresetNotFound
}

// loadPresets decodes the stored preset list; unreadable data counts as no presets
func (s *ConfigService) loadPresets() ([]domains.Preset, error) {
	raw, err := s.prefs.GetString(KeyPresets, "[]")
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var stored []domains.Preset
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return []domains.Preset{}, nil
	}

	presets := make([]domains.Preset, 0, len(stored))
	for _, p := range stored {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		presets = append(presets, p)
	}
	return presets, nil
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
