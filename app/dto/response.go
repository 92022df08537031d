package dto

// ErrorResponse is the body for auth, routing and unexpected failures
type ErrorResponse struct {
	Error string `json:"error"`
}

// FailureResponse is the body for validation and capability failures
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse acknowledges an action
type SuccessResponse struct {
	Success bool `json:"success"`
}

// StatusResponse describes the running service
type StatusResponse struct {
	Status               string `json:"status"`
	Service              string `json:"service"`
	Version              string `json:"version"`
	AccessibilityEnabled bool   `json:"accessibility_enabled"`
}

// ScreenshotResponse carries a captured screen image
type ScreenshotResponse struct {
	Success bool   `json:"success"`
	Image   string `json:"image"`
	Format  string `json:"format"`
}

// ConfigResponse is the stored provider configuration with defaults applied
type ConfigResponse struct {
	APIKey       string `json:"api_key"`
	BaseURL      string `json:"base_url"`
	Model        string `json:"model"`
	Provider     string `json:"provider"`
	ActivePreset string `json:"active_preset"`
}

// ConfigUpdateResponse returns the settings after an update
type ConfigUpdateResponse struct {
	Success bool           `json:"success"`
	Config  ConfigResponse `json:"config"`
}

// PresetListResponse lists saved provider presets
type PresetListResponse struct {
	Success      bool             `json:"success"`
	ActivePreset string           `json:"active_preset"`
	Presets      []PresetResponse `json:"presets"`
}

// PresetResponse is a saved provider preset
type PresetResponse struct {
	Name     string `json:"name"`
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
}

// PresetSavedResponse returns a newly saved preset
type PresetSavedResponse struct {
	Success bool           `json:"success"`
	Preset  PresetResponse `json:"preset"`
}

// CommandResponse is the wire form of a stored command.
// LastResult and LastRunAt are null until the command has run.
type CommandResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	UpdatedAt  int64   `json:"updatedAt"`
	LastResult *string `json:"lastResult"`
	LastRunAt  *int64  `json:"lastRunAt"`
}

// CommandListResponse lists stored commands, most recently updated first
type CommandListResponse struct {
	Success  bool              `json:"success"`
	Commands []CommandResponse `json:"commands"`
}

// CommandSavedResponse returns a command written by POST /commands
type CommandSavedResponse struct {
	Success bool            `json:"success"`
	ID      string          `json:"id"`
	Command CommandResponse `json:"command"`
}

// PendingCommandResponse is the mailbox value, flattened into the envelope
type PendingCommandResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt"`
}

// EmptyMailboxResponse reports that nothing is pending
type EmptyMailboxResponse struct {
	Success bool `json:"success"`
	Empty   bool `json:"empty"`
}

// HistoryEntryResponse is the wire form of a history row
type HistoryEntryResponse struct {
	ID              string  `json:"id"`
	CommandID       string  `json:"commandId"`
	ContentSnapshot string  `json:"contentSnapshot"`
	Result          string  `json:"result"`
	Message         *string `json:"message"`
	Source          *string `json:"source"`
	Timestamp       int64   `json:"timestamp"`
}

// HistoryListResponse lists the runs of a command, newest first
type HistoryListResponse struct {
	Success bool                   `json:"success"`
	History []HistoryEntryResponse `json:"history"`
}

// HistorySavedResponse returns the recorded history row
type HistorySavedResponse struct {
	Success bool                 `json:"success"`
	Entry   HistoryEntryResponse `json:"entry"`
}

// TokenResponse returns a newly issued auth token
type TokenResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	IssuedAt int64  `json:"issuedAt"`
}

// HealthResponse represents a health or readiness probe result
type HealthResponse struct {
	Status string `json:"status"`
}
