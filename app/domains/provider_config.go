package domains

// Defaults applied to unset or blank provider settings
const (
	DefaultBaseURL  = "https://api.grsai.com/v1"
	DefaultModel    = "gpt-4-vision-preview"
	DefaultProvider = "grs"
)

// ProviderConfig holds the LLM provider settings consumed by the phone agent
type ProviderConfig struct {
	APIKey       string `json:"api_key"`
	BaseURL      string `json:"base_url"`
	Model        string `json:"model"`
	Provider     string `json:"provider"`
	ActivePreset string `json:"active_preset"`
}

// Preset is a named snapshot of provider settings
type Preset struct {
	Name     string `json:"name"`
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
}
