package dto

// TapRequest represents a tap at screen coordinates
type TapRequest struct {
	X *int `json:"x" validate:"required"`
	Y *int `json:"y" validate:"required"`
}

// SwipeRequest represents a swipe gesture; Duration defaults to DefaultSwipeDurationMs
type SwipeRequest struct {
	X1       *int `json:"x1" validate:"required"`
	Y1       *int `json:"y1" validate:"required"`
	X2       *int `json:"x2" validate:"required"`
	Y2       *int `json:"y2" validate:"required"`
	Duration *int `json:"duration,omitempty" validate:"omitempty,min=0"`
}

// DefaultSwipeDurationMs is used when a swipe request carries no duration
const DefaultSwipeDurationMs = 300

// DurationMs returns the requested duration or the default
func (r *SwipeRequest) DurationMs() int {
	if r.Duration == nil {
		return DefaultSwipeDurationMs
	}
	return *r.Duration
}

// InputRequest represents text to type into the focused field.
// Empty text is passed through and reported by the device as a failed action.
type InputRequest struct {
	Text string `json:"text"`
}

// ConfigUpdateRequest carries the provider fields to update; absent fields are left alone
type ConfigUpdateRequest struct {
	APIKey   *string `json:"api_key,omitempty"`
	BaseURL  *string `json:"base_url,omitempty"`
	Model    *string `json:"model,omitempty"`
	Provider *string `json:"provider,omitempty"`
}

// PresetRequest names a provider preset
type PresetRequest struct {
	Name string `json:"name" validate:"notblank"`
}

// PushCommandRequest represents a command pushed to the pending mailbox
type PushCommandRequest struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content" validate:"notblank"`
	UpdatedAt *int64 `json:"updatedAt,omitempty"`
}

// UpsertCommandRequest represents a full command sent by the app or a sync client
type UpsertCommandRequest struct {
	ID         string  `json:"id,omitempty"`
	Title      string  `json:"title" validate:"notblank"`
	Content    string  `json:"content" validate:"notblank"`
	UpdatedAt  *int64  `json:"updatedAt,omitempty"`
	LastResult *string `json:"lastResult,omitempty"`
	LastRunAt  *int64  `json:"lastRunAt,omitempty"`
}

// UpdateCommandRequest overwrites the title and content of an existing command
type UpdateCommandRequest struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

// HistoryRequest records one run of a command
type HistoryRequest struct {
	CommandID       string  `json:"commandId" validate:"notblank"`
	Result          string  `json:"result" validate:"notblank"`
	ContentSnapshot string  `json:"contentSnapshot,omitempty"`
	Message         *string `json:"message,omitempty"`
	Source          *string `json:"source,omitempty"`
	Timestamp       *int64  `json:"timestamp,omitempty"`
}
