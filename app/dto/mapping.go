package dto

import (
	"time"

	"autoglm-helper/app/domains"
)

// FromMillis converts an optional epoch-millisecond value; nil yields the zero time
func FromMillis(ms *int64) time.Time {
	if ms == nil {
		return time.Time{}
	}
	return time.UnixMilli(*ms)
}

// FromMillisPtr converts an optional epoch-millisecond value, keeping nil as nil
func FromMillisPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}

func toMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// NewCommandResponse maps a command to its wire form
func NewCommandResponse(c domains.Command) CommandResponse {
	return CommandResponse{
		ID:         c.ID,
		Title:      c.Title,
		Content:    c.Content,
		UpdatedAt:  c.UpdatedAt.UnixMilli(),
		LastResult: c.LastResult,
		LastRunAt:  toMillisPtr(c.LastRunAt),
	}
}

// NewCommandListResponse maps a command list, never producing a null array
func NewCommandListResponse(commands []domains.Command) CommandListResponse {
	out := make([]CommandResponse, len(commands))
	for i, c := range commands {
		out[i] = NewCommandResponse(c)
	}
	return CommandListResponse{Success: true, Commands: out}
}

// NewHistoryEntryResponse maps a history row to its wire form
func NewHistoryEntryResponse(h domains.CommandHistory) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:              h.ID,
		CommandID:       h.CommandID,
		ContentSnapshot: h.ContentSnapshot,
		Result:          h.Result,
		Message:         h.Message,
		Source:          h.Source,
		Timestamp:       h.Timestamp.UnixMilli(),
	}
}

// NewConfigResponse maps provider settings to their wire form
func NewConfigResponse(c domains.ProviderConfig) ConfigResponse {
	return ConfigResponse{
		APIKey:       c.APIKey,
		BaseURL:      c.BaseURL,
		Model:        c.Model,
		Provider:     c.Provider,
		ActivePreset: c.ActivePreset,
	}
}

// NewPresetResponse maps a preset to its wire form
func NewPresetResponse(p domains.Preset) PresetResponse {
	return PresetResponse{
		Name:     p.Name,
		APIKey:   p.APIKey,
		BaseURL:  p.BaseURL,
		Model:    p.Model,
		Provider: p.Provider,
	}
}

// ToPendingCommand maps a push request to the mailbox value
func (r *PushCommandRequest) ToPendingCommand() domains.PendingCommand {
	return domains.PendingCommand{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		UpdatedAt: FromMillis(r.UpdatedAt),
	}
}

// ToCommand maps an upsert request to a command
func (r *UpsertCommandRequest) ToCommand() *domains.Command {
	return &domains.Command{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		UpdatedAt:  FromMillis(r.UpdatedAt),
		LastResult: r.LastResult,
		LastRunAt:  FromMillisPtr(r.LastRunAt),
	}
}

// ToHistory maps a history request to a history row
func (r *HistoryRequest) ToHistory() *domains.CommandHistory {
	return &domains.CommandHistory{
		CommandID:       r.CommandID,
		ContentSnapshot: r.ContentSnapshot,
		Result:          r.Result,
		Message:         r.Message,
		Source:          r.Source,
		Timestamp:       FromMillis(r.Timestamp),
	}
}
