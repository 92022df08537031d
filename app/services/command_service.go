package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"autoglm-helper/app/clients"
	"autoglm-helper/app/domains"
	"autoglm-helper/app/utils"
)

// CommandService handles command and history operations.
// Every read-modify-write of a command row happens under mu.
type CommandService struct {
	storage clients.StorageAdapter
	mu      sync.Mutex
	now     func() time.Time
}

// NewCommandService creates a new command service
func NewCommandService(storage clients.StorageAdapter) *CommandService {
	return &CommandService{storage: storage, now: time.Now}
}

// ListCommands returns all commands, most recently updated first
func (s *CommandService) ListCommands(ctx context.Context) ([]domains.Command, error) {
	commands, err := s.storage.ListCommands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}
	return commands, nil
}

// AddCommand stores a new command under a fresh ID and returns it with the updated list
func (s *CommandService) AddCommand(ctx context.Context, title, content string) (*domains.Command, []domains.Command, error) {
	cmd := &domains.Command{
		ID:        utils.GenerateUUID(),
		Title:     title,
		Content:   content,
		UpdatedAt: s.now(),
	}

	s.mu.Lock()
	err := s.storage.SaveCommand(ctx, cmd)
	s.mu.Unlock()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add command: %w", err)
	}

	commands, err := s.ListCommands(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cmd, commands, nil
}

// UpdateCommand overwrites the title and content of id, creating the row if absent
func (s *CommandService) UpdateCommand(ctx context.Context, id, title, content string) ([]domains.Command, error) {
	s.mu.Lock()
	err := func() error {
		cmd, err := s.storage.GetCommand(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get command %s: %w", id, err)
		}
		if cmd == nil {
			cmd = &domains.Command{ID: id}
		}
		cmd.Title = title
		cmd.Content = content
		cmd.UpdatedAt = s.now()
		if err := s.storage.SaveCommand(ctx, cmd); err != nil {
			return fmt.Errorf("failed to update command %s: %w", id, err)
		}
		return nil
	}()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return s.ListCommands(ctx)
}

// DeleteCommand removes id and returns the updated list
func (s *CommandService) DeleteCommand(ctx context.Context, id string) ([]domains.Command, error) {
	s.mu.Lock()
	err := s.storage.DeleteCommand(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to delete command %s: %w", id, err)
	}

	return s.ListCommands(ctx)
}

// UpsertCommand merges incoming into the stored row with the same ID.
// It returns the persisted row, or nil when the merged row would have
// neither title nor content and was therefore not stored.
func (s *CommandService) UpsertCommand(ctx context.Context, incoming *domains.Command) (*domains.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.upsertLocked(ctx, incoming)
}

func (s *CommandService) upsertLocked(ctx context.Context, incoming *domains.Command) (*domains.Command, error) {
	if strings.TrimSpace(incoming.ID) == "" {
		incoming.ID = utils.GenerateUUID()
	}

	existing, err := s.storage.GetCommand(ctx, incoming.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get command %s: %w", incoming.ID, err)
	}

	merged := MergeCommand(existing, incoming, s.now())
	if merged == nil {
		return nil, nil
	}

	if err := s.storage.SaveCommand(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to save command %s: %w", merged.ID, err)
	}
	return merged, nil
}

// MergeCommand applies incoming on top of existing (which may be nil).
// Non-blank incoming title/content win, blank ones keep the existing values.
// LastResult and LastRunAt are taken from incoming when set. A zero
// incoming UpdatedAt becomes now. Returns nil if both title and content
// end up blank.
func MergeCommand(existing, incoming *domains.Command, now time.Time) *domains.Command {
	merged := &domains.Command{
		ID:         incoming.ID,
		Title:      incoming.Title,
		Content:    incoming.Content,
		UpdatedAt:  incoming.UpdatedAt,
		LastResult: incoming.LastResult,
		LastRunAt:  incoming.LastRunAt,
	}

	if existing != nil {
		if strings.TrimSpace(merged.Title) == "" {
			merged.Title = existing.Title
		}
		if strings.TrimSpace(merged.Content) == "" {
			merged.Content = existing.Content
		}
		if merged.LastResult == nil {
			merged.LastResult = existing.LastResult
		}
		if merged.LastRunAt == nil {
			merged.LastRunAt = existing.LastRunAt
		}
	}

	if merged.UpdatedAt.IsZero() {
		merged.UpdatedAt = now
	}

	if merged.IsEmpty() {
		return nil
	}
	return merged
}

// AddHistory appends one history row with a generated ID and the current time
func (s *CommandService) AddHistory(ctx context.Context, commandID, contentSnapshot, result string, message, source *string) (*domains.CommandHistory, error) {
	entry := &domains.CommandHistory{
		ID:              utils.GenerateUUID(),
		CommandID:       commandID,
		ContentSnapshot: contentSnapshot,
		Result:          result,
		Message:         message,
		Source:          source,
		Timestamp:       s.now(),
	}
	if err := s.storage.InsertHistory(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add history for %s: %w", commandID, err)
	}
	return entry, nil
}

// GetHistory returns the history of a command, newest first
func (s *CommandService) GetHistory(ctx context.Context, commandID string) ([]domains.CommandHistory, error) {
	history, err := s.storage.ListHistory(ctx, commandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for %s: %w", commandID, err)
	}
	return history, nil
}

// RecordRun appends a history entry for a run and reflects it on the command:
// lastResult and lastRunAt are set and the content becomes the snapshot that ran.
// A blank snapshot defaults to the stored content; a zero timestamp to now.
func (s *CommandService) RecordRun(ctx context.Context, run *domains.CommandHistory) (*domains.CommandHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.storage.GetCommand(ctx, run.CommandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get command %s: %w", run.CommandID, err)
	}

	entry := *run
	if entry.ID == "" {
		entry.ID = utils.GenerateUUID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	if strings.TrimSpace(entry.ContentSnapshot) == "" && existing != nil {
		entry.ContentSnapshot = existing.Content
	}

	if err := s.storage.InsertHistory(ctx, &entry); err != nil {
		return nil, fmt.Errorf("failed to add history for %s: %w", entry.CommandID, err)
	}

	result := entry.Result
	runAt := entry.Timestamp
	update := &domains.Command{
		ID:         entry.CommandID,
		Content:    entry.ContentSnapshot,
		UpdatedAt:  runAt,
		LastResult: &result,
		LastRunAt:  &runAt,
	}
	if existing != nil {
		update.UpdatedAt = existing.UpdatedAt
	}
	if _, err := s.upsertLocked(ctx, update); err != nil {
		return nil, err
	}

	return &entry, nil
}
