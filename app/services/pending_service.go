package services

import (
	"context"
	"fmt"
	"strings"

	"autoglm-helper/app/domains"
	"autoglm-helper/app/utils"
)

// PendingService hands one command from an HTTP producer to the polling agent
type PendingService struct {
	commands *CommandService
	mailbox  *Mailbox
}

// NewPendingService creates a new pending-command service
func NewPendingService(commands *CommandService, mailbox *Mailbox) *PendingService {
	return &PendingService{commands: commands, mailbox: mailbox}
}

// Push persists the command and then places it in the mailbox, replacing any previous value
func (s *PendingService) Push(ctx context.Context, cmd domains.PendingCommand) (domains.PendingCommand, error) {
	if strings.TrimSpace(cmd.Content) == "" {
		return domains.PendingCommand{}, utils.NewValidationError("content", "is required")
	}
	if strings.TrimSpace(cmd.ID) == "" {
		cmd.ID = utils.GenerateUUID()
	}
	if cmd.UpdatedAt.IsZero() {
		cmd.UpdatedAt = s.commands.now()
	}

	// the mailbox holds the value persisted last
	s.commands.mu.Lock()
	defer s.commands.mu.Unlock()

	stored, err := s.commands.upsertLocked(ctx, cmd.ToCommand())
	if err != nil {
		return domains.PendingCommand{}, fmt.Errorf("failed to persist pending command: %w", err)
	}
	if stored != nil {
		cmd.Title = stored.Title
	}

	s.mailbox.Put(cmd)
	return cmd, nil
}

// Pull returns the pending command, if any, removing it when consume is set
func (s *PendingService) Pull(consume bool) (domains.PendingCommand, bool) {
	return s.mailbox.Take(consume)
}
