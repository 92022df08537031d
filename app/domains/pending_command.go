package domains

import "time"

// PendingCommand is the value held by the pending-command mailbox
type PendingCommand struct {
	ID        string
	Title     string
	Content   string
	UpdatedAt time.Time
}

// ToCommand converts the pending value into a storable command
func (p PendingCommand) ToCommand() *Command {
	return &Command{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		UpdatedAt: p.UpdatedAt,
	}
}
