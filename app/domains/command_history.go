package domains

import (
	"strings"
	"time"
)

// CommandHistory represents one recorded run of a command
type CommandHistory struct {
	ID              string    `db:"id"`
	CommandID       string    `db:"command_id"`
	ContentSnapshot string    `db:"content_snapshot"`
	Result          string    `db:"result"`
	Message         *string   `db:"message"`
	Source          *string   `db:"source"`
	Timestamp       time.Time `db:"timestamp"`
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
