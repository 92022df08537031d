package domains

import "time"

// Command represents a stored automation script
type Command struct {
	ID         string     `db:"id"`
	Title      string     `db:"title"`
	Content    string     `db:"content"`
	UpdatedAt  time.Time  `db:"updated_at"`
	LastResult *string    `db:"last_result"`
	LastRunAt  *time.Time `db:"last_run_at"`
}

// IsEmpty reports whether both title and content are blank
func (c *Command) IsEmpty() bool {
	return isBlank(c.Title) && isBlank(c.Content)
}
