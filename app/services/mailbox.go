package services

import (
	"sync"

	"autoglm-helper/app/domains"
)

// Mailbox is a single-slot, last-writer-wins cell for the pending command
type Mailbox struct {
	mu      sync.Mutex
	pending *domains.PendingCommand
}

// NewMailbox creates an empty mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Put replaces the current value unconditionally
func (m *Mailbox) Put(cmd domains.PendingCommand) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = &cmd
}

// Take returns the current value, removing it in the same critical section when consume is set
func (m *Mailbox) Take(consume bool) (domains.PendingCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		return domains.PendingCommand{}, false
	}
	cmd := *m.pending
	if consume {
		m.pending = nil
	}
	return cmd, true
}
