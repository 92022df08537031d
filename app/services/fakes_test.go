package services

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"autoglm-helper/app/domains"
)

type memStorage struct {
	mu       sync.Mutex
	commands map[string]domains.Command
	history  []domains.CommandHistory
	failSave bool
}

func newMemStorage() *memStorage {
	return &memStorage{commands: make(map[string]domains.Command)}
}

func (m *memStorage) ListCommands(_ context.Context) ([]domains.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domains.Command, 0, len(m.commands))
	for _, c := range m.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStorage) GetCommand(_ context.Context, id string) (*domains.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.commands[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memStorage) SaveCommand(_ context.Context, cmd *domains.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSave {
		return errors.New("disk full")
	}
	m.commands[cmd.ID] = *cmd
	return nil
}

func (m *memStorage) DeleteCommand(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.commands, id)
	return nil
}

func (m *memStorage) InsertHistory(_ context.Context, entry *domains.CommandHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = append(m.history, *entry)
	return nil
}

func (m *memStorage) ListHistory(_ context.Context, commandID string) ([]domains.CommandHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domains.CommandHistory{}
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].CommandID == commandID {
			out = append(out, m.history[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (m *memStorage) Ping(_ context.Context) error { return nil }

func (m *memStorage) Close() error { return nil }

type memPrefs struct {
	mu      sync.Mutex
	strings map[string]string
	writes  int
}

func newMemPrefs() *memPrefs {
	return &memPrefs{strings: make(map[string]string)}
}

func (p *memPrefs) GetString(key, defaultValue string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v, ok := p.strings[key]; ok {
		return v, nil
	}
	return defaultValue, nil
}

func (p *memPrefs) PutString(key, value string) error {
	return p.PutStrings(map[string]string{key: value})
}

func (p *memPrefs) PutStrings(values map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for k, v := range values {
		p.strings[k] = v
	}
	p.writes++
	return nil
}

func (p *memPrefs) GetLong(key string, defaultValue int64) (int64, error) {
	s, err := p.GetString(key, "")
	if err != nil || s == "" {
		return defaultValue, err
	}
	return strconv.ParseInt(s, 10, 64)
}

func (p *memPrefs) PutLong(key string, value int64) error {
	return p.PutString(key, strconv.FormatInt(value, 10))
}

func strPtr(s string) *string { return &s }
