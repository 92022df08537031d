package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// document is the on-disk layout of the preference file
type document struct {
	Strings map[string]string `yaml:"strings,omitempty"`
	Longs   map[string]int64  `yaml:"longs,omitempty"`
}

// Store is a YAML-file backed key/value preference store.
// The file is re-read on every access so edits made by other processes
// (for example a token rotation from the CLI) are visible immediately.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a preference store at path, creating its directory
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// GetString returns the value for key, or defaultValue if unset
func (s *Store) GetString(key, defaultValue string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}
	if value, ok := doc.Strings[key]; ok {
		return value, nil
	}
	return defaultValue, nil
}

// PutString stores a string value
func (s *Store) PutString(key, value string) error {
	return s.PutStrings(map[string]string{key: value})
}

// PutStrings stores several string values in one write
func (s *Store) PutStrings(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc.Strings == nil {
		doc.Strings = make(map[string]string, len(values))
	}
	for k, v := range values {
		doc.Strings[k] = v
	}
	return s.save(doc)
}

// GetLong returns the integer value for key, or defaultValue if unset
func (s *Store) GetLong(key string, defaultValue int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return 0, err
	}
	if value, ok := doc.Longs[key]; ok {
		return value, nil
	}
	return defaultValue, nil
}

// PutLong stores an integer value
func (s *Store) PutLong(key string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc.Longs == nil {
		doc.Longs = make(map[string]int64)
	}
	doc.Longs[key] = value
	return s.save(doc)
}

func (s *Store) load() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{}, nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return &doc, nil
}

// save writes to a temp file and renames it over the old one
func (s *Store) save(doc *document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close preferences: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}
