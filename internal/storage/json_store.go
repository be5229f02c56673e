package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/waypointhq/waypoint-cli/internal/logger"
)

type jsonFile struct {
	Version int               `json:"version"`
	State   map[string]string `json:"state"`
}

// JSONStore is a single-file JSON backend, mainly for tests and debugging.
// Not safe for concurrent use by multiple processes sharing one path.
type JSONStore struct {
	stateStore
	path  string
	store *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	s := &JSONStore{path: configPath}
	s.stateStore = stateStore{kv: s}
	return s
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonFile{
		Version: 1,
		State:   make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'waypoint init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonFile{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// A corrupt file must not wedge startup; start from an empty
		// state map and let the next write repair the file.
		logger.Warn("Storage file is malformed, starting from empty state", "path", s.path, "error", err)
		s.store = &jsonFile{Version: 1}
	}

	if s.store.State == nil {
		s.store.State = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) get(key string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	return s.store.State[key], nil
}

func (s *JSONStore) set(key, value string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.State[key] = value
	return s.save()
}

func (s *JSONStore) clear() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.State = make(map[string]string)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
