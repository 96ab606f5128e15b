package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/travelogue/internal/constants"
)

type jsonEntry struct {
	Value     json.RawMessage `json:"value"`
	UpdatedAt string          `json:"updated_at"`
}

type jsonFile struct {
	Version int                          `json:"version"`
	Values  map[string]jsonEntry         `json:"values"`
	History map[string][]json.RawMessage `json:"history,omitempty"` // oldest first
}

// JSONStore keeps every key in a single JSON document on disk
type JSONStore struct {
	path  string
	clock clockwork.Clock
	file  *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path:  path,
		clock: clockwork.NewRealClock(),
	}
}

// WithClock sets the clock used for updated_at timestamps
func (s *JSONStore) WithClock(c clockwork.Clock) *JSONStore {
	s.clock = c
	return s
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.file = &jsonFile{
		Version: 1,
		Values:  make(map[string]jsonEntry),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	f := &jsonFile{}
	if err := json.Unmarshal(data, f); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if f.Values == nil {
		f.Values = make(map[string]jsonEntry)
	}
	if f.History == nil {
		f.History = make(map[string][]json.RawMessage)
	}
	s.file = f
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temporary file and renames it over the store
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	e, ok := s.file.Values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(e.Value), nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}

	if prev, ok := s.file.Values[key]; ok {
		if s.file.History == nil {
			s.file.History = make(map[string][]json.RawMessage)
		}
		h := append(s.file.History[key], prev.Value)
		if len(h) > MaxHistory {
			h = h[len(h)-MaxHistory:]
		}
		s.file.History[key] = h
	}

	s.file.Values[key] = jsonEntry{
		Value:     json.RawMessage(append([]byte(nil), value...)),
		UpdatedAt: s.clock.Now().UTC().Format(constants.TimestampFormat),
	}
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.file.Values[key]; !ok {
		return ErrNotFound
	}
	delete(s.file.Values, key)
	delete(s.file.History, key)
	return s.save()
}

func (s *JSONStore) Undo(key string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	h := s.file.History[key]
	if len(h) == 0 {
		return ErrNoHistory
	}
	s.file.Values[key] = jsonEntry{
		Value:     h[len(h)-1],
		UpdatedAt: s.clock.Now().UTC().Format(constants.TimestampFormat),
	}
	s.file.History[key] = h[:len(h)-1]
	return s.save()
}

func (s *JSONStore) HistoryLen(key string) (int, error) {
	if s.file == nil {
		return 0, fmt.Errorf("storage not loaded")
	}
	return len(s.file.History[key]), nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
