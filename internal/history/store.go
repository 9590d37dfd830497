package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes a History at a fixed path. Every call goes to disk;
// nothing is cached between calls.
type Store struct {
	path string // full path to the history file
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the history file path.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the directory holding the history file.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// EnsureDir creates the directory holding the history file.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return nil
}

// Load reads the history file. A missing, unreadable or malformed file yields
// an empty History.
func (s *Store) Load() History {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return History{}
	}
	return Decode(data)
}

// Save marshals h to JSON and writes it atomically via a temp file + os.Rename.
func (s *Store) Save(h History) (err error) {
	if h.Entries == nil {
		h.Entries = []Entry{}
	}
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}

	// The temp file lives in the same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(s.Dir(), ".glance-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist history: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// currentSchema mirrors History with pointer fields so that absent keys can
// be told apart from zero values.
type currentSchema struct {
	Entries    *[]entrySchema `json:"entries"`
	Selected   *int           `json:"selected"`
	LastScroll float64        `json:"last_scroll"`
}

// entrySchema is one entry object. The legacy format is a single bare
// entrySchema.
type entrySchema struct {
	ID   string   `json:"id"`
	Path *string  `json:"path"`
	Name *string  `json:"name"`
	Size *int64   `json:"size"`
	Time *float64 `json:"time"`
}

// entry converts raw to an Entry, failing when a required field is absent.
func (raw entrySchema) entry() (Entry, bool) {
	if raw.Path == nil || raw.Name == nil || raw.Size == nil || raw.Time == nil {
		return Entry{}, false
	}
	return Entry{
		ID:   raw.ID,
		Path: *raw.Path,
		Name: *raw.Name,
		Size: *raw.Size,
		Time: *raw.Time,
	}, true
}

// Decode parses data as the current schema, then as the legacy single-entry
// schema, and falls back to an empty History.
func Decode(data []byte) History {
	if h, ok := decodeCurrent(data); ok {
		return h
	}
	if h, ok := decodeLegacy(data); ok {
		return h
	}
	return History{}
}

func decodeCurrent(data []byte) (History, bool) {
	var raw currentSchema
	if err := json.Unmarshal(data, &raw); err != nil {
		return History{}, false
	}
	if raw.Entries == nil || raw.Selected == nil {
		return History{}, false
	}
	entries := make([]Entry, 0, len(*raw.Entries))
	for _, re := range *raw.Entries {
		e, ok := re.entry()
		if !ok {
			return History{}, false
		}
		entries = append(entries, e)
	}
	h := History{
		Entries:    entries,
		Selected:   *raw.Selected,
		LastScroll: raw.LastScroll,
	}
	h.clamp()
	return h, true
}

func decodeLegacy(data []byte) (History, bool) {
	var raw entrySchema
	if err := json.Unmarshal(data, &raw); err != nil {
		return History{}, false
	}
	e, ok := raw.entry()
	if !ok {
		return History{}, false
	}
	return History{Entries: []Entry{e}}, true
}
