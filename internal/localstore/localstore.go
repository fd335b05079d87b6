package localstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Key names a persisted value.
type Key string

// Known keys.
const (
	KeyFavorites Key = "favorites"
	KeyCart      Key = "cart"
)

const (
	defaultStatePath = "~/.local/share/restyle/state.toml"
	defaultTheme     = "Dracula"

	// DefaultTTLDays is the soft-expiry window for anonymous
	// favorites and cart lists.
	DefaultTTLDays = 7
)

// entry is one TTL-stamped id list inside the state file.
type entry struct {
	IDs     []string  `toml:"ids"`
	Written time.Time `toml:"written"`
	TTLDays int       `toml:"ttl_days"`
}

type fileData struct {
	Theme   string           `toml:"theme"`
	Entries map[string]entry `toml:"entries"`
}

// Store reads and writes the on-disk state file. The zero value is not
// usable; construct with New.
type Store struct {
	path string
	now  func() time.Time
}

// DefaultPath returns the default state file path.
func DefaultPath() string {
	return defaultStatePath
}

// New builds a Store bound to the given path. An empty path uses the
// default location.
func New(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: resolved, now: time.Now}, nil
}

// ReadIDs returns the id list stored under key. Missing files, decode
// failures, unknown keys, and expired entries all yield nil; the entry
// is unreadable past its TTL rather than merely re-stamped.
func (s *Store) ReadIDs(key Key) []string {
	data := s.load()
	e, ok := data.Entries[string(key)]
	if !ok {
		return nil
	}
	if e.TTLDays > 0 {
		expiry := e.Written.Add(time.Duration(e.TTLDays) * 24 * time.Hour)
		if s.now().After(expiry) {
			return nil
		}
	}
	if len(e.IDs) == 0 {
		return nil
	}
	dup := make([]string, len(e.IDs))
	copy(dup, e.IDs)
	return dup
}

// WriteIDs stores the id list under key, re-stamping the write time.
func (s *Store) WriteIDs(key Key, ids []string, ttlDays int) error {
	data := s.load()
	if data.Entries == nil {
		data.Entries = make(map[string]entry)
	}
	data.Entries[string(key)] = entry{
		IDs:     ids,
		Written: s.now(),
		TTLDays: ttlDays,
	}
	return s.save(data)
}

// Theme returns the persisted theme name, falling back to the default.
func (s *Store) Theme() string {
	data := s.load()
	if strings.TrimSpace(data.Theme) == "" {
		return defaultTheme
	}
	return data.Theme
}

// SetTheme persists the theme name.
func (s *Store) SetTheme(name string) error {
	data := s.load()
	data.Theme = name
	return s.save(data)
}

// load reads the state file, degrading to an empty state on any error.
func (s *Store) load() fileData {
	var data fileData
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fileData{}
	}
	if err := toml.Unmarshal(raw, &data); err != nil {
		return fileData{}
	}
	return data
}

func (s *Store) save(data fileData) error {
	raw, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultStatePath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
