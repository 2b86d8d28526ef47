// Package config implements the persisted shell configuration: a small YAML
// file of named sections with typed accessors, loaded once at startup and
// written back on exit, plus a change watcher for edits made outside the
// shell.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location when set.
const EnvConfigPath = "AWS_SHELL_CONFIG"

// Store is the file-backed configuration: named sections of key/value pairs.
type Store struct {
	path     string
	sections map[string]*Section
}

// Section is one named group of settings. Accessors are forgiving about the
// on-disk representation: booleans round-trip as YAML bools but hand-edited
// files may carry strings.
type Section struct {
	values map[string]any
}

// DataDir returns the directory holding the config file, history, and logs.
func DataDir() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return filepath.Dir(p), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".aws", "shell"), nil
}

// DefaultPath returns the config file path, honoring EnvConfigPath.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "awsshellrc"), nil
}

// Load reads the store at path. A missing file yields an empty store that
// will be created on the first Write.
func Load(path string) (*Store, error) {
	s := &Store{path: path, sections: map[string]*Section{}}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := s.replaceFrom(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file the store reads from and writes to.
func (s *Store) Path() string { return s.path }

// Section returns the named section, creating it if absent. The returned
// pointer stays valid across Reload.
func (s *Store) Section(name string) *Section {
	sec, ok := s.sections[name]
	if !ok {
		sec = &Section{values: map[string]any{}}
		s.sections[name] = sec
	}
	return sec
}

// Reload re-reads the file, updating existing sections in place so callers
// holding a *Section observe the new values.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	return s.replaceFrom(data)
}

func (s *Store) replaceFrom(data []byte) error {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	for name, values := range raw {
		sec := s.Section(name)
		sec.values = map[string]any{}
		for k, v := range values {
			sec.values[k] = v
		}
	}
	return nil
}

// Write persists all sections, creating the parent directory if needed.
func (s *Store) Write() error {
	raw := map[string]map[string]any{}
	for name, sec := range s.sections {
		raw[name] = sec.values
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Bool reads key as a boolean. Unset or unparseable values are false.
func (sec *Section) Bool(key string) bool {
	switch v := sec.values[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.ToLower(v))
		return err == nil && b
	case int:
		return v != 0
	default:
		return false
	}
}

// SetBool writes key as a boolean.
func (sec *Section) SetBool(key string, v bool) {
	sec.values[key] = v
}

// String reads key as a string; non-string scalars are formatted.
func (sec *Section) String(key string) string {
	switch v := sec.values[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// SetString writes key as a string.
func (sec *Section) SetString(key, v string) {
	sec.values[key] = v
}

// Has reports whether key is present.
func (sec *Section) Has(key string) bool {
	_, ok := sec.values[key]
	return ok
}

// EnsureDefaults sets each default value whose key is not yet present.
func (sec *Section) EnsureDefaults(defaults map[string]any) {
	for k, v := range defaults {
		if _, ok := sec.values[k]; !ok {
			sec.values[k] = v
		}
	}
}

// Keys returns the section's keys in sorted order.
func (sec *Section) Keys() []string {
	keys := make([]string, 0, len(sec.values))
	for k := range sec.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
