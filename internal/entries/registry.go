package entries

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName      = "igd-setup"
	registryFile = "entries.yaml"
)

// Registry holds all configured entries and persists them as one YAML
// document. Mutating methods only change memory; call Save to persist.
type Registry struct {
	Version int      `yaml:"version"`
	Entries []*Entry `yaml:"entries,omitempty"`

	// path is where Save writes; set by Load/LoadFrom
	path string
	mu   sync.Mutex
}

// GetConfigDir returns the OS-appropriate configuration directory for
// the application. This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/igd-setup or $HOME/.config/igd-setup
//   - macOS: $HOME/.config/igd-setup (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\igd-setup
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetRegistryPath returns the full path to the registry file
func GetRegistryPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, registryFile), nil
}

// NewRegistry creates a new empty Registry that saves to path
func NewRegistry(path string) *Registry {
	return &Registry{
		Version: 1,
		Entries: make([]*Entry, 0),
		path:    path,
	}
}

// Load loads the registry from the default platform location. A missing
// file yields a new empty registry.
func Load() (*Registry, error) {
	path, err := GetRegistryPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom loads the registry from an explicit path. A missing file
// yields a new empty registry that will save to the same path.
func LoadFrom(path string) (*Registry, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewRegistry(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse registry file: %w", err)
	}

	if registry.Version != 1 {
		return nil, fmt.Errorf("unsupported registry version: %d (expected 1)", registry.Version)
	}

	if registry.Entries == nil {
		registry.Entries = make([]*Entry, 0)
	}
	registry.path = path

	return &registry, nil
}

// Save saves the registry to disk.
// Performs an atomic write to prevent corruption on crash.
func (r *Registry) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path == "" {
		return fmt.Errorf("registry has no backing path")
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	header := []byte(`# igd-setup registry
# Configured UPnP/IGD routers. Managed by igd-setup; edit with care.
#
# Location: ` + r.path + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary registry file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save registry file: %w", err)
	}

	return nil
}

// ByUniqueID returns the entry with the given unique ID, ignored
// entries included, or nil.
func (r *Registry) ByUniqueID(uniqueID string) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.Entries {
		if e.UniqueID == uniqueID {
			return e
		}
	}
	return nil
}

// ByEntryID returns the entry with the given entry ID, or nil
func (r *Registry) ByEntryID(entryID string) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.Entries {
		if e.EntryID == entryID {
			return e
		}
	}
	return nil
}

// All returns the entries in registry order. Ignored entries are
// excluded unless includeIgnored is set.
func (r *Registry) All(includeIgnored bool) []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Ignored() && !includeIgnored {
			continue
		}
		result = append(result, e)
	}
	return result
}

// UniqueIDs returns the set of configured unique IDs. Ignored entries
// are excluded unless includeIgnored is set.
func (r *Registry) UniqueIDs(includeIgnored bool) map[string]bool {
	ids := make(map[string]bool)
	for _, e := range r.All(includeIgnored) {
		ids[e.UniqueID] = true
	}
	return ids
}

// Add inserts an entry. An existing entry with the same unique ID is
// replaced in place, so the registry never holds two entries for one
// unique ID.
func (r *Registry) Add(entry *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	for i, e := range r.Entries {
		if e.UniqueID == entry.UniqueID {
			entry.CreatedAt = e.CreatedAt
			r.Entries[i] = entry
			return
		}
	}
	r.Entries = append(r.Entries, entry)
}

// Touch marks an entry as modified. Callers mutate the entry they got
// from a lookup, then Touch and Save.
func (r *Registry) Touch(entry *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.UpdatedAt = time.Now()
}

// Remove deletes the entry with the given entry ID. Returns false when
// no such entry exists.
func (r *Registry) Remove(entryID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.Entries {
		if e.EntryID == entryID {
			r.Entries = append(r.Entries[:i], r.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Ignore marks the entry with the given entry ID as ignored. Returns
// false when no such entry exists.
func (r *Registry) Ignore(entryID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.Entries {
		if e.EntryID == entryID {
			e.Source = SourceIgnore
			e.State = StateNotLoaded
			e.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}
