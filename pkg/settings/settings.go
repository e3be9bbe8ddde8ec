// Package settings manages persistent user settings for the lglass CLI.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Settings holds persistent user preferences
type Settings struct {
	// ConfigDir overrides the default configuration directory
	ConfigDir string `json:"config_dir,omitempty"`

	// DefaultDevice is the device to query when -d is not specified
	DefaultDevice string `json:"default_device,omitempty"`

	// AuditLog is the JSON-lines audit file; empty disables file auditing
	AuditLog string `json:"audit_log,omitempty"`

	// AuditRedis is a host:port; when set it takes precedence over AuditLog
	AuditRedis string `json:"audit_redis,omitempty"`

	// AuditMaxEntries caps the Redis audit list (0 = unbounded)
	AuditMaxEntries int64 `json:"audit_max_entries,omitempty"`
}

// DefaultConfigDir is used when ConfigDir is unset.
const DefaultConfigDir = "/etc/lglass"

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "lglass_settings.json"
	}
	return filepath.Join(home, ".lglass", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path. A missing file yields
// empty settings.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetConfigDir returns the configuration directory (with fallback)
func (s *Settings) GetConfigDir() string {
	if s.ConfigDir != "" {
		return s.ConfigDir
	}
	return DefaultConfigDir
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}

// field binds a settings key to its storage.
type field struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

var fields = map[string]field{
	"config_dir": {
		get: func(s *Settings) string { return s.ConfigDir },
		set: func(s *Settings, v string) error { s.ConfigDir = v; return nil },
	},
	"default_device": {
		get: func(s *Settings) string { return s.DefaultDevice },
		set: func(s *Settings, v string) error { s.DefaultDevice = v; return nil },
	},
	"audit_log": {
		get: func(s *Settings) string { return s.AuditLog },
		set: func(s *Settings, v string) error { s.AuditLog = v; return nil },
	},
	"audit_redis": {
		get: func(s *Settings) string { return s.AuditRedis },
		set: func(s *Settings, v string) error { s.AuditRedis = v; return nil },
	},
	"audit_max_entries": {
		get: func(s *Settings) string {
			if s.AuditMaxEntries == 0 {
				return ""
			}
			return strconv.FormatInt(s.AuditMaxEntries, 10)
		},
		set: func(s *Settings, v string) error {
			if v == "" {
				s.AuditMaxEntries = 0
				return nil
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				return fmt.Errorf("audit_max_entries must be a non-negative integer, got %q", v)
			}
			s.AuditMaxEntries = n
			return nil
		},
	},
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key.
func (s *Settings) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return f.get(s), nil
}

// Set stores value under key. An empty value clears it.
func (s *Settings) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	return f.set(s, value)
}
