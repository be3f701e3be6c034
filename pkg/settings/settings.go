// Package settings manages persistent user settings for the ipshow CLI.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Output formats accepted by the CLI.
var OutputFormats = []string{"table", "json", "yaml"}

// Settings holds persistent user preferences
type Settings struct {
	// DefaultHost is the host to query when `ipshow show` gets no argument
	DefaultHost string `json:"default_host,omitempty"`

	// HostsFile overrides the default hosts inventory path
	HostsFile string `json:"hosts_file,omitempty"`

	// OutputFormat is the default -o value
	OutputFormat string `json:"output_format,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ipshow_settings.json"
	}
	return filepath.Join(home, ".ipshow", "settings.json")
}

// DefaultHostsFile is the hosts inventory used when neither a flag, the
// environment nor the settings name one.
func DefaultHostsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hosts.yaml"
	}
	return filepath.Join(home, ".ipshow", "hosts.yaml")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
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
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path. The file may reference
// credentials-bearing inventories, so it is created user-readable only.
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// GetHostsFile returns the hosts file (with fallback)
func (s *Settings) GetHostsFile() string {
	if s.HostsFile != "" {
		return s.HostsFile
	}
	return DefaultHostsFile()
}

// GetOutputFormat returns the output format (with fallback)
func (s *Settings) GetOutputFormat() string {
	if s.OutputFormat != "" {
		return s.OutputFormat
	}
	return "table"
}

// setters maps `ipshow settings set` keys to fields.
var setters = map[string]func(s *Settings, value string) error{
	"host": func(s *Settings, v string) error {
		s.DefaultHost = v
		return nil
	},
	"hosts_file": func(s *Settings, v string) error {
		if v != "" {
			abs, err := filepath.Abs(v)
			if err != nil {
				return err
			}
			v = abs
		}
		s.HostsFile = v
		return nil
	},
	"output": func(s *Settings, v string) error {
		if v != "" && !ValidOutputFormat(v) {
			return fmt.Errorf("invalid output format %q (want one of %v)", v, OutputFormats)
		}
		s.OutputFormat = v
		return nil
	},
}

// Keys returns the names accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to the named setting. An empty value unsets it.
func (s *Settings) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (valid: %v)", key, Keys())
	}
	return set(s, value)
}

// Get returns the raw value of the named setting ("" when unset).
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "host":
		return s.DefaultHost, nil
	case "hosts_file":
		return s.HostsFile, nil
	case "output":
		return s.OutputFormat, nil
	}
	return "", fmt.Errorf("unknown setting %q (valid: %v)", key, Keys())
}

// ValidOutputFormat reports whether f is one of OutputFormats.
func ValidOutputFormat(f string) bool {
	for _, o := range OutputFormats {
		if o == f {
			return true
		}
	}
	return false
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
