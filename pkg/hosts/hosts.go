// Package hosts loads the SSH host inventory used by the ipshow CLI.
//
// A hosts file is YAML (JSON is accepted as a subset). It holds either a
// single host document:
//
//	host: 10.0.0.1
//	username: admin
//	password: secret
//
// or a named map of hosts:
//
//	hosts:
//	  router1:
//	    host: 10.0.0.1
//	    port: 2222
//	    username: admin
//	    key_file: ~/.ssh/id_ed25519
//	    known_hosts: ~/.ssh/known_hosts
//	    timeout: 10s
package hosts

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/ipshow/pkg/remote"
	"github.com/newtron-network/ipshow/pkg/util"
)

// Host is one SSH target.
type Host struct {
	Name       string        `yaml:"-"`
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port,omitempty"`
	Username   string        `yaml:"username"`
	Password   string        `yaml:"password,omitempty"`
	KeyFile    string        `yaml:"key_file,omitempty"`
	KnownHosts string        `yaml:"known_hosts,omitempty"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`

	// AskPass defers the password to an interactive prompt
	AskPass bool `yaml:"ask_pass,omitempty"`
}

// File is a loaded hosts file.
type File struct {
	Path  string
	Hosts map[string]*Host
}

// document covers both file shapes; the inline Host is the single-host form.
type document struct {
	Hosts map[string]*Host `yaml:"hosts"`
	Host  `yaml:",inline"`
}

// Load reads and validates a hosts file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hosts file %s: %w", path, err)
	}

	f, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing hosts file %s: %w", path, err)
	}
	f.Path = path

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("hosts file %s: %w", path, err)
	}

	util.WithField("path", path).Debugf("loaded %d hosts", len(f.Hosts))
	return f, nil
}

func parse(data []byte) (*File, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	f := &File{Hosts: make(map[string]*Host)}
	switch {
	case len(doc.Hosts) > 0 && doc.Host.Host != "":
		return nil, fmt.Errorf("both a top-level host and a hosts map are set")
	case len(doc.Hosts) > 0:
		for name, h := range doc.Hosts {
			if h == nil {
				h = &Host{}
			}
			h.Name = name
			f.Hosts[name] = h
		}
	case doc.Host.Host != "":
		h := doc.Host
		h.Name = h.Host
		f.Hosts[h.Name] = &h
	}

	for _, h := range f.Hosts {
		h.applyDefaults()
	}
	return f, nil
}

func (h *Host) applyDefaults() {
	if h.Port == 0 {
		h.Port = remote.DefaultPort
	}
	if h.Timeout == 0 {
		h.Timeout = remote.DefaultTimeout
	}
	h.KeyFile = expandHome(h.KeyFile)
	h.KnownHosts = expandHome(h.KnownHosts)
}

// Validate checks every host, collecting all problems into one
// *util.ValidationError.
func (f *File) Validate() error {
	v := &util.ValidationBuilder{}
	v.Add(len(f.Hosts) > 0, "no hosts defined")
	for _, name := range f.Names() {
		f.Hosts[name].validate(v)
	}
	return v.Build()
}

// Validate checks a single host.
func (h *Host) Validate() error {
	v := &util.ValidationBuilder{}
	h.validate(v)
	return v.Build()
}

func (h *Host) validate(v *util.ValidationBuilder) {
	name := h.Name
	if name == "" {
		name = h.Host
	}
	v.Add(h.Host != "", fmt.Sprintf("host %s: host is required", name))
	v.Add(h.Username != "", fmt.Sprintf("host %s: username is required", name))
	if h.Port < 1 || h.Port > 65535 {
		v.AddErrorf("host %s: port %d out of range 1-65535", name, h.Port)
	}
	if h.Timeout < 0 {
		v.AddErrorf("host %s: negative timeout %s", name, h.Timeout)
	}
	v.Add(h.Password != "" || h.KeyFile != "" || h.AskPass,
		fmt.Sprintf("host %s: one of password, key_file or ask_pass is required", name))
}

// Names returns the host names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Hosts))
	for name := range f.Hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named host. The error wraps util.ErrNotFound.
func (f *File) Lookup(name string) (*Host, error) {
	h, ok := f.Hosts[name]
	if !ok {
		return nil, fmt.Errorf("host %q: %w", name, util.ErrNotFound)
	}
	return h, nil
}

// RemoteConfig converts h into SSH connection parameters.
func (h *Host) RemoteConfig() remote.Config {
	return remote.Config{
		Host:       h.Host,
		Port:       h.Port,
		User:       h.Username,
		Password:   h.Password,
		KeyFile:    h.KeyFile,
		KnownHosts: h.KnownHosts,
		Timeout:    h.Timeout,
	}
}

// ParseTarget builds an ad-hoc Host from "[user@]host[:port]". IPv6
// literals with a port must be bracketed ("[fe80::1]:22").
func ParseTarget(target string) (*Host, error) {
	h := &Host{Name: target}
	rest := target
	if user, host, ok := strings.Cut(target, "@"); ok {
		h.Username = user
		rest = host
	}

	if host, port, err := net.SplitHostPort(rest); err == nil {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("target %q: invalid port %q", target, port)
		}
		h.Host, h.Port = host, p
	} else {
		h.Host = strings.TrimSuffix(strings.TrimPrefix(rest, "["), "]")
	}
	if h.Host == "" {
		return nil, fmt.Errorf("target %q: missing host", target)
	}

	h.applyDefaults()
	return h, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
