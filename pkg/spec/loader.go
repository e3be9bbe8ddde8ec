package spec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/lglass/pkg/query"
	"github.com/newtron-network/lglass/pkg/util"
)

// ConfigDir is the default configuration directory
var ConfigDir = "/etc/lglass"

// File names within the configuration directory.
const (
	DevicesFileName       = "devices.yaml"
	CommandsFileName      = "commands.yaml"
	ConfigurationFileName = "configuration.yaml" // optional
)

// Loader handles loading and validating configuration files
type Loader struct {
	configDir string
}

// NewLoader creates a new configuration loader
func NewLoader(configDir string) *Loader {
	if configDir == "" {
		configDir = ConfigDir
	}
	return &Loader{configDir: configDir}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string {
	return l.configDir
}

// Load reads, defaults and validates every configuration file.
func (l *Loader) Load() (*Config, error) {
	var devices DevicesFile
	if err := l.readYAML(DevicesFileName, &devices); err != nil {
		return nil, fmt.Errorf("loading devices: %w", err)
	}

	var commands Commands
	if err := l.readYAML(CommandsFileName, &commands); err != nil {
		return nil, fmt.Errorf("loading commands: %w", err)
	}

	// Unmarshal over defaults so omitted keys keep their built-in values.
	cfgFile := ConfigurationFile{Messages: DefaultMessages()}
	if err := l.readYAML(ConfigurationFileName, &cfgFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	cfg := &Config{
		Devices:  &devices,
		Commands: commands,
		General:  cfgFile.General,
		Messages: cfgFile.Messages,
		Networks: make(map[string]*Network, len(cfgFile.Networks)),
	}
	if cfg.Commands == nil {
		cfg.Commands = Commands{}
	}
	if cfg.General.APIVendors == nil {
		cfg.General.APIVendors = append([]string(nil), DefaultAPIVendors...)
	}
	for name, n := range cfgFile.Networks {
		cfg.Networks[util.CleanName(name)] = n
	}
	applyDeviceDefaults(&devices)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", l.configDir, err)
	}
	return cfg, nil
}

func (l *Loader) readYAML(name string, out interface{}) error {
	path := filepath.Join(l.configDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func applyDeviceDefaults(f *DevicesFile) {
	if f.Routers == nil {
		f.Routers = map[string]*Device{}
	}
	if f.Credentials == nil {
		f.Credentials = map[string]*Credential{}
	}
	for id, d := range f.Routers {
		if d == nil {
			continue
		}
		d.ID = id
		if d.Name == "" {
			d.Name = id
		}
		if d.Port == 0 {
			d.Port = DefaultPort
		}
	}
}

// Validate checks cross references between the configuration files.
func Validate(cfg *Config) error {
	v := &util.ValidationBuilder{}

	for _, id := range cfg.DeviceIDs() {
		d := cfg.Devices.Routers[id]
		if d == nil {
			v.AddErrorf("device '%s' is empty", id)
			continue
		}
		v.Add(d.Address != "", fmt.Sprintf("device '%s' has no address", id))
		v.Add(d.Type != "", fmt.Sprintf("device '%s' has no type", id))
		if d.Type != "" && !cfg.Commands.HasVendor(d.Type) && !cfg.IsAPIVendor(d.Type) {
			v.AddErrorf("device '%s' type '%s' has no commands and is not an API vendor", id, d.Type)
		}
		if d.SrcAddrIPv4 != "" && !util.IsValidIPv4(d.SrcAddrIPv4) {
			v.AddErrorf("device '%s' src_addr_ipv4 '%s' is not an IPv4 address", id, d.SrcAddrIPv4)
		}
		if d.SrcAddrIPv6 != "" && !util.IsValidIPv6(d.SrcAddrIPv6) {
			v.AddErrorf("device '%s' src_addr_ipv6 '%s' is not an IPv6 address", id, d.SrcAddrIPv6)
		}
		if d.Port < 1 || d.Port > 65535 {
			v.AddErrorf("device '%s' port %d out of range", id, d.Port)
		}
		if d.Credential != "" {
			if _, ok := cfg.Devices.Credentials[d.Credential]; !ok {
				v.AddErrorf("device '%s' references unknown credential '%s'", id, d.Credential)
			}
		}
		if d.Network != "" && len(cfg.Networks) > 0 {
			if _, ok := cfg.Networks[util.CleanName(d.Network)]; !ok {
				v.AddErrorf("device '%s' references unknown network '%s'", id, d.Network)
			}
		}
	}

	if cfg.Devices != nil {
		for name, cred := range cfg.Devices.Credentials {
			if cred == nil {
				v.AddErrorf("credential '%s' is empty", name)
			}
		}
	}
	for name, n := range cfg.Networks {
		if n == nil {
			v.AddErrorf("network '%s' is empty", name)
		}
	}

	for _, vendor := range cfg.Commands.Vendors() {
		cs := cfg.Commands[vendor]
		if cs == nil {
			v.AddErrorf("vendor '%s' has no command groups", vendor)
			continue
		}
		for _, afi := range []query.AFI{query.AFIDual, query.AFIIPv4, query.AFIIPv6} {
			for name, tmpl := range cs.Group(afi) {
				validateTemplate(v, vendor, afi, name, tmpl)
			}
		}
	}

	return v.Build()
}

func validateTemplate(v *util.ValidationBuilder, vendor string, afi query.AFI, name, tmpl string) {
	qt, ok := query.ParseType(name)
	if !ok {
		v.AddErrorf("vendor '%s' %s group has unknown query type '%s'", vendor, afi, name)
		return
	}
	names, err := util.Placeholders(tmpl)
	if err != nil {
		v.AddErrorf("vendor '%s' %s.%s: %v", vendor, afi, name, err)
		return
	}
	allowed := query.AllowedPlaceholders(afi, qt)
	for _, p := range names {
		if !util.Contains(allowed, p) {
			v.AddErrorf("vendor '%s' %s.%s uses unknown placeholder {%s}", vendor, afi, name, p)
		}
	}
}
