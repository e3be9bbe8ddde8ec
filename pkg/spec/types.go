// Package spec loads and validates the lglass YAML configuration files.
package spec

import (
	"sort"

	"github.com/newtron-network/lglass/pkg/util"
)

// ============================================================================
// Devices (devices.yaml)
// ============================================================================

// DevicesFile represents the device registry file (devices.yaml).
type DevicesFile struct {
	Credentials map[string]*Credential `yaml:"credentials"`
	Routers     map[string]*Device     `yaml:"routers"`
}

// Device is a queryable router. Fields are read-only once loaded.
type Device struct {
	ID          string `yaml:"-"` // key in devices.yaml routers map
	Address     string `yaml:"address"`
	SrcAddrIPv4 string `yaml:"src_addr_ipv4"`
	SrcAddrIPv6 string `yaml:"src_addr_ipv6"`
	Location    string `yaml:"location"`
	Name        string `yaml:"name"`
	Port        int    `yaml:"port"`
	Type        string `yaml:"type"` // network operating system, keys commands.yaml

	Network    string `yaml:"network,omitempty"`    // key in configuration.yaml networks
	Credential string `yaml:"credential,omitempty"` // key in devices.yaml credentials
}

// DefaultPort is used when a device omits port.
const DefaultPort = 22

// The accessors below let *Device satisfy construct.Device.

func (d *Device) GetAddress() string     { return d.Address }
func (d *Device) GetSrcAddrIPv4() string { return d.SrcAddrIPv4 }
func (d *Device) GetSrcAddrIPv6() string { return d.SrcAddrIPv6 }
func (d *Device) GetName() string        { return d.Name }
func (d *Device) GetType() string        { return d.Type }

// Credential holds login details for direct command execution.
// An empty password is prompted for at execution time.
type Credential struct {
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`
}

// ============================================================================
// General parameters and networks (configuration.yaml)
// ============================================================================

// ConfigurationFile represents the optional configuration.yaml.
type ConfigurationFile struct {
	General  General             `yaml:"general"`
	Messages Messages            `yaml:"messages"`
	Networks map[string]*Network `yaml:"networks"`
}

// General holds process-wide parameters.
type General struct {
	// APIVendors lists network operating systems queried through the
	// structured API rather than by direct command.
	APIVendors []string `yaml:"api_vendors"`
}

// DefaultAPIVendors is used when configuration.yaml does not set api_vendors.
var DefaultAPIVendors = []string{"frr"}

// Network is a per-network (per-ASN) display setting.
type Network struct {
	DisplayName string `yaml:"display_name"`
}

// ============================================================================
// Loaded configuration
// ============================================================================

// Config is an immutable snapshot of every configuration file. It is safe for
// concurrent reads and is passed explicitly to the builders.
type Config struct {
	Devices  *DevicesFile
	Commands Commands
	General  General
	Messages Messages
	Networks map[string]*Network // keys cleaned with util.CleanName
}

// Device returns the device with the given id.
func (c *Config) Device(id string) (*Device, error) {
	if c.Devices != nil {
		if d, ok := c.Devices.Routers[id]; ok {
			return d, nil
		}
	}
	return nil, util.NewNotFoundError("device", id)
}

// DeviceIDs returns all device ids, sorted.
func (c *Config) DeviceIDs() []string {
	if c.Devices == nil {
		return nil
	}
	ids := make([]string, 0, len(c.Devices.Routers))
	for id := range c.Devices.Routers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Credential returns the credential a device references.
func (c *Config) Credential(d *Device) (*Credential, error) {
	if d.Credential == "" || c.Devices == nil {
		return nil, util.NewNotFoundError("credential", d.Credential)
	}
	cred, ok := c.Devices.Credentials[d.Credential]
	if !ok || cred == nil {
		return nil, util.NewNotFoundError("credential", d.Credential)
	}
	return cred, nil
}

// NetworkDisplayName returns the display name of a network, or the name
// itself when no display name is configured.
func (c *Config) NetworkDisplayName(name string) string {
	if n, ok := c.Networks[util.CleanName(name)]; ok && n != nil && n.DisplayName != "" {
		return n.DisplayName
	}
	return name
}

// IsAPIVendor reports whether devices of the given type are queried through
// the structured API.
func (c *Config) IsAPIVendor(vendor string) bool {
	return util.Contains(c.General.APIVendors, vendor)
}
