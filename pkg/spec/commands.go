package spec

import (
	"errors"
	"fmt"
	"sort"

	"github.com/newtron-network/lglass/pkg/query"
)

// Sentinel errors for template resolution.
var (
	ErrUnsupportedVendor = errors.New("unsupported network operating system")
	ErrTemplateNotFound  = errors.New("command template not found")
)

// Commands represents the command template file (commands.yaml): one
// CommandSet per network operating system.
type Commands map[string]*CommandSet

// CommandSet holds the three template groups of one vendor. Each group maps a
// query type name to a template with {target}-style placeholders.
type CommandSet struct {
	Dual map[string]string `yaml:"dual"`
	IPv4 map[string]string `yaml:"ipv4"`
	IPv6 map[string]string `yaml:"ipv6"`
}

// Group returns the template group for an address family.
func (cs *CommandSet) Group(afi query.AFI) map[string]string {
	switch afi {
	case query.AFIDual:
		return cs.Dual
	case query.AFIIPv4:
		return cs.IPv4
	case query.AFIIPv6:
		return cs.IPv6
	}
	return nil
}

// VendorError reports a device type with no CommandSet.
type VendorError struct {
	Vendor string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("%s is an unsupported network operating system", e.Vendor)
}

func (e *VendorError) Unwrap() error {
	return ErrUnsupportedVendor
}

// TemplateError reports a known vendor with no template for a
// (family, query type) pair. It is a configuration error.
type TemplateError struct {
	Vendor    string
	AFI       query.AFI
	QueryType query.Type
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("no %s template for %s in %s commands", e.AFI, e.QueryType, e.Vendor)
}

func (e *TemplateError) Unwrap() error {
	return ErrTemplateNotFound
}

// HasVendor reports whether vendor has a CommandSet.
func (c Commands) HasVendor(vendor string) bool {
	cs, ok := c[vendor]
	return ok && cs != nil
}

// Vendors returns the configured vendor names, sorted.
func (c Commands) Vendors() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the template for (vendor, afi, queryType).
func (c Commands) Resolve(vendor string, afi query.AFI, qt query.Type) (string, error) {
	cs, ok := c[vendor]
	if !ok || cs == nil {
		return "", &VendorError{Vendor: vendor}
	}
	tmpl, ok := cs.Group(afi)[string(qt)]
	if !ok {
		return "", &TemplateError{Vendor: vendor, AFI: afi, QueryType: qt}
	}
	return tmpl, nil
}
