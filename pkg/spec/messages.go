package spec

import "github.com/newtron-network/lglass/pkg/util"

// Messages is the user-facing message catalog. Templates use {name}
// placeholders rendered with Format.
type Messages struct {
	NoQueryType         string `yaml:"no_query_type"`
	NoLocation          string `yaml:"no_location"`
	NoInput             string `yaml:"no_input"`
	Blacklist           string `yaml:"blacklist"`
	MaxPrefix           string `yaml:"max_prefix"`
	RequiresIPv6CIDR    string `yaml:"requires_ipv6_cidr"`
	InvalidInput        string `yaml:"invalid_input"`
	InvalidField        string `yaml:"invalid_field"`
	General             string `yaml:"general"`
	DirectedCIDR        string `yaml:"directed_cidr"`
	RequestTimeout      string `yaml:"request_timeout"`
	ConnectionError     string `yaml:"connection_error"`
	AuthenticationError string `yaml:"authentication_error"`
	NoResponseError     string `yaml:"noresponse_error"`
	VRFNotAssociated    string `yaml:"vrf_not_associated"`
	NoMatchingVRFs      string `yaml:"no_matching_vrfs"`
}

// DefaultMessages returns the built-in catalog.
func DefaultMessages() Messages {
	return Messages{
		NoQueryType:         "A query type must be specified.",
		NoLocation:          "A location must be selected.",
		NoInput:             "{field} must be specified.",
		Blacklist:           "{target} a member of {blacklisted_net}, which is not allowed.",
		MaxPrefix:           "Prefix length must be shorter than /{max_length}. {target} is too specific.",
		RequiresIPv6CIDR:    "{device_name} requires IPv6 BGP lookups to be in CIDR notation.",
		InvalidInput:        "{target} is not a valid {query_type} target.",
		InvalidField:        "{input} is an invalid {field}.",
		General:             "Something went wrong.",
		DirectedCIDR:        "{query_type} queries can not be in CIDR format.",
		RequestTimeout:      "Request timed out.",
		ConnectionError:     "Error connecting to {device_name}: {error}",
		AuthenticationError: "Authentication error occurred.",
		NoResponseError:     "No response.",
		VRFNotAssociated:    "{vrf} is not associated with {device_name}.",
		NoMatchingVRFs:      "No VRFs Match",
	}
}

// Format renders a catalog template with key/value pairs. A template that
// fails to render falls back to the General message.
func (m Messages) Format(tmpl string, kv ...string) string {
	values := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		values[kv[i]] = kv[i+1]
	}
	out, err := util.FormatNamed(tmpl, values)
	if err != nil {
		util.Warnf("message catalog: %v", err)
		return m.General
	}
	return out
}
