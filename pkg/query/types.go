// Package query classifies looking-glass query targets.
//
// Classify is the single decision point shared by the API and direct-command
// builders in package construct: it decides whether a target is syntactically
// valid for a query type and, if so, which address family the query runs in.
package query

// Type is a looking-glass query type. The set is closed; see Types.
type Type string

const (
	TypeBGPCommunity Type = "bgp_community"
	TypeBGPASPath    Type = "bgp_aspath"
	TypeBGPRoute     Type = "bgp_route"
	TypePing         Type = "ping"
	TypeTraceroute   Type = "traceroute"
)

var allTypes = []Type{TypeBGPCommunity, TypeBGPASPath, TypeBGPRoute, TypePing, TypeTraceroute}

// Types returns every supported query type.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType returns the Type named by s, or false if s is not one of Types().
func ParseType(s string) (Type, bool) {
	for _, t := range allTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// IsAddressQuery reports whether the target must be an IP address or prefix.
func (t Type) IsAddressQuery() bool {
	return t == TypeBGPRoute || t == TypePing || t == TypeTraceroute
}

// NeedsSource reports whether the query is sourced from a device address.
func (t Type) NeedsSource() bool {
	return t == TypePing || t == TypeTraceroute
}

// AFI is the address family a query runs in.
type AFI string

const (
	AFIIPv4 AFI = "ipv4"
	AFIIPv6 AFI = "ipv6"
	AFIDual AFI = "dual" // community and AS_PATH queries cover both families
)

// Status classifies the outcome of a classification or construction.
// The front end picks the notification tone from it.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning" // soft user input problem
	StatusDanger  Status = "danger"  // hard rejection
)

// Code returns the numeric code the legacy web front end keys its
// notification rendering on. These are not HTTP semantics.
func (s Status) Code() int {
	switch s {
	case StatusSuccess:
		return 200
	case StatusWarning:
		return 405
	default:
		return 415
	}
}

// CommunityFormat records which community syntax a target matched.
type CommunityFormat string

const (
	CommunityNewFormat CommunityFormat = "new-format"
	Community32Bit     CommunityFormat = "32-bit"
	CommunityLarge     CommunityFormat = "large"
)
