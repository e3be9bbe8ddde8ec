package query

// Placeholder names a command template may reference.
const (
	PlaceholderTarget      = "target"
	PlaceholderSrcAddrIPv4 = "src_addr_ipv4"
	PlaceholderSrcAddrIPv6 = "src_addr_ipv6"
)

// AllowedPlaceholders returns the placeholders a template for (afi, qt) is
// rendered with. Ping and traceroute get the source address of their family.
func AllowedPlaceholders(afi AFI, qt Type) []string {
	if qt.NeedsSource() {
		switch afi {
		case AFIIPv4:
			return []string{PlaceholderTarget, PlaceholderSrcAddrIPv4}
		case AFIIPv6:
			return []string{PlaceholderTarget, PlaceholderSrcAddrIPv6}
		}
	}
	return []string{PlaceholderTarget}
}
