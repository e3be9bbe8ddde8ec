package construct

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/newtron-network/lglass/pkg/spec"
)

func testDevice() *spec.Device {
	return &spec.Device{
		ID:          "rtr1-nyc",
		Address:     "192.0.2.1",
		SrcAddrIPv4: "198.51.100.1",
		SrcAddrIPv6: "2001:db8::ff",
		Location:    "nyc",
		Name:        "rtr1.nyc",
		Port:        22,
		Type:        "cisco_ios",
	}
}

func testTemplates() spec.Commands {
	return spec.Commands{
		"cisco_ios": {
			Dual: map[string]string{
				"bgp_community": "show bgp all community {target}",
				"bgp_aspath":    `show bgp all quote-regexp "{target}"`,
			},
			IPv4: map[string]string{
				"bgp_route":  "show bgp ipv4 unicast {target}",
				"ping":       "ping {target} repeat 5 source {src_addr_ipv4}",
				"traceroute": "traceroute {target} source {src_addr_ipv4}",
			},
			IPv6: map[string]string{
				"bgp_route":  "show bgp ipv6 unicast {target}",
				"ping":       "ping ipv6 {target} repeat 5 source {src_addr_ipv6}",
				"traceroute": "traceroute ipv6 {target} source {src_addr_ipv6}",
			},
		},
		// Known vendor with gaps, for configuration-error paths.
		"partial": {
			Dual: map[string]string{"bgp_community": "show community {target}"},
			IPv4: map[string]string{"bgp_route": "show route {target} {bogus}"},
		},
	}
}

func newTestLogger(t *testing.T) (*logrus.Logger, *test.Hook) {
	t.Helper()
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return l, hook
}
