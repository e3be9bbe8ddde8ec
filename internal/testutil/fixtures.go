package testutil

import "testing"

// DevicesYAML is a devices.yaml with a command-mode router that has both
// source families, one with a prompted password, and an API-mode router.
const DevicesYAML = `
credentials:
  lab:
    username: lg
    password: secret
  prompt:
    username: ops
routers:
  edge1:
    address: 192.0.2.10
    src_addr_ipv4: 198.51.100.10
    src_addr_ipv6: "2001:db8::10"
    name: edge1.nyc
    location: nyc
    type: cisco_ios
    credential: lab
  edge2:
    address: 192.0.2.20
    src_addr_ipv4: 198.51.100.20
    type: cisco_ios
    credential: prompt
  rs1:
    address: 192.0.2.30
    type: frr
`

// CommandsYAML covers cisco_ios partially: traceroute has no template.
const CommandsYAML = `
cisco_ios:
  dual:
    bgp_community: "show bgp all community {target}"
  ipv4:
    bgp_route: "show bgp ipv4 unicast {target}"
    ping: "ping {target} repeat 5 source {src_addr_ipv4}"
  ipv6:
    ping: "ping ipv6 {target} repeat 5 source {src_addr_ipv6}"
`

// ConfigDir writes DevicesYAML and CommandsYAML (plus any extra files) into
// a temp directory laid out like /etc/lglass.
func ConfigDir(t *testing.T, extra map[string]string) string {
	t.Helper()
	files := map[string]string{
		"devices.yaml":  DevicesYAML,
		"commands.yaml": CommandsYAML,
	}
	for name, content := range extra {
		files[name] = content
	}
	return WriteFiles(t, files)
}
