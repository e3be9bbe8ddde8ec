package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newtron-network/lglass/pkg/cli"
	"github.com/newtron-network/lglass/pkg/query"
	"github.com/newtron-network/lglass/pkg/spec"
)

var vendorCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Inspect command templates",
}

var vendorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vendors and the query types each supports per family",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listVendors(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	vendorListCmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
	vendorCmd.AddCommand(vendorListCmd)
}

// vendorSupport maps family to the query types a vendor has templates for.
func vendorSupport(c *spec.Config, vendor string) map[query.AFI][]string {
	support := make(map[query.AFI][]string)
	for _, afi := range []query.AFI{query.AFIDual, query.AFIIPv4, query.AFIIPv6} {
		var types []string
		for _, qt := range query.Types() {
			if _, err := c.Commands.Resolve(vendor, afi, qt); err == nil {
				types = append(types, string(qt))
			}
		}
		sort.Strings(types)
		support[afi] = types
	}
	return support
}

func listVendors(w io.Writer, c *spec.Config) error {
	vendors := c.Commands.Vendors()
	if jsonOutput {
		out := make(map[string]map[query.AFI][]string, len(vendors))
		for _, v := range vendors {
			out[v] = vendorSupport(c, v)
		}
		return json.NewEncoder(w).Encode(out)
	}

	if len(vendors) == 0 {
		fmt.Fprintln(w, "No vendors configured")
		return nil
	}

	t := cli.NewTableTo(w, "VENDOR", "MODE", "DUAL", "IPV4", "IPV6")
	for _, v := range vendors {
		s := vendorSupport(c, v)
		mode := "command"
		if c.IsAPIVendor(v) {
			mode = "api"
		}
		t.Row(v, mode,
			strings.Join(s[query.AFIDual], ","),
			strings.Join(s[query.AFIIPv4], ","),
			strings.Join(s[query.AFIIPv6], ","))
	}
	t.Flush()
	return nil
}
