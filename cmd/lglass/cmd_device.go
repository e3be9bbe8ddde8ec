package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/newtron-network/lglass/pkg/cli"
	"github.com/newtron-network/lglass/pkg/construct"
	"github.com/newtron-network/lglass/pkg/spec"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Inspect configured devices",
	Long: `Inspect devices from devices.yaml.

Examples:
  lglass device list
  lglass device show edge1`,
}

var deviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listDevices(cmd.OutOrStdout(), cfg)
	},
}

var deviceShowCmd = &cobra.Command{
	Use:   "show [device]",
	Short: "Show one device",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := deviceName
		if len(args) > 0 {
			id = args[0]
		}
		if id == "" {
			return fmt.Errorf("device required: use -d <device> flag or provide as argument")
		}
		return showDevice(cmd.OutOrStdout(), cfg, id)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{deviceListCmd, deviceShowCmd} {
		cmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
		deviceCmd.AddCommand(cmd)
	}
}

func deviceMode(c *spec.Config, d *spec.Device) construct.Mode {
	return construct.ModeFor(d.Type, c.General.APIVendors)
}

func listDevices(w io.Writer, c *spec.Config) error {
	ids := c.DeviceIDs()
	if jsonOutput {
		devs := make([]*spec.Device, 0, len(ids))
		for _, id := range ids {
			d, _ := c.Device(id)
			devs = append(devs, d)
		}
		return json.NewEncoder(w).Encode(devs)
	}

	if len(ids) == 0 {
		fmt.Fprintln(w, "No devices configured")
		return nil
	}

	t := cli.NewTableTo(w, "DEVICE", "NAME", "TYPE", "MODE", "ADDRESS", "LOCATION", "NETWORK")
	for _, id := range ids {
		d, _ := c.Device(id)
		network := ""
		if d.Network != "" {
			network = c.NetworkDisplayName(d.Network)
		}
		t.Row(id, d.Name, d.Type, string(deviceMode(c, d)), d.Address, d.Location, network)
	}
	t.Flush()
	return nil
}

func showDevice(w io.Writer, c *spec.Config, id string) error {
	d, err := c.Device(id)
	if err != nil {
		return err
	}
	if jsonOutput {
		return json.NewEncoder(w).Encode(d)
	}

	const width = 16
	fmt.Fprintln(w, cli.Bold(d.Name))
	cli.KeyValue(w, "id", d.ID, width)
	cli.KeyValue(w, "type", d.Type, width)
	cli.KeyValue(w, "mode", string(deviceMode(c, d)), width)
	cli.KeyValue(w, "address", d.Address, width)
	cli.KeyValue(w, "port", strconv.Itoa(d.Port), width)
	cli.KeyValue(w, "src_addr_ipv4", d.SrcAddrIPv4, width)
	cli.KeyValue(w, "src_addr_ipv6", d.SrcAddrIPv6, width)
	cli.KeyValue(w, "location", d.Location, width)
	network := ""
	if d.Network != "" {
		network = c.NetworkDisplayName(d.Network)
	}
	cli.KeyValue(w, "network", network, width)
	cli.KeyValue(w, "credential", d.Credential, width)
	return nil
}
