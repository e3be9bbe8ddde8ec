package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/newtron-network/lglass/pkg/cli"
	"github.com/newtron-network/lglass/pkg/query"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <type> <target>",
	Short: "Classify a target without building a query",
	Long: `Classify a target for a query type and print the verdict.

No configuration is read; this only exercises the input rules.

Examples:
  lglass classify bgp_community 65000:100
  lglass classify bgp_route 2001:db8::/32 --json`,
	Args:        cobra.RangeArgs(1, 2),
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) > 1 {
			target = args[1]
		}
		return printVerdict(cmd.OutOrStdout(), query.Classify(args[0], target))
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
}

// verdictView is the printable form of a query.Verdict.
type verdictView struct {
	Type      query.Type            `json:"type"`
	Target    string                `json:"target"`
	Status    query.Status          `json:"status"`
	Code      int                   `json:"code"`
	Message   string                `json:"message"`
	AFI       query.AFI             `json:"afi,omitempty"`
	Community query.CommunityFormat `json:"community,omitempty"`
	Prefix    string                `json:"prefix,omitempty"`
}

func printVerdict(w io.Writer, v query.Verdict) error {
	view := verdictView{
		Type:      v.Type,
		Target:    v.Target,
		Status:    v.Status,
		Code:      v.Status.Code(),
		Message:   v.Message,
		AFI:       v.AFI,
		Community: v.Community,
	}
	if v.OK() && v.Type.IsAddressQuery() {
		view.Prefix = v.Address.Prefix.String()
	}

	if jsonOutput {
		if err := json.NewEncoder(w).Encode(view); err != nil {
			return err
		}
	} else {
		status := string(v.Status)
		fmt.Fprintf(w, "%s %s\n", cli.StatusColor(status, "["+status+"]"), v.Message)
		if view.AFI != "" {
			fmt.Fprintf(w, "%s %s\n", cli.Dim("afi:"), view.AFI)
		}
		if view.Community != "" {
			fmt.Fprintf(w, "%s %s\n", cli.Dim("community:"), view.Community)
		}
		if view.Prefix != "" {
			fmt.Fprintf(w, "%s %s\n", cli.Dim("prefix:"), view.Prefix)
		}
	}
	if !v.OK() {
		return errReported
	}
	return nil
}
