package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/lglass/pkg/audit"
	"github.com/newtron-network/lglass/pkg/cli"
	"github.com/newtron-network/lglass/pkg/util"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View the query audit trail",
	Long: `View the query audit trail.

Every query, accepted or rejected, is recorded with the user, device, query
type, target, outcome and the built artifact. Configure a sink with
'lglass settings set audit_log <path>' or 'audit_redis <host:port>'.

Examples:
  lglass audit list --device edge1,edge2 --type ping,traceroute
  lglass audit list --last 24h --failures`,
	Annotations: map[string]string{skipConfig: "true"},
}

var (
	auditDevice   string
	auditUser     string
	auditType     string
	auditLast     string
	auditLimit    int
	auditFailures bool
)

var auditListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List audit events",
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := auditFilter()

		if auditLast != "" {
			duration, err := time.ParseDuration(auditLast)
			if err != nil {
				return fmt.Errorf("invalid duration: %s", auditLast)
			}
			filter.StartTime = time.Now().Add(-duration)
		}

		events, err := audit.Query(filter)
		if err != nil {
			return fmt.Errorf("querying audit log: %w", err)
		}
		return printEvents(cmd.OutOrStdout(), events)
	},
}

// auditFilter builds the filter from the list flags; --device and --type
// take comma-separated values.
func auditFilter() audit.Filter {
	return audit.Filter{
		Devices:     util.SplitCommaSeparated(auditDevice),
		User:        auditUser,
		QueryTypes:  util.SplitCommaSeparated(auditType),
		Limit:       auditLimit,
		FailureOnly: auditFailures,
	}
}

func init() {
	auditListCmd.Flags().StringVar(&auditDevice, "device", "", "Filter by device (comma-separated)")
	auditListCmd.Flags().StringVar(&auditUser, "user", "", "Filter by user")
	auditListCmd.Flags().StringVar(&auditType, "type", "", "Filter by query type (comma-separated)")
	auditListCmd.Flags().StringVar(&auditLast, "last", "", "Show events from last duration (e.g., 24h)")
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 100, "Maximum events to show")
	auditListCmd.Flags().BoolVar(&auditFailures, "failures", false, "Show only rejected or failed queries")
	auditListCmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")

	auditCmd.AddCommand(auditListCmd)
}

func printEvents(w io.Writer, events []*audit.Event) error {
	if jsonOutput {
		return json.NewEncoder(w).Encode(events)
	}
	if len(events) == 0 {
		fmt.Fprintln(w, "No audit events found")
		return nil
	}

	t := cli.NewTableTo(w, "TIMESTAMP", "USER", "DEVICE", "TYPE", "TARGET", "MODE", "STATUS")
	for _, e := range events {
		status := cli.StatusColor(e.Status, e.Status)
		if e.Error != "" {
			status = cli.Red("error")
		} else if e.Executed {
			status += cli.Dim(" (executed)")
		}
		t.Row(e.Timestamp.Format("2006-01-02 15:04:05"), e.User, e.Device, e.QueryType, e.Target, e.Mode, status)
	}
	t.Flush()
	return nil
}
