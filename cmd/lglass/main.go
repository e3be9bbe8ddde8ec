// Lglass - looking-glass query construction tool
//
// Builds the query a looking glass would send to a router: a JSON payload for
// devices that expose an API, or a vendor CLI command rendered from
// commands.yaml for everything else. Rendered commands can optionally be run
// over SSH.
//
//	lglass -d <device> query <type> <target> [--mode api|command] [-x]
//
// Examples:
//
//	lglass -d edge1 query bgp_route 192.0.2.0/24
//	lglass -d edge1 query bgp_community 65000:100 --json
//	lglass -d edge1 query ping 2001:db8::1 -x
//	lglass classify bgp_aspath '^65000_'
//	lglass device list
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/lglass/pkg/audit"
	"github.com/newtron-network/lglass/pkg/settings"
	"github.com/newtron-network/lglass/pkg/spec"
	"github.com/newtron-network/lglass/pkg/util"
	"github.com/newtron-network/lglass/pkg/version"
)

var (
	// Global context flags
	deviceName string // -d, --device
	configDir  string // -S, --config-dir

	// Global option flags
	verbose    bool
	logJSON    bool
	jsonOutput bool

	// Global state
	userSettings *settings.Settings
	cfg          *spec.Config
)

// errReported signals a failure that has already been printed.
var errReported = errors.New("reported")

// skipConfig marks commands that run without the configuration directory.
const skipConfig = "skip-config"

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "lglass",
	Short:             "Looking-glass query construction tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Lglass validates looking-glass queries and builds what would be sent to a
router: a structured API query or a vendor command. Use -x to run a rendered
command on the device.

  lglass -d <device> query <type> <target> [-x]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}
		if logJSON {
			util.SetJSONFormat()
		}

		if isSettingsOrHelp(cmd) {
			return nil
		}

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}
		if deviceName == "" {
			deviceName = userSettings.DefaultDevice
		}
		if configDir == "" {
			configDir = userSettings.GetConfigDir()
		}

		initAudit(userSettings)

		if cmd.Annotations[skipConfig] == "true" {
			return nil
		}
		cfg, err = spec.NewLoader(configDir).Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "d", "", "Device id (default from settings)")
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "S", "", "Configuration directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "query", Title: "Query Operations:"},
		&cobra.Group{ID: "inventory", Title: "Inventory:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{queryCmd, classifyCmd} {
		cmd.GroupID = "query"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{deviceCmd, vendorCmd} {
		cmd.GroupID = "inventory"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{settingsCmd, auditCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

// initAudit installs the default audit logger. Redis takes precedence over
// the file log; failures only disable auditing.
func initAudit(s *settings.Settings) {
	switch {
	case s.AuditRedis != "":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		l, err := audit.NewRedisLogger(ctx, s.AuditRedis, audit.DefaultRedisKey, s.AuditMaxEntries)
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
			return
		}
		audit.SetDefaultLogger(l)
	case s.AuditLog != "":
		l, err := audit.NewFileLogger(s.AuditLog, audit.RotationConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 10,
		})
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
			return
		}
		audit.SetDefaultLogger(l)
	}
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Fprintln(cmd.OutOrStdout(), "lglass dev build (use 'make build' for version info)")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "lglass %s\n", version.Info())
		}
	},
}

// isSettingsOrHelp reports whether cmd needs neither settings nor configuration.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == settingsCmd {
			return true
		}
	}
	return cmd.Name() == "help" || cmd.Name() == "completion"
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
