package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/newtron-network/lglass/pkg/audit"
	"github.com/newtron-network/lglass/pkg/cli"
	"github.com/newtron-network/lglass/pkg/construct"
	"github.com/newtron-network/lglass/pkg/query"
	"github.com/newtron-network/lglass/pkg/spec"
	"github.com/newtron-network/lglass/pkg/transport"
	"github.com/newtron-network/lglass/pkg/util"
)

var (
	queryMode    string
	queryExecute bool
	queryTimeout time.Duration
)

var queryCmd = &cobra.Command{
	Use:   "query <type> <target>",
	Short: "Validate a target and build the query for a device",
	Long: `Validate a target and build the query for a device.

Query types: bgp_route, bgp_community, bgp_aspath, ping, traceroute.

Devices whose type is listed in general.api_vendors get a structured API
query; all others get a vendor command rendered from commands.yaml. Use
--mode to force one or the other.

Examples:
  lglass -d edge1 query bgp_route 192.0.2.0/24
  lglass -d edge1 query traceroute 2001:db8::1 --json
  lglass -d edge1 query ping 192.0.2.1 -x`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := queryRequest{Execute: queryExecute}
		if len(args) > 0 {
			req.Type = args[0]
		}
		if len(args) > 1 {
			req.Target, req.HasTarget = args[1], true
		}
		if queryMode != "" {
			m, err := parseModeFlag(cfg.Messages, queryMode)
			if err != nil {
				return err
			}
			req.Mode = m
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if queryTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, queryTimeout)
			defer cancel()
		}

		r := newQueryRunner(cfg)
		out, err := r.run(ctx, deviceName, req)
		if err != nil {
			return err
		}
		return printOutcome(cmd.OutOrStdout(), out)
	},
}

// parseModeFlag parses --mode, reporting a bad value with the configured
// invalid-field message.
func parseModeFlag(msgs spec.Messages, s string) (construct.Mode, error) {
	m, err := construct.ParseMode(s)
	if err != nil {
		return "", util.NewValidationError(msgs.Format(msgs.InvalidField, "input", s, "field", "mode"))
	}
	return m, nil
}

func init() {
	queryCmd.Flags().StringVar(&queryMode, "mode", "", "Force builder: api or command")
	queryCmd.Flags().BoolVarP(&queryExecute, "execute", "x", false, "Run the rendered command on the device over SSH")
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", 60*time.Second, "Execution timeout")
	queryCmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
}

// executor runs a rendered command on a device.
type executor interface {
	Exec(ctx context.Context, command string) (string, error)
}

type queryRequest struct {
	Type      string
	Target    string
	HasTarget bool
	Mode      construct.Mode // empty selects by device type
	Execute   bool
}

// queryOutcome is what a query run produced, for display and auditing.
type queryOutcome struct {
	Device  string                   `json:"device"`
	Mode    construct.Mode           `json:"mode,omitempty"`
	Status  query.Status             `json:"status"`
	Message string                   `json:"message"`
	API     *construct.APIResult     `json:"api,omitempty"`
	Command *construct.CommandResult `json:"command,omitempty"`
	Output  string                   `json:"output,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

// artifact returns what the builder produced. Rejected constructions have
// none; an accepted command keeps its artifact even if execution failed.
func (o *queryOutcome) artifact() string {
	switch {
	case o.Command != nil && o.Command.Status == query.StatusSuccess:
		return o.Command.Command
	case o.API != nil && o.API.Status == query.StatusSuccess && o.API.Query != nil:
		data, _ := o.API.JSON()
		return string(data)
	}
	return ""
}

type queryRunner struct {
	cfg         *spec.Config
	log         logrus.FieldLogger
	user        string
	newExecutor func(dev *spec.Device, cred *spec.Credential) executor
	password    func(prompt string) (string, error)
}

func newQueryRunner(cfg *spec.Config) *queryRunner {
	return &queryRunner{
		cfg:  cfg,
		log:  util.Logger,
		user: currentUser(),
		newExecutor: func(dev *spec.Device, cred *spec.Credential) executor {
			return transport.NewSSHExecutor(dev.Address, dev.Port, cred.Username, cred.Password)
		},
		password: promptPassword,
	}
}

// run builds (and optionally executes) one query. Rejected input is reported
// in the outcome; only configuration problems are returned as errors.
func (r *queryRunner) run(ctx context.Context, deviceID string, req queryRequest) (*queryOutcome, error) {
	msgs := r.cfg.Messages
	out := &queryOutcome{Device: deviceID, Status: query.StatusDanger}

	switch {
	case req.Type == "":
		out.Message = msgs.NoQueryType
		return out, nil
	case deviceID == "":
		out.Message = msgs.NoLocation
		return out, nil
	case !req.HasTarget:
		out.Message = msgs.Format(msgs.NoInput, "field", "Target")
		return out, nil
	}

	dev, err := r.cfg.Device(deviceID)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = construct.ModeFor(dev.Type, r.cfg.General.APIVendors)
	}
	if req.Execute && mode != construct.ModeCommand {
		return nil, fmt.Errorf("--execute requires command mode; %s (%s) is queried through the API", dev.ID, dev.Type)
	}
	out.Mode = mode

	start := time.Now()
	event := audit.NewEvent(r.user, dev.ID, req.Type, req.Target)
	defer func() {
		event.WithResult(string(out.Mode), string(out.Status), out.Message, out.artifact()).
			WithDuration(time.Since(start))
		if err := audit.Log(event); err != nil {
			util.Warnf("audit: %v", err)
		}
	}()

	if mode == construct.ModeAPI {
		res := construct.NewAPIBuilder(r.log).Build(req.Type, req.Target, dev)
		out.API, out.Status, out.Message = res, res.Status, res.Message
		return out, nil
	}

	res, err := construct.NewCommandBuilder(r.cfg.Commands, r.log).Build(req.Type, req.Target, dev)
	if err != nil {
		out.Message = msgs.General
		event.WithError(err)
		return nil, err
	}
	out.Command, out.Status, out.Message = res, res.Status, res.Message

	if !req.Execute || res.Status != query.StatusSuccess {
		return out, nil
	}

	event.WithExecuted()
	output, err := r.execute(ctx, dev, res.Command)
	out.Output = output
	if err != nil {
		event.WithError(err)
		out.Status = query.StatusDanger
		out.Error = r.execMessage(dev, err)
		out.Message = out.Error
	}
	return out, nil
}

func (r *queryRunner) execute(ctx context.Context, dev *spec.Device, command string) (string, error) {
	cred, err := r.cfg.Credential(dev)
	if err != nil {
		return "", fmt.Errorf("%w: %v", transport.ErrAuthentication, err)
	}
	if cred.Password == "" {
		pw, err := r.password(fmt.Sprintf("Password for %s@%s: ", cred.Username, dev.Name))
		if err != nil {
			return "", err
		}
		c := *cred
		c.Password = pw
		cred = &c
	}
	return r.newExecutor(dev, cred).Exec(ctx, command)
}

// execMessage maps an execution failure to the catalog message shown to the user.
func (r *queryRunner) execMessage(dev *spec.Device, err error) string {
	msgs := r.cfg.Messages
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return msgs.RequestTimeout
	case errors.Is(err, transport.ErrAuthentication):
		return msgs.AuthenticationError
	case errors.Is(err, transport.ErrConnection):
		return msgs.Format(msgs.ConnectionError, "device_name", dev.Name, "error", err.Error())
	}
	return msgs.General
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: no password configured and stdin is not a terminal", transport.ErrAuthentication)
	}
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func printOutcome(w io.Writer, out *queryOutcome) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		status := string(out.Status)
		fmt.Fprintf(w, "%s %s\n", cli.StatusColor(status, "["+status+"]"), out.Message)
		if out.Device != "" && out.Mode != "" {
			fmt.Fprintf(w, "%s %s (%s)\n", cli.Dim("device:"), out.Device, out.Mode)
		}
		if a := out.artifact(); a != "" {
			fmt.Fprintf(w, "%s %s\n", cli.Dim(artifactLabel(out)), a)
		}
		if out.Output != "" {
			fmt.Fprintln(w)
			fmt.Fprint(w, strings.TrimRight(out.Output, "\n")+"\n")
		}
	}
	if out.Status != query.StatusSuccess {
		return errReported
	}
	return nil
}

func artifactLabel(out *queryOutcome) string {
	if out.Mode == construct.ModeAPI {
		return "query:"
	}
	return "command:"
}
