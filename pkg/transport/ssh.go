// Package transport runs rendered looking-glass commands on network devices.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/newtron-network/lglass/pkg/util"
)

// DefaultTimeout bounds the TCP dial and SSH handshake.
const DefaultTimeout = 10 * time.Second

var (
	// ErrAuthentication indicates the device rejected the credentials.
	ErrAuthentication = errors.New("authentication failed")
	// ErrConnection indicates the device could not be reached.
	ErrConnection = errors.New("connection failed")
)

// SSHExecutor runs one command per SSH session against a single device.
type SSHExecutor struct {
	Host     string
	Port     int
	User     string
	Password string
	Timeout  time.Duration
}

// NewSSHExecutor returns an executor for host:port with password auth.
func NewSSHExecutor(host string, port int, user, password string) *SSHExecutor {
	return &SSHExecutor{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		Timeout:  DefaultTimeout,
	}
}

// Addr returns the dial address.
func (e *SSHExecutor) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

func (e *SSHExecutor) clientConfig() *ssh.ClientConfig {
	password := e.Password
	return &ssh.ClientConfig{
		User: e.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			// Many network operating systems only offer keyboard-interactive.
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		// Looking-glass devices are operator-configured; host keys are not pinned.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         e.timeout(),
	}
}

func (e *SSHExecutor) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultTimeout
}

func (e *SSHExecutor) dial(ctx context.Context) (*ssh.Client, error) {
	addr := e.Addr()
	dialCtx, cancel := context.WithTimeout(ctx, e.timeout())
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnection, addr, err)
	}
	conn.SetDeadline(time.Now().Add(e.timeout()))

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, e.clientConfig())
	if err != nil {
		conn.Close()
		if strings.Contains(err.Error(), "unable to authenticate") {
			return nil, fmt.Errorf("%w: %s@%s", ErrAuthentication, e.User, addr)
		}
		return nil, fmt.Errorf("%w: SSH handshake %s: %v", ErrConnection, addr, err)
	}
	conn.SetDeadline(time.Time{})
	return ssh.NewClient(c, chans, reqs), nil
}

// Exec runs command on the device and returns its combined output.
// The SSH session is created per-call. Cancelling ctx closes the connection.
func (e *SSHExecutor) Exec(ctx context.Context, command string) (string, error) {
	client, err := e.dial(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			client.Close()
		case <-done:
		}
	}()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("%w: SSH session: %v", ErrConnection, err)
	}
	defer session.Close()

	util.WithDevice(e.Host).Debugf("exec: %s", command)
	output, err := session.CombinedOutput(command)
	if ctx.Err() != nil {
		return string(output), ctx.Err()
	}
	if err != nil {
		return string(output), fmt.Errorf("SSH exec '%s': %w", command, err)
	}
	return string(output), nil
}
