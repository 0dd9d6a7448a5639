package mobileconfig

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
)

// profilesPath is the system utility every external operation shells
// out to.
const profilesPath = "/usr/bin/profiles"

// ErrUnsupportedPlatform is returned by NewSystemClient on anything
// that is not a Darwin system.
var ErrUnsupportedPlatform = errors.New("configuration profiles are only available on macOS")

// Runner executes an external command and reports its exit status. An
// error is returned only when the command could not be run at all;
// command failure is an exit status, not an error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (int, error)
}

// ExecRunner runs commands with os/exec. Cancelling the context kills
// a command that is still running.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("running %s: %w", name, err)
	}
	return 0, nil
}

// Client wraps the system profiles utility. Construct through
// NewClient or NewSystemClient; the zero value has no runner.
type Client struct {
	runner Runner
	log    zerolog.Logger
}

// NewClient returns a Client that invokes commands through runner.
// Intended for tests and callers that need to intercept execution;
// production use goes through NewSystemClient.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner, log: zerolog.Nop()}
}

// NewSystemClient returns a Client backed by the real system utility,
// or ErrUnsupportedPlatform when not running on macOS.
func NewSystemClient() (*Client, error) {
	if runtime.GOOS != "darwin" {
		return nil, ErrUnsupportedPlatform
	}
	return NewClient(ExecRunner{}), nil
}

// WithLogger returns a copy of the client that logs through l.
func (c *Client) WithLogger(l zerolog.Logger) *Client {
	out := *c
	out.log = l
	return &out
}
