package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

var DefaultReloadCommand = []string{"sudo", "-n", "systemctl", "reload", "dnsmasq"}

// CommandReloader reloads the consuming service by running an external
// command to completion.
type CommandReloader struct {
	Command []string
}

func NewCommandReloader(command string) *CommandReloader {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = DefaultReloadCommand
	}
	return &CommandReloader{Command: fields}
}

func (r *CommandReloader) Reload(ctx context.Context) error {
	if len(r.Command) == 0 {
		return fmt.Errorf("%w: no reload command", inventory.ErrSubprocessFailure)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	msg := strings.TrimSpace(stderr.String())
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg != "" {
			return fmt.Errorf("%w: %s exited with status %d: %s", inventory.ErrSubprocessFailure, r.String(), exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("%w: %s exited with status %d", inventory.ErrSubprocessFailure, r.String(), exitErr.ExitCode())
	}
	return fmt.Errorf("%w: %s: %w", inventory.ErrSubprocessFailure, r.String(), err)
}

func (r *CommandReloader) String() string {
	return strings.Join(r.Command, " ")
}
