//go:build !windows

package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const DefaultConfigPath = "/etc/inventory/inventory.ini"

// RunAsService runs run in the foreground until it returns or the process
// receives SIGINT or SIGTERM, which cancels its context.
func RunAsService(run func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx)
}

func InstallService(args ...string) error {
	return fmt.Errorf("service installation not supported on this platform")
}

func UninstallService() error {
	return fmt.Errorf("service uninstallation not supported on this platform")
}

func StartService() error {
	return fmt.Errorf("service control not supported on this platform")
}

func StopService() error {
	return fmt.Errorf("service control not supported on this platform")
}

func ConfigPath() string {
	return DefaultConfigPath
}
