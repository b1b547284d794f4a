// Command dhcp-hook records lease events. Point dnsmasq at it with
// --dhcp-script; it is invoked as
//
//	dhcp-hook add|old <mac> <ip> [hostname]
//	dhcp-hook del <mac> <ip> [hostname]
//
// Configuration comes from INVENTORY_CONFIG or the default path.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mstfugurlu/inventory/internal/app"
	"github.com/mstfugurlu/inventory/internal/config"
	"github.com/mstfugurlu/inventory/internal/service"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "[ERROR] usage: dhcp-hook add|old|del <macaddr> [ipaddr] [hostname]")
		return 1
	}

	a, err := app.Open(config.Path("", service.ConfigPath()))
	if err != nil {
		fmt.Fprintln(stderr, "[ERROR]", err)
		return 1
	}
	defer a.Close()

	hook := a.Hook()
	verb := args[0]
	if !hook.Handles(verb) {
		// init, tftp, arp-add and friends
		return 0
	}

	if err := hook.Handle(ctx, verb, args[1:]); err != nil {
		fmt.Fprintln(stderr, "[ERROR]", err)
		return 1
	}
	return 0
}
