package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mstfugurlu/inventory/internal/cli"
	"github.com/mstfugurlu/inventory/internal/export"
	"github.com/mstfugurlu/inventory/internal/inventory"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func cmdList(ctx context.Context, c *runner, args []string) error {
	fs := newFlagSet("list")
	var f inventory.Filter
	fs.BoolVar(&f.Active, "active", false, "Show hosts holding a lease")
	fs.BoolVar(&f.Inactive, "inactive", false, "Show hosts without a lease")
	fs.BoolVar(&f.Known, "known", false, "Show hosts with a static mapping")
	fs.BoolVar(&f.Unknown, "unknown", false, "Show hosts without a static mapping")
	fs.BoolVar(&f.Conformant, "conformant", false, "Show hosts whose lease matches the mapping")
	fs.BoolVar(&f.Nonconformant, "nonconformant", false, "Show hosts whose lease differs from the mapping")
	groups := fs.String("group", "", "Show members of these comma separated groups")
	color := fs.Bool("color", false, "Color lines by host state")
	colour := fs.Bool("colour", false, "Alias for -color")
	mappings := fs.Bool("mappings", false, "List static mappings instead of hosts")
	members := fs.Bool("groups", false, "List group memberships instead of hosts")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}

	switch {
	case *mappings:
		list, err := c.app.Mappings().Mappings(ctx)
		if err != nil {
			return err
		}
		c.print(cli.RenderMappings(list))
		return nil
	case *members:
		list, err := c.app.Mappings().GroupMembers(ctx)
		if err != nil {
			return err
		}
		c.print(cli.RenderGroupMembers(list))
		return nil
	}

	if *groups != "" {
		f.Groups = strings.Split(*groups, ",")
	}
	hosts, err := c.app.View().List(ctx, f)
	if err != nil {
		return err
	}
	c.print(cli.NewHostRenderer(*color || *colour).Render(hosts))
	return nil
}

func parseMapping(name string, args []string) (inventory.Mapping, error) {
	fs := newFlagSet(name)
	disabled := fs.Bool("disabled", false, "Store the mapping as disabled")
	comment := fs.String("comment", "", "Free text comment")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return inventory.Mapping{}, err
	}

	m := inventory.Mapping{Enabled: !*disabled, Comment: *comment}
	if len(positional) > 0 {
		m.MAC = positional[0]
	}
	if len(positional) > 1 {
		m.IP = positional[1]
	}
	if len(positional) > 2 {
		m.Hostname = positional[2]
	}
	return m, nil
}

func cmdMap(ctx context.Context, c *runner, args []string) error {
	m, err := parseMapping("map", args)
	if err != nil {
		return err
	}
	return c.app.Mappings().Map(ctx, m)
}

func cmdRemap(ctx context.Context, c *runner, args []string) error {
	m, err := parseMapping("remap", args)
	if err != nil {
		return err
	}
	return c.app.Mappings().Remap(ctx, m)
}

func cmdUnmap(ctx context.Context, c *runner, args []string) error {
	mac := ""
	if len(args) > 0 {
		mac = args[0]
	}
	return c.app.Mappings().Unmap(ctx, mac)
}

func cmdGroup(ctx context.Context, c *runner, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: group add|del <group> <hostname>", inventory.ErrInvalidInput)
	}

	switch args[0] {
	case "add":
		return c.app.Mappings().AddGroupMember(ctx, args[1], args[2])
	case "del":
		return c.app.Mappings().RemoveGroupMember(ctx, args[1], args[2])
	}
	return fmt.Errorf("%w: unknown group action %q", inventory.ErrInvalidInput, args[0])
}

func cmdExport(ctx context.Context, c *runner, args []string) error {
	cfg := c.app.Config

	fs := newFlagSet("export")
	format := fs.String("format", cfg.ExportFormat, "Output format")
	out := fs.String("out", "", "Output file (default from config)")
	stdout := fs.Bool("stdout", false, "Write to standard output instead of a file")
	reload := fs.Bool("reload", false, "Reload the consuming service after writing the file")
	watch := fs.Bool("watch", false, "Export again whenever the database changes")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}

	opts := export.Options{Format: *format, Reload: *reload}
	switch {
	case *stdout && *out != "":
		return fmt.Errorf("%w: -out and -stdout are mutually exclusive", inventory.ErrInvalidOptions)
	case *stdout:
		opts.Sink = c.stdout
	case *out != "":
		opts.Path = *out
	default:
		opts.Path = cfg.ExportPath
	}

	exporter := c.app.Exporter()
	if !*watch {
		_, err := exporter.Export(ctx, opts)
		if err == nil && opts.Sink != nil {
			fmt.Fprintln(c.stdout)
		}
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return exporter.Watch(ctx, c.app.Store.Path(), opts, export.DefaultDebounce)
}
