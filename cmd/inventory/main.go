package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mstfugurlu/inventory/internal/app"
	"github.com/mstfugurlu/inventory/internal/config"
	"github.com/mstfugurlu/inventory/internal/service"
)

const usage = `usage: inventory [-config path] <command> [arguments]

commands:
  list   [-active] [-inactive] [-known] [-unknown] [-conformant] [-nonconformant] [-group a,b] [-color]
  list   -mappings | -groups
  map    <macaddr> <ipaddr> <hostname> [-disabled] [-comment text]
  remap  <macaddr> <ipaddr> <hostname> [-disabled] [-comment text]
  unmap  <macaddr>
  group  add|del <group> <hostname>
  export [-format dnsmasq] [-out path | -stdout] [-reload] [-watch]
`

type runner struct {
	app    *app.App
	stdout io.Writer
}

type command func(ctx context.Context, c *runner, args []string) error

var commands = map[string]command{
	"list":   cmdList,
	"map":    cmdMap,
	"remap":  cmdRemap,
	"unmap":  cmdUnmap,
	"group":  cmdGroup,
	"export": cmdExport,
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inventory", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "", "Config file path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "[ERROR] No such action: %s. Available actions: list, map, remap, unmap, group, export.\n", name)
		return 2
	}

	a, err := app.Open(config.Path(*configPath, service.ConfigPath()))
	if err != nil {
		fmt.Fprintln(stderr, "[ERROR]", err)
		return 1
	}
	defer a.Close()

	if err := cmd(ctx, &runner{app: a, stdout: stdout}, fs.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(stderr, usage)
			return 2
		}
		fmt.Fprintln(stderr, "[ERROR]", err)
		return 1
	}
	return 0
}

func (c *runner) print(out string) {
	if out != "" {
		fmt.Fprintln(c.stdout, out)
	}
}

// parseInterspersed lets flags follow positional arguments, so that
// "map aa 10.0.0.5 foo -disabled" parses like "map -disabled aa 10.0.0.5 foo".
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}
