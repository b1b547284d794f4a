package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

const DefaultPath = "/etc/dnsmasq.d/inventory.conf"

// HostSource supplies the hosts that have a static mapping.
type HostSource interface {
	Known(ctx context.Context) ([]inventory.Host, error)
}

type Reloader interface {
	Reload(ctx context.Context) error
}

// Options selects the format and destination of one export. Exactly one of
// Path and Sink is used; Reload needs a Path.
type Options struct {
	Format string
	Path   string
	Sink   io.Writer
	Reload bool
}

type Result struct {
	Path     string
	Hosts    int
	Reloaded bool
}

// ReloadError reports a reload failure after the export file was written
// successfully.
type ReloadError struct {
	Path string
	Err  error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("export written to %s, reload failed: %v", e.Path, e.Err)
}

func (e *ReloadError) Unwrap() error {
	return e.Err
}

type Exporter struct {
	source   HostSource
	formats  *Registry
	reloader Reloader
	log      zerolog.Logger
	now      func() time.Time
}

func New(source HostSource, formats *Registry, reloader Reloader, log zerolog.Logger) *Exporter {
	if formats == nil {
		formats = DefaultRegistry()
	}
	return &Exporter{
		source:   source,
		formats:  formats,
		reloader: reloader,
		log:      log.With().Str("component", "export").Logger(),
		now:      time.Now,
	}
}

// Render produces the complete output for format, header included, without
// a trailing newline.
func (e *Exporter) Render(ctx context.Context, format string) (string, int, error) {
	if format == "" {
		format = DefaultFormat
	}
	f, err := e.formats.Lookup(format)
	if err != nil {
		return "", 0, err
	}

	hosts, err := e.source.Known(ctx)
	if err != nil {
		return "", 0, err
	}

	out := header(f.Name(), e.now())
	if body := f.Render(hosts); body != "" {
		out += "\n" + body
	}
	return out, len(hosts), nil
}

func header(format string, generated time.Time) string {
	return fmt.Sprintf("# Generated by inventory (%s format) at %s\n# Do not edit. Regenerate with: inventory export --format %s",
		format, generated.UTC().Format(time.RFC3339), format)
}

func (e *Exporter) Export(ctx context.Context, opts Options) (Result, error) {
	if err := opts.validate(e.reloader != nil); err != nil {
		return Result{}, err
	}

	out, n, err := e.Render(ctx, opts.Format)
	if err != nil {
		return Result{}, err
	}

	if opts.Sink != nil {
		if _, err := io.WriteString(opts.Sink, out); err != nil {
			return Result{}, fmt.Errorf("write export: %w", err)
		}
		return Result{Hosts: n}, nil
	}

	if err := writeFile(opts.Path, out+"\n"); err != nil {
		e.log.Error().Err(err).Str("path", opts.Path).Msg("export write failed")
		return Result{}, err
	}
	res := Result{Path: opts.Path, Hosts: n}
	e.log.Info().Str("path", opts.Path).Int("hosts", n).Msg("export written")

	if !opts.Reload {
		return res, nil
	}
	if err := e.reloader.Reload(ctx); err != nil {
		if !errors.Is(err, inventory.ErrSubprocessFailure) {
			err = fmt.Errorf("%w: %w", inventory.ErrSubprocessFailure, err)
		}
		e.log.Error().Err(err).Str("path", opts.Path).Msg("reload failed")
		return res, &ReloadError{Path: opts.Path, Err: err}
	}

	res.Reloaded = true
	e.log.Info().Msg("consumer reloaded")
	return res, nil
}

func (o Options) validate(canReload bool) error {
	switch {
	case o.Sink != nil && o.Reload:
		return fmt.Errorf("%w: reload requires a file destination, not a sink", inventory.ErrInvalidOptions)
	case o.Sink != nil && o.Path != "":
		return fmt.Errorf("%w: path and sink are mutually exclusive", inventory.ErrInvalidOptions)
	case o.Sink == nil && o.Path == "":
		return fmt.Errorf("%w: an output path or sink is required", inventory.ErrInvalidOptions)
	case o.Reload && !canReload:
		return fmt.Errorf("%w: no reload command configured", inventory.ErrInvalidOptions)
	}
	return nil
}

// writeFile replaces path through a rename so readers never see a partial
// file.
func writeFile(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
