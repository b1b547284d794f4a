package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 2 * time.Second

// Watch exports once, then again whenever the database file at dbPath
// changes. Bursts of writes within debounce collapse into one export.
// Export failures are logged and watching continues; Watch returns when ctx
// is done.
func (e *Exporter) Watch(ctx context.Context, dbPath string, opts Options, debounce time.Duration) error {
	if dbPath == "" {
		return fmt.Errorf("watch: no database file to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// sqlite replaces journal files next to the database, so watch the
	// directory and match on name.
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	e.runWatched(ctx, opts)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !touchesDatabase(event, abs) {
				continue
			}
			e.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("database changed")
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.log.Warn().Err(err).Msg("watch error")

		case <-timer.C:
			e.runWatched(ctx, opts)
		}
	}
}

func (e *Exporter) runWatched(ctx context.Context, opts Options) {
	if _, err := e.Export(ctx, opts); err != nil {
		e.log.Error().Err(err).Msg("watched export failed")
	}
}

func touchesDatabase(event fsnotify.Event, dbPath string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == dbPath || strings.HasPrefix(name, dbPath+"-")
}
