package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const reloadDebounce = 300 * time.Millisecond

// watchFiles calls reload after any of paths is written, created or renamed
// into place. Bursts of events within reloadDebounce collapse into one call.
// The parent directories are watched so editors that replace files are seen.
// Reloads run one at a time on the watcher goroutine, in event order.
func watchFiles(ctx context.Context, paths []string, reload func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}

	wanted := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return fmt.Errorf("watcher: %w", err)
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	go func() {
		defer w.Close()
		due := make(chan struct{}, 1)
		signal := func() {
			select {
			case due <- struct{}{}:
			default:
			}
		}
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				abs, _ := filepath.Abs(ev.Name)
				if !wanted[abs] {
					continue
				}
				log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("data file changed")
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, signal)
			case <-due:
				reload()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("watcher error")
			}
		}
	}()
	return nil
}
