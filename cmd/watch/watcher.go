package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/LegacyCodeHQ/unify/bundler"
	"github.com/LegacyCodeHQ/unify/headers"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

func watchAndRebundle(ctx context.Context, cfg bundler.Config) error {
	outputAbs, err := filepath.Abs(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve output path %s: %w", cfg.OutputPath, err)
	}

	return watchLoop(ctx, cfg.InputDirs, outputAbs, func() {
		rebundle(cfg)
	})
}

// watchLoop drives the fsnotify event loop, invoking rebundle once up front
// and then after each debounced burst of header changes.
func watchLoop(ctx context.Context, dirs []string, outputAbs string, rebundle func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// The collector scans input directories non-recursively, so only the
	// directories themselves need watching.
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	rebundle()

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event, outputAbs) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, rebundle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "err", err)
		}
	}
}

func rebundle(cfg bundler.Config) {
	start := time.Now()
	result, err := bundler.Make(cfg)
	if err != nil {
		log.Error("bundle failed", "err", err)
		return
	}
	log.Info("bundled",
		"output", cfg.OutputPath,
		"headers", len(result.Order),
		"system_includes", len(result.Hoisted),
		"took", time.Since(start).Round(time.Millisecond))
}

// isRelevantChange reports whether an event should trigger a rebundle: a
// header file changed, and it is not the generated output itself.
func isRelevantChange(event fsnotify.Event, outputAbs string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if !headers.IsHeaderFile(filepath.Base(event.Name)) {
		return false
	}
	if abs, err := filepath.Abs(event.Name); err == nil && abs == outputAbs {
		return false
	}
	return true
}
