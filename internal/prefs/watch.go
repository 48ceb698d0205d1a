package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"charm.land/log/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/Gaurav-Gosain/boxdeck/internal/config"
)

// Watch reloads s whenever another process rewrites its file and calls fn
// after each reload that changed the stored values. Bursts of events are
// coalesced. Watch blocks until ctx is done.
func Watch(ctx context.Context, s *FileStore, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prefs watcher: %w", err)
	}
	defer watcher.Close()

	// The file is replaced by rename on every write, so watch the directory.
	dir := filepath.Dir(s.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	name := filepath.Clean(s.Path())
	timer := time.NewTimer(time.Hour)
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
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				log.Debug("prefs file event", "op", event.Op.String(), "file", event.Name)
				timer.Reset(config.PrefsDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("prefs watcher error", "err", err)

		case <-timer.C:
			changed, err := s.Reload()
			if err != nil {
				log.Warn("failed to reload prefs", "err", err)
				continue
			}
			if changed && fn != nil {
				log.Debug("prefs reloaded from external change")
				fn()
			}
		}
	}
}
