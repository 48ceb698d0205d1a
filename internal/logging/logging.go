// Package logging routes the process-wide charm logger to a file so TUI
// output stays clean.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
)

var (
	mu      sync.Mutex
	logFile *os.File
	logPath string
)

// DefaultPath returns the log file location under the XDG state directory.
func DefaultPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("boxdeck", "boxdeck.log"))
	if err != nil {
		return "", fmt.Errorf("resolve log path: %w", err)
	}
	return path, nil
}

// Init opens path for appending and installs it as the default logger.
// An empty path uses DefaultPath. Calling Init again replaces the file.
func Init(path string, debug bool) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logPath = path

	log.SetDefault(New(f, "", debug))
	log.Info("logger initialized", "path", path, "debug", debug)
	return nil
}

// New builds a logger in the format used across boxdeck.
func New(w io.Writer, prefix string, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Path returns the file opened by Init, if any.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Discard silences the default logger.
func Discard() {
	log.SetDefault(New(io.Discard, "", false))
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	Discard()
	return err
}
