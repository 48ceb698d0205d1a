package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charm.land/log/v2"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "boxdeck.log")
	if err := Init(path, true); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	if Path() != path {
		t.Errorf("Path() = %q", Path())
	}

	log.Debug("drag begin", "panel", "accounts")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "drag begin") {
		t.Errorf("debug line missing from log:\n%s", data)
	}
}

func TestInfoLevelDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxdeck.log")
	if err := Init(path, false); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = Close() })

	log.Debug("hidden")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug line written at info level")
	}
}

func TestCloseIdempotent(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatal(err)
	}
	if err := Close(); err != nil {
		t.Fatal(err)
	}
}
