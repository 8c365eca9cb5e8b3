package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDataDirXDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	got := DefaultDataDir()
	if got != filepath.Join(dir, "dome-relay") {
		t.Fatalf("data dir = %s", got)
	}
}

func TestDefaultDataDirNonEmpty(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	got := DefaultDataDir()
	if got == "" {
		t.Fatal("empty data dir")
	}
	if !filepath.IsAbs(got) && !strings.HasPrefix(got, "./") {
		t.Fatalf("data dir neither absolute nor relative dotdir: %s", got)
	}
}

func TestDefaultDataDirStable(t *testing.T) {
	if DefaultDataDir() != DefaultDataDir() {
		t.Fatal("data dir not stable across calls")
	}
}
