package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPersist_Success(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "testapp", "crash")
	var stderr bytes.Buffer
	w := NewWriter(&stderr)

	content := []byte("captured_at = '2026-01-02T03:04:05Z'\n")
	path, err := w.Persist(content, dir, "01ARZ3NDEKTSV4RRFFQ69G5FAV", "testapp", "https://github.com/example/testapp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(dir, "01ARZ3NDEKTSV4RRFFQ69G5FAV.toml")
	if path != want {
		t.Errorf("expected path %s, got %s", want, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report file not readable: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("file content mismatch: %q", data)
	}

	out := stderr.String()
	if !strings.Contains(out, "testapp has crashed!") {
		t.Errorf("notice missing crash line:\n%s", out)
	}
	abs, _ := filepath.Abs(path)
	if !strings.Contains(out, abs) {
		t.Errorf("notice missing report path %s:\n%s", abs, out)
	}
	if !strings.Contains(out, "https://github.com/example/testapp/issues") {
		t.Errorf("notice missing issues URL:\n%s", out)
	}
}

func TestPersist_FallbackToStderr(t *testing.T) {
	t.Parallel()

	// Occupy the parent path with a regular file so MkdirAll fails.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(blocker, "crash")

	var stderr bytes.Buffer
	w := NewWriter(&stderr)

	content := []byte("package_name = 'testapp'\nbacktrace = 'stack'\n")
	path, err := w.Persist(content, dir, "01ARZ3NDEKTSV4RRFFQ69G5FAV", "testapp", "https://github.com/example/testapp")
	if err == nil {
		t.Fatal("expected persistence to fail")
	}
	if path != "" {
		t.Errorf("expected empty path on failure, got %s", path)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "01ARZ3NDEKTSV4RRFFQ69G5FAV.toml")); statErr == nil {
		t.Error("no report file should exist after failed persist")
	}

	out := stderr.String()
	failIdx := strings.Index(out, "error: failed to save crash report to")
	fallbackIdx := strings.Index(out, "error: writing crash report directly to stderr")
	contentIdx := strings.Index(out, "package_name = 'testapp'")

	if failIdx < 0 || fallbackIdx < 0 || contentIdx < 0 {
		t.Fatalf("fallback sequence incomplete:\n%s", out)
	}
	if !(failIdx < fallbackIdx && fallbackIdx < contentIdx) {
		t.Errorf("fallback sequence out of order:\n%s", out)
	}
	if strings.Count(out, separator) < 4 {
		t.Errorf("expected four separators, output:\n%s", out)
	}
	if strings.Contains(out, "has crashed!") {
		t.Errorf("success notice must not be printed on failure:\n%s", out)
	}
}

func TestPersist_DistinctIDsDistinctFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "crash")
	w := NewWriter(&bytes.Buffer{})

	first, err := w.Persist([]byte("a = 1\n"), dir, "01AAAAAAAAAAAAAAAAAAAAAAAA", "app", "https://example.com/r")
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.Persist([]byte("a = 2\n"), dir, "01BBBBBBBBBBBBBBBBBBBBBBBB", "app", "https://example.com/r")
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatalf("expected distinct paths, both were %s", first)
	}

	entries, err := ListReports(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(entries))
	}
}

func TestListReports_OrderAndFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"01C.toml", "01A.toml", "01B.toml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x = 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.toml"), 0o750); err != nil {
		t.Fatal(err)
	}

	entries, err := ListReports(dir)
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	want := []string{"01A", "01B", "01C"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Latest(dir); err == nil {
		t.Error("expected error for empty dir")
	}

	for _, name := range []string{"01A.toml", "01B.toml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x = 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := Latest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != "01B" {
		t.Errorf("expected latest id 01B, got %s", latest.ID)
	}
}

func TestPrune(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"01A.toml", "01B.toml", "01C.toml", "01D.toml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x = 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := Prune(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removals, got %v", removed)
	}

	entries, err := ListReports(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].ID != "01C" || entries[1].ID != "01D" {
		t.Errorf("expected newest two to survive, got %v", entries)
	}
}
