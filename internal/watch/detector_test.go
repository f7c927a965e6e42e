package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/clockhand/internal/watch"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestScanStableForUnchangedTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "world")

	fp1 := watch.Scan(root)
	fp2 := watch.Scan(root)
	if fp1 != fp2 {
		t.Errorf("fingerprint changed without file changes: %q vs %q", fp1, fp2)
	}
}

func TestScanDetectsNewFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")

	fp1 := watch.Scan(root)
	writeFile(t, filepath.Join(root, "b.txt"), "new")
	fp2 := watch.Scan(root)

	if fp1 == fp2 {
		t.Error("fingerprint did not change after adding a file")
	}
}

func TestScanDetectsModification(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	writeFile(t, path, "hello")

	fp1 := watch.Scan(root)

	// Bump the mtime explicitly so the test doesn't depend on filesystem
	// timestamp granularity.
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	fp2 := watch.Scan(root)

	if fp1 == fp2 {
		t.Error("fingerprint did not change after touching a file")
	}
}

func TestScanDetectsRemoval(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	writeFile(t, path, "hello")
	writeFile(t, filepath.Join(root, "b.txt"), "keep")

	fp1 := watch.Scan(root)
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	fp2 := watch.Scan(root)

	if fp1 == fp2 {
		t.Error("fingerprint did not change after removing a file")
	}
}

func TestScanMissingRootDoesNotPanic(t *testing.T) {
	fp := watch.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if fp == "" {
		t.Error("Scan returned the absent fingerprint for a missing root")
	}
}

func TestScanIgnoresDirectoryEntries(t *testing.T) {
	// Adding an empty directory is not a tracked change; only regular
	// files feed the digest.
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")

	fp1 := watch.Scan(root)
	if err := os.Mkdir(filepath.Join(root, "empty"), 0o700); err != nil {
		t.Fatal(err)
	}
	fp2 := watch.Scan(root)

	if fp1 != fp2 {
		t.Error("fingerprint changed after creating an empty directory")
	}
}
