package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// DataTree builds a project root with a data/ directory for catalog tests
type DataTree struct {
	t    *testing.T
	Root string
}

// NewDataTree creates an empty project root under t.TempDir()
func NewDataTree(t *testing.T) *DataTree {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "data"), 0755); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	return &DataTree{t: t, Root: root}
}

// Path returns the absolute path of a slash-separated name under data/
func (d *DataTree) Path(name string) string {
	return filepath.Join(d.Root, "data", filepath.FromSlash(name))
}

// Write creates data/<name> with the given content, creating parents
func (d *DataTree) Write(name, content string) string {
	d.t.Helper()
	path := d.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		d.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		d.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteSized creates data/<name> holding size zero bytes
func (d *DataTree) WriteSized(name string, size int) string {
	d.t.Helper()
	return d.Write(name, string(make([]byte, size)))
}

// Touch sets the modification time of data/<name>
func (d *DataTree) Touch(name string, mtime time.Time) {
	d.t.Helper()
	if err := os.Chtimes(d.Path(name), mtime, mtime); err != nil {
		d.t.Fatalf("failed to touch %s: %v", name, err)
	}
}

// Mkdir creates an empty data/<name> directory
func (d *DataTree) Mkdir(name string) {
	d.t.Helper()
	if err := os.MkdirAll(d.Path(name), 0755); err != nil {
		d.t.Fatalf("failed to create %s: %v", name, err)
	}
}
