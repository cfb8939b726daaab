package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PlaceholderName is the empty-directory marker skipped by every walk
const PlaceholderName = ".gitkeep"

// ErrNotDirectory is returned when a walk starts at something other than a
// directory
var ErrNotDirectory = errors.New("not a directory")

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Ext returns the lowercase extension of the file, including the dot
func (f FileInfo) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// BasePath returns the directory relative paths are resolved against
func (d *Discovery) BasePath() string {
	return d.basePath
}

// FindFiles walks dir recursively and returns every regular file whose
// lowercase extension is in exts. Hidden files are excluded. Results follow
// lexical walk order. A missing dir yields an error satisfying
// errors.Is(err, fs.ErrNotExist).
func (d *Discovery) FindFiles(dir string, exts []string) ([]FileInfo, error) {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}

	return d.walk(dir, func(name string) bool {
		if strings.HasPrefix(name, ".") {
			return false
		}
		return allowed[strings.ToLower(filepath.Ext(name))]
	})
}

// FindAll walks dir recursively and returns every regular file except
// placeholder files
func (d *Discovery) FindAll(dir string) ([]FileInfo, error) {
	return d.walk(dir, func(name string) bool {
		return name != PlaceholderName
	})
}

func (d *Discovery) walk(dir string, keep func(name string) bool) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	stat, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, ErrNotDirectory)
	}

	var files []FileInfo
	err = filepath.WalkDir(fullPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() || !keep(entry.Name()) {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		files = append(files, FileInfo{
			Path:    path,
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", fullPath, err)
	}

	return files, nil
}

// resolve joins relative paths onto the base path
func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
