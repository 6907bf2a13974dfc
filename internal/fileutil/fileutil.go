// Package fileutil provides small filesystem helpers shared by the command
// handlers: existence checks, idempotent directory creation, and image
// discovery with extension filtering.
package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exists reports whether path refers to an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir and any missing parents. Existing directories are
// left untouched.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// NormalizeExtensions lowercases the provided extensions and guarantees a
// leading dot, returning a set suitable for matching.
func NormalizeExtensions(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// DiscoverImages returns the files under root whose extension matches one of
// exts (case-insensitive). When recursive is false only the immediate
// directory is considered. Paths come back sorted so discovery is
// deterministic regardless of filesystem iteration order.
func DiscoverImages(root string, exts []string, recursive bool) ([]string, error) {
	set := NormalizeExtensions(exts)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := set[strings.ToLower(filepath.Ext(path))]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
