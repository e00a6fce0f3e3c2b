package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// Walker collects the files under a root directory whose extension passes the
// filter. Directories are visited depth-first, entries in os.ReadDir order.
type Walker struct {
	Extensions []string                // Without leading dot. Empty matches any extension.
	Ignore     gitignore.IgnoreMatcher // Optional, matched against the joined entry path.
	Logger     *slog.Logger            // Defaults to slog.Default().
}

func (w *Walker) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}

// Walk returns the matching files under root. A root that exists but is not a
// directory yields no files. Any error reading a directory aborts the walk.
func (w *Walker) Walk(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing path: %w", err)
	}
	if !info.IsDir() {
		w.logger().Debug("Root is not a directory, nothing to count.", "path", root)
		return nil, nil
	}

	var files []string
	if err := w.visitDirectory(root, &files); err != nil {
		return nil, err
	}
	w.logger().Debug("Walk finished.", "root", root, "files", len(files))
	return files, nil
}

func (w *Walker) visitDirectory(dir string, files *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}

	for _, entry := range entries {
		path := joinPath(dir, entry.Name())
		isDir := isDirEntry(path, entry)

		if w.Ignore != nil && w.Ignore.Match(path, isDir) {
			w.logger().Debug("Skipping ignored entry.", "path", path)
			continue
		}

		if isDir {
			if err := w.visitDirectory(path, files); err != nil {
				return err
			}
			continue
		}

		ext, ok := extension(entry.Name())
		if !ok || !matchesExtension(ext, w.Extensions) {
			continue
		}
		*files = append(*files, path)
	}
	return nil
}

// isDirEntry reports whether the entry is a directory, following symlinks.
// A dangling link counts as a file.
func isDirEntry(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// joinPath appends name to dir without cleaning, so "." stays visible as "./name".
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) || strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

// extension returns the text after the last dot of a base name. Names without
// a dot and names whose only dot is the leading one have no extension.
func extension(name string) (string, bool) {
	if name == ".." {
		return "", false
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}
	return name[i+1:], true
}

// matchesExtension reports whether ext is accepted by the filter.
func matchesExtension(ext string, filter []string) bool {
	return len(filter) == 0 || slices.Contains(filter, ext)
}

// parseExtensions splits the comma-separated extension argument. Elements are
// kept verbatim.
func parseExtensions(arg string) []string {
	return strings.Split(arg, ",")
}

// loadGitIgnore returns a matcher for root/.gitignore, or nil when the file
// does not exist.
func loadGitIgnore(root string) (gitignore.IgnoreMatcher, error) {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error accessing .gitignore: %w", err)
	}
	matcher, err := gitignore.NewGitIgnore(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing .gitignore %s: %w", path, err)
	}
	return matcher, nil
}
