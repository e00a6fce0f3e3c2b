package main

import (
	"errors"
	"fmt"
	"os"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// errSelectionAborted is returned when the user leaves the picker without
// choosing a directory.
var errSelectionAborted = errors.New("interactive selection aborted")

// collectDirectories lists root and every directory below it, following
// symlinked directories the same way the counting walk does.
func collectDirectories(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("error scanning for directories: %s is not a directory", root)
	}

	dirs := []string{root}
	var visit func(dir string) error
	visit = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("error scanning for directories: %w", err)
		}
		for _, entry := range entries {
			path := joinPath(dir, entry.Name())
			if !isDirEntry(path, entry) {
				continue
			}
			dirs = append(dirs, path)
			if err := visit(path); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root); err != nil {
		return nil, err
	}
	return dirs, nil
}

// pickDirectory opens a fuzzy finder over the directories under root.
func pickDirectory(root string) (string, error) {
	candidates, err := collectDirectories(root)
	if err != nil {
		return "", err
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory to count. Enter to confirm, Esc to abort."
			}
			entries, readErr := os.ReadDir(candidates[i])
			if readErr != nil {
				return fmt.Sprintf("Path: %s\nError reading directory: %v", candidates[i], readErr)
			}
			return fmt.Sprintf("Path: %s\nEntries: %d", candidates[i], len(entries))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errSelectionAborted
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}
