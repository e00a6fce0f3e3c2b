package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL checks if the input string looks like a Git repository URL.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo shallow-clones url into a temporary directory and returns its
// path. The caller removes the directory.
func cloneGitRepo(ctx context.Context, url string, progress io.Writer, logger *slog.Logger) (string, error) {
	tempDir, err := os.MkdirTemp("", "tally-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	logger.Info("Cloning Git repository.", "url", url, "dir", tempDir)
	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}

	// Only the working tree is counted; pack files are binary.
	if err := os.RemoveAll(filepath.Join(tempDir, ".git")); err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to remove repository metadata: %w", err)
	}

	logger.Info("Finished cloning.", "url", url)
	return tempDir, nil
}
