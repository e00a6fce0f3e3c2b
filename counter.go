package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when a matched file is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// countLines counts newline-terminated lines. A final line without a
// terminator still counts; empty content has no lines.
func countLines(content []byte) int {
	n := bytes.Count(content, []byte{'\n'})
	if len(content) > 0 && content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// countFile reads the whole file as text and counts its lines.
func countFile(path string) (FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("error reading file: %w", err)
	}
	if !utf8.Valid(content) {
		return FileInfo{}, fmt.Errorf("error reading file %s: %w", path, ErrInvalidUTF8)
	}

	ext, _ := extension(filepath.Base(path))
	return FileInfo{
		Path:  path,
		Ext:   ext,
		Size:  int64(len(content)),
		Lines: countLines(content),
	}, nil
}

// countFiles counts every file in order, reporting each one as soon as it is
// counted. The first failure stops the loop; lines already reported stay.
func countFiles(rep *Reporter, files []string) ([]FileInfo, Summary, error) {
	counted := make([]FileInfo, 0, len(files))
	var summary Summary
	for _, path := range files {
		file, err := countFile(path)
		if err != nil {
			return counted, summary, err
		}
		if err := rep.File(file); err != nil {
			return counted, summary, err
		}
		counted = append(counted, file)
		summary.Add(file)
	}
	return counted, summary, nil
}
