package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gookit/color"
)

const separatorWidth = 80

var separator = strings.Repeat("─", separatorWidth)

// Reporter writes the framed report. Every line is also kept uncolored so the
// finished report can be exported.
type Reporter struct {
	out   io.Writer
	color bool
	plain strings.Builder
}

// NewReporter returns a Reporter writing to out. Styling is applied only when
// useColor is set.
func NewReporter(out io.Writer, useColor bool) *Reporter {
	return &Reporter{out: out, color: useColor}
}

func (r *Reporter) style(c color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

func (r *Reporter) writeLine(styled, plain string) error {
	if _, err := io.WriteString(r.out, styled+"\n"); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	r.plain.WriteString(plain)
	r.plain.WriteByte('\n')
	return nil
}

// Separator writes the horizontal frame line.
func (r *Reporter) Separator() error {
	return r.writeLine(separator, separator)
}

// File writes "<path>: <lines>".
func (r *Reporter) File(f FileInfo) error {
	return r.pair(color.Green, f.Path, fmt.Sprint(f.Lines))
}

// Total writes "Total lines: <total>".
func (r *Reporter) Total(total int) error {
	return r.pair(color.Green, "Total lines", fmt.Sprint(total))
}

// Error writes the error frame.
func (r *Reporter) Error(err error) error {
	if werr := r.Separator(); werr != nil {
		return werr
	}
	line := fmt.Sprintf("%s: %s", r.style(color.Red, "Error"), r.style(color.White, err.Error()))
	if werr := r.writeLine(line, "Error: "+err.Error()); werr != nil {
		return werr
	}
	return r.Separator()
}

// Languages writes one "<language>: <lines> lines in <files> files" row per
// language, followed by a separator.
func (r *Reporter) Languages(stats []LanguageStat) error {
	for _, s := range stats {
		value := fmt.Sprintf("%d lines in %d files", s.Lines, s.Files)
		if err := r.pair(color.Magenta, s.Name, value); err != nil {
			return err
		}
	}
	return r.Separator()
}

func (r *Reporter) pair(keyColor color.Color, key, value string) error {
	styled := fmt.Sprintf("%s: %s", r.style(keyColor, key), r.style(color.Cyan, value))
	return r.writeLine(styled, key+": "+value)
}

// Plain returns everything written so far, without styling.
func (r *Reporter) Plain() string {
	return r.plain.String()
}

// saveOutputFile writes the plain report to path.
func saveOutputFile(path, report string) error {
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("error writing to file %s: %w", path, err)
	}
	return nil
}

// copyToClipboard places the plain report on the system clipboard.
func copyToClipboard(report string) error {
	if err := clipboard.WriteAll(report); err != nil {
		return fmt.Errorf("error writing to clipboard: %w", err)
	}
	return nil
}
