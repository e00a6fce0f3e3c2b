package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runForTest(t *testing.T, args Args, opts Options) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), &out, io.Discard, args, opts, discardLogger())
	return out.String(), err
}

func TestReadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Args
	}{
		{"defaults", nil, Args{Directory: "."}},
		{"directory only", []string{"src"}, Args{Directory: "src"}},
		{"directory and extensions", []string{"src", "rs,go"}, Args{Directory: "src", Extensions: []string{"rs", "go"}}},
		{"extensions kept verbatim", []string{"src", ".rs, go"}, Args{Directory: "src", Extensions: []string{".rs", " go"}}},
		{"extra arguments ignored", []string{"src", "go", "ignored"}, Args{Directory: "src", Extensions: []string{"go"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readArgs(tt.args))
		})
	}
}

func TestRun_Report(t *testing.T) {
	root := t.TempDir()
	a := write(t, root, "a.rs", "fn a() {}\nfn b() {}\n")
	write(t, root, "b.txt", "ignored\n")
	c := write(t, root, "sub/c.rs", "x\ny\nz")

	out, err := runForTest(t, Args{Directory: root, Extensions: []string{"rs"}}, Options{})
	require.NoError(t, err)

	want := separator + "\n" +
		a + ": 2\n" +
		c + ": 3\n" +
		separator + "\n" +
		"Total lines: 5\n" +
		separator + "\n"
	assert.Equal(t, want, out)
}

func TestRun_EmptyTree(t *testing.T) {
	out, err := runForTest(t, Args{Directory: t.TempDir()}, Options{})
	require.NoError(t, err)
	assert.Equal(t, separator+"\n"+separator+"\nTotal lines: 0\n"+separator+"\n", out)
}

func TestRun_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	out, err := runForTest(t, Args{Directory: missing}, Options{})
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.ErrorIs(t, err, os.ErrNotExist)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, separator, lines[0])
	assert.Equal(t, separator, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Error: "), lines[2])
	assert.Equal(t, separator, lines[3])
	assert.NotContains(t, out, "Total lines")
}

func TestRun_ReadErrorKeepsEarlierLines(t *testing.T) {
	root := t.TempDir()
	a := write(t, root, "a.txt", "fine\n")
	write(t, root, "b.txt", "\xff\xfe")

	out, err := runForTest(t, Args{Directory: root}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.True(t, strings.HasPrefix(out, separator+"\n"+a+": 1\n"+separator+"\nError: "), out)
	assert.NotContains(t, out, "Total lines")
}

func TestRun_Idempotent(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.go", "package a\n")
	write(t, root, "x/y/z.go", "package z\n\nvar Z = 1\n")

	first, err := runForTest(t, Args{Directory: root}, Options{})
	require.NoError(t, err)
	second, err := runForTest(t, Args{Directory: root}, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_OutputFileMatchesStdout(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.go", "package a\n")
	report := filepath.Join(t.TempDir(), "report.txt")

	out, err := runForTest(t, Args{Directory: root}, Options{OutputFile: report})
	require.NoError(t, err)

	saved, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, out, string(saved))
}

func TestRun_Languages(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.go", "1\n2\n3\n")
	write(t, root, "b.rs", "1\n")
	write(t, root, "c.zzz", "1\n2\n")

	out, err := runForTest(t, Args{Directory: root}, Options{Languages: true})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out,
		"Total lines: 6\n"+separator+"\n"+
			"Go: 3 lines in 1 files\n"+
			"Other: 2 lines in 1 files\n"+
			"Rust: 1 lines in 1 files\n"+
			separator+"\n"), out)
}

func TestRun_GitIgnore(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".gitignore", "build\n")
	keep := write(t, root, "main.go", "package main\n")
	write(t, root, "build/gen.go", "package build\n")

	out, err := runForTest(t, Args{Directory: root}, Options{GitIgnore: true})
	require.NoError(t, err)
	assert.Contains(t, out, keep+": 1\n")
	assert.NotContains(t, out, "gen.go")

	out, err = runForTest(t, Args{Directory: root}, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "gen.go")
}

func TestRun_PDFExportFailureIsFramed(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.go", "package a\n")
	bad := filepath.Join(t.TempDir(), "missing", "report.pdf")

	out, err := runForTest(t, Args{Directory: root}, Options{PDFFile: bad})
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(out, separator+"\n"), out)
	assert.Contains(t, out, "Error: failed to save PDF")
}

func TestRootCmd_Execute(t *testing.T) {
	root := t.TempDir()
	a := write(t, root, "a.go", "package a\n\nfunc A() {}\n")
	write(t, root, "README", "no extension\n")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{root, "go", "--no-color"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, separator+"\n"+a+": 3\n"+separator+"\nTotal lines: 3\n"+separator+"\n", out.String())
}

func TestRootCmd_MissingDirectoryExitCode(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing"), "--no-color"})

	err := cmd.Execute()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, out.String(), "Error: ")
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{t.TempDir(), "--log-level", "loud"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log-level")
	assert.NotContains(t, out.String(), separator)
}

func TestRootCmd_RedirectedOutputIsPlain(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("COLORTERM", "truecolor")
	root := t.TempDir()
	a := write(t, root, "a.go", "package a\n")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{root})

	require.NoError(t, cmd.Execute())
	assert.NotContains(t, out.String(), "\x1b[")
	assert.Equal(t, separator+"\n"+a+": 1\n"+separator+"\nTotal lines: 1\n"+separator+"\n", out.String())
}

func TestColorSupported(t *testing.T) {
	assert.False(t, colorSupported(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "report.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, colorSupported(f))
}
