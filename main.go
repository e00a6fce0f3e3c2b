package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is the application version, set via ldflags.
var version string = "dev"

// ExitError carries the process exit code for a run whose failure has
// already been reported on stdout.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Options holds the resolved flag values of a run.
type Options struct {
	Color       bool
	LogLevel    string
	LogFormat   string
	GitIgnore   bool
	OutputFile  string
	Clipboard   bool
	PDFFile     string
	Languages   bool
	Interactive bool
}

// readArgs maps positional arguments onto Args. Missing arguments fall back
// to the current directory and no filter; extra arguments are ignored.
func readArgs(args []string) Args {
	parsed := Args{Directory: "."}
	if len(args) > 0 {
		parsed.Directory = args[0]
	}
	if len(args) > 1 {
		parsed.Extensions = parseExtensions(args[1])
	}
	return parsed
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "tally [DIRECTORY] [EXTENSIONS]",
		Short: "Tally counts lines of source code under a directory.",
		Long: `Tally walks DIRECTORY (default ".") recursively and prints the line count of
every file, then the total. EXTENSIONS is an optional comma-separated list
such as "go,rs" restricting which files are counted.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := optionsFrom(v, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			logger := newLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), readArgs(args), opts, logger)
		},
	}

	// Output
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	v.BindPFlag("no_color", cmd.Flags().Lookup("no-color"))
	cmd.Flags().StringP("file", "f", "", "Also save the plain report to the specified file")
	v.BindPFlag("file", cmd.Flags().Lookup("file"))
	cmd.Flags().BoolP("clipboard", "c", false, "Also copy the plain report to the clipboard")
	v.BindPFlag("clipboard", cmd.Flags().Lookup("clipboard"))
	cmd.Flags().String("pdf", "", "Also save the report as PDF")
	v.BindPFlag("pdf", cmd.Flags().Lookup("pdf"))
	cmd.Flags().BoolP("languages", "l", false, "Print a per-language breakdown after the total")
	v.BindPFlag("languages", cmd.Flags().Lookup("languages"))

	// Filtering
	cmd.Flags().Bool("gitignore", false, "Skip entries matched by DIRECTORY/.gitignore")
	v.BindPFlag("gitignore", cmd.Flags().Lookup("gitignore"))

	// Interactive Mode
	cmd.Flags().Bool("interactive", false, "Pick the directory to count with a fuzzy finder")
	v.BindPFlag("interactive", cmd.Flags().Lookup("interactive"))

	// Logging
	cmd.Flags().String("log-level", "warn", "Diagnostics level: debug, info, warn or error")
	v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))
	cmd.Flags().String("log-format", "text", "Diagnostics format: text or json")
	v.BindPFlag("log_format", cmd.Flags().Lookup("log-format"))

	v.SetDefault("no_color", false)
	v.SetDefault("gitignore", false)
	v.SetDefault("languages", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")

	return cmd
}

// optionsFrom validates and resolves the bound flag values. Color is only
// enabled when out is a color-capable terminal.
func optionsFrom(v *viper.Viper, out io.Writer) (Options, error) {
	opts := Options{
		Color:       !v.GetBool("no_color") && colorSupported(out),
		LogLevel:    strings.ToLower(v.GetString("log_level")),
		LogFormat:   strings.ToLower(v.GetString("log_format")),
		GitIgnore:   v.GetBool("gitignore"),
		OutputFile:  v.GetString("file"),
		Clipboard:   v.GetBool("clipboard"),
		PDFFile:     v.GetString("pdf"),
		Languages:   v.GetBool("languages"),
		Interactive: v.GetBool("interactive"),
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Options{}, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", opts.LogLevel)
	}
	if opts.LogFormat != "text" && opts.LogFormat != "json" {
		return Options{}, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", opts.LogFormat)
	}
	return opts, nil
}

// colorSupported reports whether out is a terminal that accepts color codes.
// gookit/color only inspects the environment, so the fd is checked here.
func colorSupported(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return color.IsTerminal(f.Fd()) && color.SupportColor()
}

// run prints the framed report for args to out. Any failure is reported in an
// error frame and returned as an *ExitError.
func run(ctx context.Context, out, progress io.Writer, args Args, opts Options, logger *slog.Logger) error {
	rep := NewReporter(out, opts.Color)
	fail := func(err error) error {
		if werr := rep.Error(err); werr != nil {
			logger.Error("Could not write error frame.", "error", werr)
		}
		return &ExitError{Code: 1, Err: err}
	}

	if opts.Interactive {
		dir, err := pickDirectory(args.Directory)
		if errors.Is(err, errSelectionAborted) {
			logger.Info("Interactive selection aborted.")
			return nil
		}
		if err != nil {
			if werr := rep.Separator(); werr != nil {
				return &ExitError{Code: 1, Err: werr}
			}
			return fail(err)
		}
		args.Directory = dir
	}

	if err := rep.Separator(); err != nil {
		logger.Error("Could not write output.", "error", err)
		return &ExitError{Code: 1, Err: err}
	}
	if err := tally(ctx, rep, progress, args, opts, logger); err != nil {
		return fail(err)
	}
	return nil
}

// tally runs the walk, count and export phases.
func tally(ctx context.Context, rep *Reporter, progress io.Writer, args Args, opts Options, logger *slog.Logger) error {
	root := args.Directory
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) && isGitURL(root) {
		dir, err := cloneGitRepo(ctx, root, progress, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := os.RemoveAll(dir); err != nil {
				logger.Warn("Could not remove temporary directory.", "dir", dir, "error", err)
			}
		}()
		root = dir
	}

	walker := &Walker{Extensions: args.Extensions, Logger: logger}
	if opts.GitIgnore {
		matcher, err := loadGitIgnore(root)
		if err != nil {
			return err
		}
		walker.Ignore = matcher
	}

	files, err := walker.Walk(root)
	if err != nil {
		return err
	}
	logger.Debug("Counting lines.", "files", len(files))

	counted, summary, err := countFiles(rep, files)
	if err != nil {
		return err
	}
	if err := rep.Separator(); err != nil {
		return err
	}
	if err := rep.Total(summary.TotalLines); err != nil {
		return err
	}
	if err := rep.Separator(); err != nil {
		return err
	}

	if opts.Languages {
		langData, err := loadLanguageData()
		if err != nil {
			return err
		}
		if err := rep.Languages(summarizeLanguages(counted, langData)); err != nil {
			return err
		}
	}

	return export(rep.Plain(), counted, summary, opts, logger)
}

// export hands the finished report to every requested destination.
func export(report string, files []FileInfo, summary Summary, opts Options, logger *slog.Logger) error {
	if opts.OutputFile != "" {
		if err := saveOutputFile(opts.OutputFile, report); err != nil {
			return err
		}
		logger.Info("Output saved.", "file", opts.OutputFile)
	}
	if opts.PDFFile != "" {
		if err := generatePDF(files, summary, opts.PDFFile); err != nil {
			return err
		}
		logger.Info("PDF saved.", "file", opts.PDFFile)
	}
	if opts.Clipboard {
		if err := copyToClipboard(report); err != nil {
			return err
		}
		logger.Info("Output copied to clipboard.")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
