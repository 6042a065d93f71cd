// Package cmd implements the dumptriage command-line wrapper: flag
// parsing and policy live here, never in the core pipeline.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ftahirops/dumptriage/internal/builder"
	"github.com/ftahirops/dumptriage/internal/config"
	"github.com/ftahirops/dumptriage/internal/inspector"
	"github.com/ftahirops/dumptriage/internal/model"
	"github.com/ftahirops/dumptriage/internal/reasoner"
	"github.com/ftahirops/dumptriage/internal/render"
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

// Config holds CLI configuration parsed from flags.
type Config struct {
	DumpPath        string
	MaxStrings      int
	MaxStringLength int
	HeapStrings     int
	HeapHistogram   int
	MaxStackFrames  int
	TopStackThreads int
	JSONPath        string
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `dumptriage v%s — offline post-mortem triage for managed-runtime process dumps

Usage:
  dumptriage [OPTIONS] DUMP_PATH

Options:
  -s, -strings N          Max stack-root strings to capture (default: 200, hard cap 2000)
  -max-string-length N    Max characters per string before truncation (default: 2048, hard cap 32768; <=0 -> 65536)
  -heap-strings N         Max additional heap-object strings to capture (default: 0, disabled)
  -heap-histogram N       Top-N heap types to surface (default: 20, 0 disables the heap walk)
  -max-stack-frames N     Per-thread captured frame cap (default: 30; <=0 -> 30)
  -top-stack-threads N    Threads to display (default: 5; <=0 -> 5; actual capture uses max(N,10))
  -json PATH              Write the full snapshot + findings as JSON to PATH
  -h, -help               Show this help and exit

Examples:
  dumptriage core.12345
  dumptriage -heap-histogram 50 -json report.json core.12345
`, Version)
}

// Run parses flags, builds a Snapshot via open, analyzes it, and renders
// the result. It returns a non-nil error on any of the four core error
// kinds or on an I/O failure while writing output.
func Run(open builder.OpenFunc) error {
	fs := flag.NewFlagSet("dumptriage", flag.ContinueOnError)
	fs.Usage = printUsage

	defaults := config.Load()

	var cfg Config
	var help bool
	fs.IntVar(&cfg.MaxStrings, "strings", defaults.MaxStringsToCapture, "Max stack-root strings to capture")
	fs.IntVar(&cfg.MaxStrings, "s", defaults.MaxStringsToCapture, "Max stack-root strings to capture (shorthand)")
	fs.IntVar(&cfg.MaxStringLength, "max-string-length", defaults.MaxStringLength, "Max characters per string before truncation")
	fs.IntVar(&cfg.HeapStrings, "heap-strings", defaults.HeapStringLimit, "Max additional heap-object strings to capture")
	fs.IntVar(&cfg.HeapHistogram, "heap-histogram", defaults.HeapHistogramCount, "Top-N heap types to surface")
	fs.IntVar(&cfg.MaxStackFrames, "max-stack-frames", defaults.MaxStackFrames, "Per-thread captured frame cap")
	fs.IntVar(&cfg.TopStackThreads, "top-stack-threads", defaults.TopStackThreads, "Threads to display")
	fs.StringVar(&cfg.JSONPath, "json", "", "Write the full snapshot + findings as JSON to PATH")
	fs.BoolVar(&help, "h", false, "Show help and exit")
	fs.BoolVar(&help, "help", false, "Show help and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if help {
		printUsage()
		return nil
	}

	args := fs.Args()
	if len(args) > 0 {
		cfg.DumpPath = args[0]
	}

	opts := builder.BuildOptions{
		MaxStringsToCapture: clampNonNegative(cfg.MaxStrings),
		MaxStringLength:      normalizeOrDefault(cfg.MaxStringLength, 65536),
		HeapStringLimit:      clampNonNegative(cfg.HeapStrings),
		HeapHistogramCount:   clampNonNegative(cfg.HeapHistogram),
		MaxStackFrames:       normalizeOrDefault(cfg.MaxStackFrames, 30),
		TopStackThreads:      normalizeOrDefault(cfg.TopStackThreads, 5),
	}

	snap, err := builder.Build(cfg.DumpPath, opts, open)
	if err != nil {
		return describeErr(err)
	}

	findings := reasoner.Analyze(snap)

	if cfg.JSONPath != "" {
		f, err := os.Create(cfg.JSONPath)
		if err != nil {
			return fmt.Errorf("opening json output: %w", err)
		}
		defer f.Close()
		if err := render.WriteJSON(f, snap, findings); err != nil {
			return fmt.Errorf("writing json output: %w", err)
		}
	}

	render.WriteText(os.Stdout, snap, findings)
	return nil
}

// clampNonNegative implements the CLI's "negative counts clamp to 0" rule.
func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// normalizeOrDefault implements the "<=0 -> default" rule shared by
// max-string-length, max-stack-frames, and top-stack-threads.
func normalizeOrDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func describeErr(err error) error {
	switch {
	case errors.Is(err, model.ErrMissingPath):
		return fmt.Errorf("no dump path given")
	case errors.Is(err, model.ErrFileNotFound):
		return fmt.Errorf("dump file not found")
	case errors.Is(err, model.ErrNoManagedRuntime):
		return fmt.Errorf("no managed runtime found in dump")
	default:
		var internal *model.InternalError
		if errors.As(err, &internal) {
			return fmt.Errorf("internal error: %w", internal.Unwrap())
		}
		return err
	}
}

// NoBackend is the OpenFunc used by the default binary build: this module
// ships the triage pipeline and the inspector capability contract, but
// not a concrete dump reader. Callers embedding dumptriage provide their
// own OpenFunc backed by a real dump-reading library.
func NoBackend(path string) (inspector.Inspector, error) {
	return nil, fmt.Errorf("no inspector backend registered: link a dump-reader implementation and pass its OpenFunc to cmd.Run")
}
