// Package obslog provides the package-level debug logger for offsetalloc.
//
// Logging is discarded by default so the allocator's hot path never pays
// for formatting. Call Init to route trace output somewhere. Setting
// OFFSETALLOC_DEBUG turns on Enabled at package init and enables the
// allocator's invariant assertions; trace output still goes nowhere until
// Init installs a writer.
package obslog

import (
	"io"
	"log/slog"
	"os"
)

// L is the package-level logger. It discards everything until Init is
// called with Enabled: true.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Enabled mirrors the teacher's logAlloc package var
// (hive/alloc/fastalloc.go): callers guard every Debug call with an
// explicit "if obslog.Enabled" check rather than relying on slog's own
// level filtering, so formatting work on the hot path is skipped
// entirely rather than merely discarded downstream.
var Enabled = DebugEnv()

// Options configures Init.
type Options struct {
	Enabled bool       // If false, all logging is discarded.
	Level   slog.Level // Minimum level when enabled. Default: LevelDebug.
	Writer  io.Writer  // Destination when enabled. Default: os.Stderr.
}

// Init configures the package logger. Call it once from main before
// exercising the allocator, if trace output is wanted.
func Init(opts Options) {
	Enabled = opts.Enabled
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := opts.Level
	if level == 0 {
		level = slog.LevelDebug
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// DebugEnv reports whether OFFSETALLOC_DEBUG is set, the switch that also
// enables the allocator's internal invariant assertions.
func DebugEnv() bool {
	return os.Getenv("OFFSETALLOC_DEBUG") != ""
}
