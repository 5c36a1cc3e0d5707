// Package diag reports generator diagnostics through log/slog.
package diag

import (
	"context"
	"fmt"
	"log/slog"
)

// LevelTrace is the level used for debug traces, below slog.LevelDebug.
const LevelTrace = slog.Level(-8)

// Reporter emits notes, warnings and errors. Debug traces are only emitted when the debug
// flag given at construction is set; the flag cannot change afterwards.
//
// A Reporter is not safe for concurrent use.
type Reporter struct {
	log   *slog.Logger
	debug bool
	count *counts
}

type counts struct {
	errors   int
	warnings int
}

// New returns a Reporter writing to l. A nil l discards everything.
func New(l *slog.Logger, debug bool) *Reporter {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Reporter{log: l, debug: debug, count: &counts{}}
}

// Discard returns a Reporter that drops every diagnostic.
func Discard() *Reporter {
	return New(nil, false)
}

// With returns a Reporter sharing the counters of r that adds attrs to every record.
func (r *Reporter) With(args ...any) *Reporter {
	return &Reporter{log: r.log.With(args...), debug: r.debug, count: r.count}
}

// DebugEnabled reports the debug flag.
func (r *Reporter) DebugEnabled() bool {
	return r.debug
}

// Debug evaluates f and logs the result at trace level when debugging is enabled.
func (r *Reporter) Debug(f func() any) {
	if !r.debug {
		return
	}
	r.log.Log(context.Background(), LevelTrace, fmt.Sprint(f()))
}

// Note logs an informational message.
func (r *Reporter) Note(msg string, args ...any) {
	r.log.Info(msg, args...)
}

// Warn logs a warning.
func (r *Reporter) Warn(msg string, args ...any) {
	r.count.warnings++
	r.log.Warn(msg, args...)
}

// Error logs err as an error diagnostic.
func (r *Reporter) Error(err error, args ...any) {
	r.count.errors++
	r.log.With(args...).Error(fmt.Sprintf("%+v", err), "error", err)
}

// Errors is the number of errors reported so far.
func (r *Reporter) Errors() int {
	return r.count.errors
}

// Warnings is the number of warnings reported so far.
func (r *Reporter) Warnings() int {
	return r.count.warnings
}
