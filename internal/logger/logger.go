// Package logger provides leveled console logging for sahaaya.
// Debug, info and section output only appear in verbose mode (--verbose).
// Warnings appear unless quiet mode is set; errors always appear.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	quiet   bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetQuiet suppresses warnings. Errors are still printed.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput sets the destination for all log lines.
// Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a pipeline trace line in verbose mode.
func Debug(format string, args ...any) {
	printIf(levelDebug, format, args...)
}

// Info prints an informational line in verbose mode.
func Info(format string, args ...any) {
	printIf(levelInfo, format, args...)
}

// Warn prints a warning unless quiet mode is on.
// Degraded collaborators (cache, log sinks, enhancers) report here.
func Warn(format string, args ...any) {
	printIf(levelWarn, format, args...)
}

// Error always prints.
func Error(format string, args ...any) {
	printIf(levelError, format, args...)
}

// Section prints a section header in verbose mode.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var prefixes = map[level]string{
	levelDebug: "[DEBUG] ",
	levelInfo:  "[INFO] ",
	levelWarn:  "[WARN] ",
	levelError: "[ERROR] ",
}

func enabled(l level) bool {
	switch l {
	case levelDebug, levelInfo:
		return verbose
	case levelWarn:
		return !quiet
	default:
		return true
	}
}

func printIf(l level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled(l) {
		return
	}
	fmt.Fprintf(output, prefixes[l]+format+"\n", args...)
}
