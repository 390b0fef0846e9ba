package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// DebugEnvVar enables debug output when set to any non-empty value.
const DebugEnvVar = "TASKR_DEBUG"

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// SetOutput redirects debug output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// DebugEnabled returns true if debug mode is enabled via TASKR_DEBUG
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, format, args...)
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(output, args...)
}
