package logger

import (
	"fmt"
	"io"
	"sync"
)

// VerboseLevel represents the verbosity level for logging
type VerboseLevel int

const (
	// VerboseSilent means no verbose output
	VerboseSilent VerboseLevel = 0
	// VerboseNormal means standard verbose output (-v)
	VerboseNormal VerboseLevel = 1
	// VerboseVery means detailed rewrite tracing (-vv)
	VerboseVery VerboseLevel = 2
)

// Logger handles leveled output. A nil *Logger discards everything, so
// library code can log without checking whether a logger was configured.
type Logger struct {
	level VerboseLevel
	quiet bool
	out   io.Writer
	mu    sync.Mutex
}

// NewWriterLogger creates a logger writing to w. With quiet set, Info and
// Error are dropped as well.
func NewWriterLogger(w io.Writer, level int, quiet bool) *Logger {
	return &Logger{level: VerboseLevel(level), quiet: quiet, out: w}
}

// IsVerbose returns true if verbose mode is enabled (-v or -vv)
func (l *Logger) IsVerbose() bool {
	return l != nil && l.level >= VerboseNormal
}

// IsVeryVerbose returns true if very verbose mode is enabled (-vv)
func (l *Logger) IsVeryVerbose() bool {
	return l != nil && l.level >= VerboseVery
}

func (l *Logger) printf(prefix, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, prefix+format+"\n", args...)
}

// V logs a message at verbose level (-v)
func (l *Logger) V(format string, args ...interface{}) {
	if l.IsVerbose() {
		l.printf("[*] ", format, args...)
	}
}

// VV logs a message at very verbose level (-vv)
func (l *Logger) VV(format string, args ...interface{}) {
	if l.IsVeryVerbose() {
		l.printf("[VV] ", format, args...)
	}
}

// Info logs an informational message (always shown unless quiet)
func (l *Logger) Info(format string, args ...interface{}) {
	if l != nil && !l.quiet {
		l.printf("[+] ", format, args...)
	}
}

// Error logs an error message (always shown unless quiet)
func (l *Logger) Error(format string, args ...interface{}) {
	if l != nil && !l.quiet {
		l.printf("[!] ", format, args...)
	}
}

// Section logs a section header for very verbose mode
func (l *Logger) Section(title string) {
	if l.IsVeryVerbose() {
		l.printf("\n[VV] === ", "%s ===", title)
	}
}

// Detail logs an indented detail line for very verbose mode
func (l *Logger) Detail(format string, args ...interface{}) {
	if l.IsVeryVerbose() {
		l.printf("[VV]   - ", format, args...)
	}
}
