package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes every record to the log file and the ones at or above
// minLevel to the console. Safe for concurrent use.
type Logger struct {
	console  *log.Logger
	file     *log.Logger
	logFile  *os.File
	verbose  bool
	minLevel Level

	parseFailures atomic.Int64
}

var (
	mu           sync.RWMutex
	globalLogger *Logger
)

// Init installs the global logger.
// console receives user-facing output (typically os.Stdout); logFilePath
// receives every record with a timestamp. verbose also prints DEBUG on console.
func Init(console io.Writer, logFilePath string, verbose bool) error {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	l := &Logger{
		console:  log.New(console, "", 0),
		file:     log.New(f, "", log.LstdFlags),
		logFile:  f,
		verbose:  verbose,
		minLevel: minLevel,
	}

	mu.Lock()
	prev := globalLogger
	globalLogger = l
	mu.Unlock()

	if prev != nil && prev.logFile != nil {
		prev.logFile.Close()
	}
	return nil
}

// Close closes the log file and uninstalls the global logger
func Close() {
	mu.Lock()
	l := globalLogger
	globalLogger = nil
	mu.Unlock()

	if l != nil && l.logFile != nil {
		l.logFile.Close()
	}
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Debug logs a debug message (file only, unless verbose)
func Debug(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.log(LevelDebug, format, args...)
	}
}

// Info logs an info message (console + file)
func Info(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file)
func Warn(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf("WARN: "+format+"\n", args...)
		return
	}
	l.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf("ERROR: "+format+"\n", args...)
		return
	}
	l.log(LevelError, format, args...)
}

// Skip records why a class or method produced no endpoint.
// kind is "class" or "method".
func Skip(kind, name, reason string) {
	Debug("skip %s %s: %s", kind, name, reason)
}

// ParseFailure records a source file the Java front-end could not read.
// Details go to the file; the console only sees them in verbose mode.
func ParseFailure(filePath string, err error) {
	l := current()
	if l == nil {
		return
	}
	l.parseFailures.Add(1)
	l.file.Printf("[PARSE_ERROR] File: %s, Error: %v", filePath, err)

	if l.verbose {
		l.console.Printf("[DEBUG] Parse error in %s: %v", filePath, err)
	}
}

// ParseFailures returns the number of parse failures recorded since Init
func ParseFailures() int {
	if l := current(); l != nil {
		return int(l.parseFailures.Load())
	}
	return 0
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// The file gets everything
	l.file.Printf("[%s] %s", level, message)

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		l.console.Printf("[DEBUG] %s", message)
	case LevelInfo:
		l.console.Printf("%s", message)
	case LevelWarn:
		l.console.Printf("⚠️  %s", message)
	case LevelError:
		l.console.Printf("❌ %s", message)
	}
}

// Printf writes to the console only, without level prefix.
// Used for the final report lines that should not clutter the log file.
func Printf(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.console.Printf(format, args...)
}

// GetLogFilePath returns the path to the current log file
func GetLogFilePath() string {
	if l := current(); l != nil && l.logFile != nil {
		return l.logFile.Name()
	}
	return ""
}

// IsVerbose returns whether verbose logging is enabled
func IsVerbose() bool {
	if l := current(); l != nil {
		return l.verbose
	}
	return false
}
