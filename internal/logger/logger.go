package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug LogLevel = iota
	// LevelInfo is for general operational information
	LevelInfo
	// LevelWarn is for warning conditions
	LevelWarn
	// LevelError is for error conditions
	LevelError
)

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	slogLogger   *slog.Logger
	levelVar     = new(slog.LevelVar)
	logFile      *os.File
	mu           sync.Mutex
	once         sync.Once
	logPath      string
	initDone     bool
	currentLevel = LevelInfo
)

// DefaultLogPath is where the TUI logs when Init is never called.
// Stdout belongs to the terminal UI, so all diagnostics go to a file.
const DefaultLogPath = "/tmp/govsimplify-debug.log"

// SetLevel sets the minimum log level to output
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	levelVar.Set(level.toSlogLevel())
}

// GetLevel returns the minimum level currently written
func GetLevel() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// SetDebug enables debug level logging
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelInfo)
	}
}

// Init initializes the logger with a custom path. If it is never called the
// default path is opened lazily on first use.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	if err := open(path); err != nil {
		return err
	}
	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

// open must be called with mu held.
func open(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logPath = path
	logFile = f
	levelVar.Set(currentLevel.toSlogLevel())
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true
	return nil
}

func ensureInit() {
	if initDone {
		return
	}
	once.Do(func() {
		if err := open(DefaultLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return
		}
		slogLogger.Info("Logger initialized", "path", DefaultLogPath)
	})
}

func logWithLevel(level slog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if slogLogger == nil {
		return
	}
	if !slogLogger.Enabled(context.Background(), level) {
		return
	}
	slogLogger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug writes a debug message to the log file (only if level is LevelDebug)
func Debug(format string, args ...any) {
	logWithLevel(slog.LevelDebug, format, args...)
}

// Info writes an info message to the log file
func Info(format string, args ...any) {
	logWithLevel(slog.LevelInfo, format, args...)
}

// Warn writes a warning message to the log file
func Warn(format string, args ...any) {
	logWithLevel(slog.LevelWarn, format, args...)
}

// Error writes an error message to the log file
func Error(format string, args ...any) {
	logWithLevel(slog.LevelError, format, args...)
}

// Path returns the file currently being written, or "" before first use.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initDone = false
	once = sync.Once{}
	logPath = ""
	slogLogger = nil
	currentLevel = LevelInfo
	levelVar = new(slog.LevelVar)
}

// ClearLogs removes the default log file. It reports how many files were removed.
func ClearLogs() (int, error) {
	if err := os.Remove(DefaultLogPath); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

// WithComponent returns a slog.Logger with the component attribute pre-attached.
//
//	log := logger.WithComponent("news")
//	log.Warn("fetch failed", "agency", id, "error", err)
func WithComponent(component string) *slog.Logger {
	return with(slog.String("component", component))
}

// WithSession returns a slog.Logger with the conversation session ID pre-attached.
func WithSession(sessionID string) *slog.Logger {
	return with(slog.String("sessionID", sessionID))
}

func with(attr slog.Attr) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if slogLogger == nil {
		return slog.Default().With(attr)
	}
	return slogLogger.With(attr)
}
