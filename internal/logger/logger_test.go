package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()

	logPath := filepath.Join(t.TempDir(), "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	t.Cleanup(Reset)
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestLevels(t *testing.T) {
	logPath := setupTestLogger(t)

	Debug("hidden-debug-%d", 1)
	Info("visible-info-%s", "x")
	Warn("visible-warn")
	Error("visible-error")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden-debug-1") {
		t.Error("debug message should be filtered at info level")
	}
	for _, want := range []string{"visible-info-x", "visible-warn", "visible-error"} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q", want)
		}
	}
}

func TestSetDebug(t *testing.T) {
	logPath := setupTestLogger(t)

	SetDebug(true)
	Debug("debug-now-visible")
	SetDebug(false)
	Debug("debug-hidden-again")

	content := readLog(t, logPath)
	if !strings.Contains(content, "debug-now-visible") {
		t.Error("debug message should be written when debug is enabled")
	}
	if strings.Contains(content, "debug-hidden-again") {
		t.Error("debug message should be filtered after disabling debug")
	}
}

func TestWarnLevelHidesInfo(t *testing.T) {
	logPath := setupTestLogger(t)

	SetLevel(LevelWarn)
	if GetLevel() != LevelWarn {
		t.Errorf("GetLevel() = %v, want LevelWarn", GetLevel())
	}
	Info("info-hidden")
	Warn("warn-visible")

	content := readLog(t, logPath)
	if strings.Contains(content, "info-hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(content, "warn-visible") {
		t.Error("warnings should still be written")
	}
}

func TestWithComponentAndSession(t *testing.T) {
	logPath := setupTestLogger(t)

	WithComponent("news").Info("component line")
	WithSession("abc-123").Info("session line")

	content := readLog(t, logPath)
	if !strings.Contains(content, "component=news") {
		t.Error("component attribute missing")
	}
	if !strings.Contains(content, "sessionID=abc-123") {
		t.Error("session attribute missing")
	}
}

func TestPath(t *testing.T) {
	logPath := setupTestLogger(t)
	if got := Path(); got != logPath {
		t.Errorf("Path() = %q, want %q", got, logPath)
	}
}

func TestConcurrentLogging(t *testing.T) {
	setupTestLogger(t)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(n int) {
			for j := 0; j < 100; j++ {
				Info("concurrent test %d-%d", n, j)
			}
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestReset(t *testing.T) {
	tmpDir := t.TempDir()
	logPath1 := filepath.Join(tmpDir, "log1.log")
	Reset()
	if err := Init(logPath1); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	Info("message to log1")

	Reset()
	logPath2 := filepath.Join(tmpDir, "log2.log")
	if err := Init(logPath2); err != nil {
		t.Fatalf("Failed to reinit logger: %v", err)
	}
	Info("message to log2")
	t.Cleanup(Reset)

	content1 := readLog(t, logPath1)
	content2 := readLog(t, logPath2)
	if !strings.Contains(content1, "message to log1") || strings.Contains(content1, "message to log2") {
		t.Errorf("log1 has wrong content: %q", content1)
	}
	if !strings.Contains(content2, "message to log2") || strings.Contains(content2, "message to log1") {
		t.Errorf("log2 has wrong content: %q", content2)
	}
}

func TestClose(t *testing.T) {
	setupTestLogger(t)
	Close()
	// Logging after close is a no-op rather than a panic.
	Info("after close")
}
