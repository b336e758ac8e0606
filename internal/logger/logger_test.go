package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// initTemp installs a logger writing into a temp dir and returns the
// console buffer and log file path
func initTemp(t *testing.T, verbose bool) (*bytes.Buffer, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "logs", "rest-recon.log")
	console := &bytes.Buffer{}
	if err := Init(console, logPath, verbose); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(Close)
	return console, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestLoggerInit(t *testing.T) {
	console, logPath := initTemp(t, false)

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("Log file was not created (parent directory should be created too)")
	}

	Info("Scanning %d files", 3)
	if !strings.Contains(console.String(), "Scanning 3 files") {
		t.Errorf("Console output missing info message: %s", console.String())
	}

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, "[INFO] Scanning 3 files") {
		t.Errorf("Log file missing INFO record: %s", logStr)
	}
}

func TestLoggerLevels(t *testing.T) {
	console, logPath := initTemp(t, false)

	Debug("Debug message")
	Info("Info message")
	Warn("Warn message")
	Error("Error message")

	logStr := readLog(t, logPath)
	for _, level := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"} {
		if !strings.Contains(logStr, level) {
			t.Errorf("Log file missing %s level", level)
		}
	}

	consoleStr := console.String()
	if strings.Contains(consoleStr, "Debug message") {
		t.Error("Console should not show DEBUG when verbose=false")
	}
	if !strings.Contains(consoleStr, "Warn message") || !strings.Contains(consoleStr, "Error message") {
		t.Errorf("Console missing WARN/ERROR output: %s", consoleStr)
	}
}

func TestLoggerVerbose(t *testing.T) {
	console, _ := initTemp(t, true)

	Debug("Debug message")

	if !strings.Contains(console.String(), "[DEBUG] Debug message") {
		t.Errorf("Console should show DEBUG when verbose=true, got: %s", console.String())
	}
}

func TestSkip(t *testing.T) {
	console, logPath := initTemp(t, false)

	Skip("class", "com.example.Legacy", "@ignore")

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, "[DEBUG] skip class com.example.Legacy: @ignore") {
		t.Errorf("Log file missing skip record: %s", logStr)
	}
	if console.Len() != 0 {
		t.Errorf("Skip should stay off the console when not verbose, got: %s", console.String())
	}
}

func TestParseFailure(t *testing.T) {
	console, logPath := initTemp(t, false)

	ParseFailure("/src/Broken.java", errors.New("unbalanced braces"))
	ParseFailure("/src/Other.java", errors.New("no type declaration"))

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, "[PARSE_ERROR]") {
		t.Error("Log file missing PARSE_ERROR marker")
	}
	if !strings.Contains(logStr, "/src/Broken.java") || !strings.Contains(logStr, "unbalanced braces") {
		t.Errorf("Log file missing failure details: %s", logStr)
	}
	if strings.Contains(console.String(), "PARSE_ERROR") {
		t.Error("Console should not show detailed parse errors")
	}
	if got := ParseFailures(); got != 2 {
		t.Errorf("ParseFailures() = %d, expected 2", got)
	}
}

func TestConcurrentWrites(t *testing.T) {
	_, logPath := initTemp(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				Skip("method", "Worker.handle", "no HTTP method")
			}
		}(i)
	}
	wg.Wait()

	if got := strings.Count(readLog(t, logPath), "skip method"); got != 80 {
		t.Errorf("expected 80 skip records, got %d", got)
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if result := tt.level.String(); result != tt.expected {
			t.Errorf("Level.String() = %s, expected %s", result, tt.expected)
		}
	}
}

func TestGetLogFilePathAndVerbose(t *testing.T) {
	_, logPath := initTemp(t, true)

	if got := GetLogFilePath(); got != logPath {
		t.Errorf("GetLogFilePath() = %s, expected %s", got, logPath)
	}
	if !IsVerbose() {
		t.Error("IsVerbose() should return true when initialized with verbose=true")
	}

	Close()
	if GetLogFilePath() != "" || IsVerbose() || ParseFailures() != 0 {
		t.Error("closed logger should report no file, no verbosity and no failures")
	}
}
