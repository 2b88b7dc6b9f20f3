// pattern: Imperative Shell

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewManager_RequiresOutput(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Error("NewManager() with no outputs should fail")
	}
}

func TestManager_For(t *testing.T) {
	tmpDir := t.TempDir()

	mgr, err := NewManager(Config{FilePath: filepath.Join(tmpDir, "test.log"), Level: "debug"})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	logger := mgr.For("traverse")
	if logger == nil {
		t.Fatal("For() returned nil")
	}
	if logger.Scope() != "traverse" {
		t.Errorf("Scope() = %q, want traverse", logger.Scope())
	}

	// Same scope should return same logger (cached)
	if mgr.For("traverse") != logger {
		t.Error("For() should return cached logger for same scope")
	}

	if mgr.For("git") == logger {
		t.Error("For() should return different logger for different scope")
	}
}

func TestManager_LoggingToFile(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "nested", "test.log")

	mgr, err := NewManager(Config{
		FilePath:   logFile,
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 7,
		Level:      "debug",
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	mgr.For("git.clone").Info("file test message", "url", "https://example.com/lib.git")

	// Close to flush
	_ = mgr.Close()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	content := string(data)
	for _, want := range []string{"file test message", "git.clone", "https://example.com/lib.git"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file should contain %q, got: %s", want, content)
		}
	}
}

func TestManager_FileLevelFilters(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	mgr, err := NewManager(Config{FilePath: logFile, Level: "warn"})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	logger := mgr.For("build")
	logger.Info("hidden info")
	logger.Warn("visible warning")
	_ = mgr.Close()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(data), "hidden info") {
		t.Error("info entry written below configured level")
	}
	if !strings.Contains(string(data), "visible warning") {
		t.Error("warn entry missing from log file")
	}
}

func TestManager_Console(t *testing.T) {
	var buf bytes.Buffer

	mgr, err := NewManager(Config{Console: &buf, ConsoleLevel: "info"})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	logger := mgr.For("update")
	logger.Debug("too quiet")
	logger.Info("checking out branches", "root", "/src/app")
	_ = mgr.Sync()

	out := buf.String()
	if strings.Contains(out, "too quiet") {
		t.Errorf("console contains debug entry: %s", out)
	}
	if !strings.Contains(out, "checking out branches") || !strings.Contains(out, "update") {
		t.Errorf("console output missing entry: %s", out)
	}
}

func TestManager_FileRotation(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "rotate.log")

	mgr, err := NewManager(Config{
		FilePath:   logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 7,
		Level:      "debug",
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	logger := mgr.For("rotation.test")

	// Smoke test; actual rotation happens at file level
	bigMessage := string(make([]byte, 1000))
	for i := range 100 {
		logger.Info(bigMessage, "iteration", i)
	}

	_ = mgr.Sync()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("log file should exist after writing")
	}
}
