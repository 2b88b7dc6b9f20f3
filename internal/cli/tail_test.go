// pattern: Imperative Shell
package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitdepend/internal/status"
)

const sampleLog = `{"level":"info","ts":1700000000,"logger":"command.update","msg":"checking out dependencies"}
not a log line
{"level":"warn","ts":1700000001,"logger":"traverse","msg":"repository directory not found","dir":"/src/lib"}
{"level":"error","ts":1700000002,"logger":"build","msg":"build script failed"}
{"level":"debug","ts":1700000003,"logger":"traverse","msg":"traversal finished"}
`

func writeLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gitdepend.log")
	if err := os.WriteFile(path, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTailLog(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		scope string
		want  []string
	}{
		{"all entries", 0, "", []string{"checking out dependencies", "repository directory not found", "build script failed", "traversal finished"}},
		{"last two", 2, "", []string{"build script failed", "traversal finished"}},
		{"scope filter", 0, "traverse", []string{"repository directory not found", "traversal finished"}},
		{"scope filter and limit", 1, "traverse", []string{"traversal finished"}},
		{"no match", 5, "git", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			err := TailLog(TailConfig{Path: writeLog(t), Lines: tt.lines, Scope: tt.scope, NoColor: true, Writer: buf})
			if err != nil {
				t.Fatalf("TailLog() error = %v", err)
			}

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line == "" {
					continue
				}
				for _, msg := range []string{"checking out dependencies", "repository directory not found", "build script failed", "traversal finished"} {
					if strings.Contains(line, msg) {
						got = append(got, msg)
					}
				}
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("messages = %q, want %q\n%s", got, tt.want, buf.String())
			}
		})
	}
}

func TestTailLog_FormatsEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := TailLog(TailConfig{Path: writeLog(t), Lines: 1, Scope: "build", NoColor: true, Writer: buf}); err != nil {
		t.Fatal(err)
	}

	line := buf.String()
	if !strings.Contains(line, "ERROR [build] build script failed") {
		t.Errorf("line = %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Errorf("escape sequences left in %q", line)
	}
}

func TestTailLog_MissingFile(t *testing.T) {
	err := TailLog(TailConfig{Path: filepath.Join(t.TempDir(), "absent.log"), Writer: &bytes.Buffer{}})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("TailLog() error = %v, want not-exist", err)
	}
}

func TestBuildApp_Log(t *testing.T) {
	te := newTestEnv(t)
	te.env.LogPath = writeLog(t)

	if code := te.run("log", "--scope", "build"); code != status.Success {
		t.Fatalf("log = %v", code)
	}
	if !strings.Contains(te.stdout.String(), "build script failed") {
		t.Errorf("output = %q", te.stdout.String())
	}

	te.stdout.Reset()
	te.env.LogPath = filepath.Join(t.TempDir(), "absent.log")
	if code := te.run("log"); code != status.Success {
		t.Errorf("log without file = %v", code)
	}
	if te.stdout.String() != "No log entries yet.\n" {
		t.Errorf("output = %q", te.stdout.String())
	}

	if code := te.run("log", "--lines=-1"); code != status.InvalidArguments {
		t.Errorf("log --lines -1 = %v, want %v", code, status.InvalidArguments)
	}
}
