package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitdepend/internal/manifest"
	"gitdepend/internal/status"
)

func TestShowConfig_PrintsManifest(t *testing.T) {
	repo := newRepo(t)
	path := filepath.Join(repo, manifest.DefaultFileName)
	content := "name: Lib2\ndependencies:\n  - name: Lib1\n    directory: ../Lib1\n    branch: develop\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	reporter, out := newTestReporter()

	if code := NewShowConfig(repo, manifest.NewFileAccessor(nil), reporter, nil).Execute(); code != status.Success {
		t.Fatalf("Execute() = %v", code)
	}

	got := out.String()
	for _, want := range []string{"# " + path, "name: Lib2", "directory: ../Lib1", "branch: develop"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestShowConfig_ImplicitManifest(t *testing.T) {
	repo := newRepo(t)
	reporter, out := newTestReporter()

	if code := NewShowConfig(repo, manifest.NewFileAccessor(nil), reporter, nil).Execute(); code != status.Success {
		t.Fatalf("Execute() = %v", code)
	}
	if !strings.Contains(out.String(), "has no GitDepend file") {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), manifest.DefaultPackagesDirectory) {
		t.Errorf("defaults not shown: %q", out.String())
	}
}

func TestShowConfig_NotARepository(t *testing.T) {
	reporter, out := newTestReporter()

	code := NewShowConfig(t.TempDir(), manifest.NewFileAccessor(nil), reporter, nil).Execute()
	if code != status.GitRepositoryNotFound {
		t.Errorf("Execute() = %v, want %v", code, status.GitRepositoryNotFound)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q", out.String())
	}
}
