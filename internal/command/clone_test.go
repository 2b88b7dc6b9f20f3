package command

import (
	"reflect"
	"testing"

	"gitdepend/internal/status"
)

func TestClone_ClonesMissingDependencies(t *testing.T) {
	w := newWorkspace(t)
	root := w.project("App", true, "Lib2", "Lib1")
	w.project("Lib2", false, "Lib1")
	w.project("Lib1", false)
	reporter, out := newTestReporter()

	if code := NewClone(root, w.engine(), reporter, nil, nil).Execute(); code != status.Success {
		t.Fatalf("Execute() = %v", code)
	}

	want := []string{w.dir("Lib2"), w.dir("Lib1")}
	if !reflect.DeepEqual(w.gateway.clones, want) {
		t.Errorf("clones = %q, want %q", w.gateway.clones, want)
	}
	if len(w.gateway.checkouts) != 0 {
		t.Errorf("clone should not check out branches: %q", w.gateway.checkouts)
	}
	if out.String() != "Successfully cloned all dependencies.\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestClone_FailureReportsNothing(t *testing.T) {
	tr := &scriptedTraverser{codes: []status.Code{status.FailedToRunGitCommand}}
	reporter, out := newTestReporter()

	if code := NewClone("/src/app", tr, reporter, nil, nil).Execute(); code != status.FailedToRunGitCommand {
		t.Errorf("Execute() = %v, want %v", code, status.FailedToRunGitCommand)
	}
	if !reflect.DeepEqual(tr.calls, []string{"visitor.Nop"}) {
		t.Errorf("traversals = %q", tr.calls)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q", out.String())
	}
}
