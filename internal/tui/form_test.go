package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestForm() InitForm {
	return NewInitForm(InitValues{
		Name:              "Lib2",
		BuildScript:       "make.sh",
		PackagesDirectory: "artifacts/NuGet/Debug",
		PackagesPattern:   "*.nupkg",
	}, NewStyles("mocha"))
}

func send(t *testing.T, f InitForm, msgs ...tea.KeyMsg) (InitForm, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = f.Update(msg)
		f = updated.(InitForm)
	}
	return f, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitForm_StartsWithDefaults(t *testing.T) {
	f := newTestForm()

	want := InitValues{
		Name:              "Lib2",
		BuildScript:       "make.sh",
		PackagesDirectory: "artifacts/NuGet/Debug",
		PackagesPattern:   "*.nupkg",
	}
	if got := f.Values(); got != want {
		t.Errorf("Values() = %+v, want %+v", got, want)
	}
	if f.Focused() != FieldName {
		t.Errorf("Focused() = %d, want FieldName", f.Focused())
	}
}

func TestInitForm_TabCyclesFields(t *testing.T) {
	f := newTestForm()

	for _, want := range []FormField{FieldBuildScript, FieldPackagesDirectory, FieldPackagesPattern, FieldName} {
		f, _ = send(t, f, tea.KeyMsg{Type: tea.KeyTab})
		if f.Focused() != want {
			t.Errorf("Focused() = %d, want %d", f.Focused(), want)
		}
	}
}

func TestInitForm_ShiftTabWrapsBackwards(t *testing.T) {
	f := newTestForm()

	f, _ = send(t, f, tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.Focused() != FieldPackagesPattern {
		t.Errorf("Focused() = %d, want FieldPackagesPattern", f.Focused())
	}
}

func TestInitForm_TypingEditsFocusedField(t *testing.T) {
	f := newTestForm()

	f, _ = send(t, f,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		runes("bat"),
	)

	got := f.Values()
	if got.BuildScript != "make.bat" {
		t.Errorf("BuildScript = %q, want make.bat", got.BuildScript)
	}
	if got.Name != "Lib2" {
		t.Errorf("Name changed to %q", got.Name)
	}
}

func TestInitForm_EnterAdvancesThenSubmits(t *testing.T) {
	f := newTestForm()

	f, _ = send(t, f, tea.KeyMsg{Type: tea.KeyEnter})
	if f.Submitted() {
		t.Fatal("form submitted from first field")
	}
	if f.Focused() != FieldBuildScript {
		t.Errorf("Focused() = %d, want FieldBuildScript", f.Focused())
	}

	f, cmd := send(t, f,
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if !f.Submitted() {
		t.Fatal("form not submitted from last field")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("submit should quit the program")
	}
	if f.View() != "" {
		t.Error("submitted form should render nothing")
	}
}

func TestInitForm_SubmitRequiresName(t *testing.T) {
	f := NewInitForm(InitValues{PackagesPattern: "*.nupkg"}, nil)

	f, _ = send(t, f, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyEnter})

	if f.Submitted() {
		t.Fatal("form submitted without a name")
	}
	if f.Error() != "Name is required" {
		t.Errorf("Error() = %q", f.Error())
	}
	if f.Focused() != FieldName {
		t.Errorf("Focused() = %d, want FieldName", f.Focused())
	}
	if !strings.Contains(f.View(), "Name is required") {
		t.Error("view should show the validation error")
	}

	f, _ = send(t, f, runes("x"))
	if f.Error() != "" {
		t.Errorf("typing should clear the error, got %q", f.Error())
	}
}

func TestInitForm_EscapeCancels(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEscape, tea.KeyCtrlC} {
		f, cmd := send(t, newTestForm(), tea.KeyMsg{Type: key})

		if !f.Cancelled() || f.Submitted() {
			t.Errorf("key %v: cancelled=%v submitted=%v", key, f.Cancelled(), f.Submitted())
		}
		if cmd == nil {
			t.Fatalf("key %v: expected quit command", key)
		}
	}
}

func TestInitForm_ViewListsAllFields(t *testing.T) {
	view := newTestForm().View()

	for _, s := range []string{"Create GitDepend manifest", "Name:", "Build script:", "Packages directory:", "Packages pattern:", "esc: cancel"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q", s)
		}
	}
}
