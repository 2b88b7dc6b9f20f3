// pattern: Imperative Shell

package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned by RunInitForm when the user leaves the form
// without submitting it.
var ErrCancelled = errors.New("init cancelled")

// InitValues are the answers collected by the init form.
type InitValues struct {
	Name              string
	BuildScript       string
	PackagesDirectory string
	PackagesPattern   string
}

// FormField identifies an input of the init form.
type FormField int

const (
	FieldName FormField = iota
	FieldBuildScript
	FieldPackagesDirectory
	FieldPackagesPattern
	fieldCount // Used for wrap-around
)

var fieldLabels = [fieldCount]string{
	FieldName:              "Name:               ",
	FieldBuildScript:       "Build script:       ",
	FieldPackagesDirectory: "Packages directory: ",
	FieldPackagesPattern:   "Packages pattern:   ",
}

// InitForm is the bubbletea model asking for the fields of a new manifest.
// Each input starts with the given default as its value.
type InitForm struct {
	inputs    [fieldCount]textinput.Model
	focused   FormField
	styles    *Styles
	submitted bool
	cancelled bool
	formError string
}

// NewInitForm creates a form prefilled with defaults.
func NewInitForm(defaults InitValues, styles *Styles) InitForm {
	if styles == nil {
		styles = NewStyles("")
	}

	values := [fieldCount]string{
		FieldName:              defaults.Name,
		FieldBuildScript:       defaults.BuildScript,
		FieldPackagesDirectory: defaults.PackagesDirectory,
		FieldPackagesPattern:   defaults.PackagesPattern,
	}

	f := InitForm{styles: styles}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.inputs[FieldName].Focus()
	return f
}

func (f InitForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f InitForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
		return f, cmd
	}

	switch key.Type {
	case tea.KeyEscape, tea.KeyCtrlC:
		f.cancelled = true
		return f, tea.Quit

	case tea.KeyEnter:
		if f.focused < fieldCount-1 {
			return f, f.focus(f.focused + 1)
		}
		if !f.validate() {
			return f, nil
		}
		f.submitted = true
		return f, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		return f, f.focus((f.focused + 1) % fieldCount)

	case tea.KeyShiftTab, tea.KeyUp:
		return f, f.focus((f.focused + fieldCount - 1) % fieldCount)
	}

	f.formError = ""
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

func (f *InitForm) focus(field FormField) tea.Cmd {
	f.inputs[f.focused].Blur()
	f.focused = field
	return f.inputs[f.focused].Focus()
}

// validate requires a name and a packages pattern.
func (f *InitForm) validate() bool {
	switch {
	case strings.TrimSpace(f.inputs[FieldName].Value()) == "":
		f.formError = "Name is required"
		f.focus(FieldName)
		return false
	case strings.TrimSpace(f.inputs[FieldPackagesPattern].Value()) == "":
		f.formError = "Packages pattern is required"
		f.focus(FieldPackagesPattern)
		return false
	}
	f.formError = ""
	return true
}

func (f InitForm) View() string {
	if f.submitted || f.cancelled {
		return ""
	}

	parts := []string{f.styles.TitleStyle().Render("Create GitDepend manifest"), ""}
	for i := range f.inputs {
		label := f.styles.LabelStyle().Render(fieldLabels[i])
		if FormField(i) == f.focused {
			label = f.styles.FocusedLabelStyle().Render(fieldLabels[i])
		}
		parts = append(parts, label+f.inputs[i].View())
	}
	if f.formError != "" {
		parts = append(parts, "", f.styles.ErrorStyle().Render(f.formError))
	}
	parts = append(parts, f.styles.HelpStyle().Render("tab: next • shift+tab: previous • enter: confirm • esc: cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

// Values returns the current input values with surrounding space trimmed.
func (f InitForm) Values() InitValues {
	v := func(field FormField) string {
		return strings.TrimSpace(f.inputs[field].Value())
	}
	return InitValues{
		Name:              v(FieldName),
		BuildScript:       v(FieldBuildScript),
		PackagesDirectory: v(FieldPackagesDirectory),
		PackagesPattern:   v(FieldPackagesPattern),
	}
}

// Focused returns the field with keyboard focus.
func (f InitForm) Focused() FormField {
	return f.focused
}

// Submitted reports whether the form was confirmed.
func (f InitForm) Submitted() bool {
	return f.submitted
}

// Cancelled reports whether the form was abandoned.
func (f InitForm) Cancelled() bool {
	return f.cancelled
}

// Error returns the current validation message.
func (f InitForm) Error() string {
	return f.formError
}

// RunInitForm runs the init form on the given terminal streams and returns
// the submitted values.
func RunInitForm(defaults InitValues, styles *Styles, in io.Reader, out io.Writer) (InitValues, error) {
	p := tea.NewProgram(NewInitForm(defaults, styles), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return InitValues{}, fmt.Errorf("failed to run init form: %w", err)
	}

	form, ok := final.(InitForm)
	if !ok || !form.Submitted() {
		return InitValues{}, ErrCancelled
	}
	return form.Values(), nil
}
