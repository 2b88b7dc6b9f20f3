package command

import (
	"bytes"
	"testing"
)

func TestReporter_Line(t *testing.T) {
	tests := []struct {
		name  string
		color bool
		lines []string
		want  string
	}{
		{
			name:  "plain lines",
			lines: []string{"Updated packages: ", "    Lib1.1.0.0"},
			want:  "Updated packages: \n    Lib1.1.0.0\n",
		},
		{
			name:  "escape sequences stripped without colour",
			lines: []string{"\x1b[1;32mUpdate complete!\x1b[0m"},
			want:  "Update complete!\n",
		},
		{
			name:  "escape sequences kept with colour",
			color: true,
			lines: []string{"\x1b[32mok\x1b[0m"},
			want:  "\x1b[32mok\x1b[0m\n",
		},
		{
			name:  "trailing newline not doubled",
			lines: []string{"tree\n"},
			want:  "tree\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			r := NewReporter(buf, tt.color)
			for _, line := range tt.lines {
				r.Line(line)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestReporter_Linef(t *testing.T) {
	r, buf := newTestReporter()
	r.Linef("%s already exists.", "GitDepend.yaml")

	if buf.String() != "GitDepend.yaml already exists.\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestReporter_NilWriterDiscards(t *testing.T) {
	r := NewReporter(nil, false)
	r.Line("nothing")
	if r.Color() {
		t.Error("Color() = true, want false")
	}
}
