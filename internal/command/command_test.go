package command

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gitdepend/internal/manifest"
	"gitdepend/internal/paths"
	"gitdepend/internal/status"
	"gitdepend/internal/traverse"
)

// mapAccessor serves manifests keyed by canonical directory.
type mapAccessor map[string]*manifest.Manifest

func (a mapAccessor) Load(directory string) (*manifest.Manifest, string, status.Code) {
	dir := paths.Canonical(directory)
	m, ok := a[dir]
	if !ok {
		return nil, dir, status.GitRepositoryNotFound
	}
	return m, dir, status.Success
}

// fakeGateway creates directories on clone and records checkouts.
type fakeGateway struct {
	clones       []string
	checkouts    []string
	checkoutCode status.Code
}

func (g *fakeGateway) Clone(url, directory, branch string) status.Code {
	g.clones = append(g.clones, directory)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return status.FailedToRunGitCommand
	}
	return status.Success
}

func (g *fakeGateway) Checkout(directory, branch string) status.Code {
	g.checkouts = append(g.checkouts, filepath.Base(directory)+"@"+branch)
	return g.checkoutCode
}

func (g *fakeGateway) CurrentBranch(directory string) (string, error) { return "main", nil }

// fakeProcedure reports the packages listed for each project name.
type fakeProcedure struct {
	built   []string
	updates map[string][]string
	fail    map[string]status.Code
}

func (p *fakeProcedure) Run(directory string, m *manifest.Manifest) (status.Code, []string) {
	p.built = append(p.built, m.Name)
	if code, ok := p.fail[m.Name]; ok {
		return code, nil
	}
	return status.Success, p.updates[m.Name]
}

// scriptedTraverser returns queued codes without visiting anything and
// records the visitor type of each call.
type scriptedTraverser struct {
	codes []status.Code
	calls []string
}

func (s *scriptedTraverser) Traverse(v traverse.Visitor, directory string) status.Code {
	s.calls = append(s.calls, fmt.Sprintf("%T", v))
	if len(s.codes) == 0 {
		return status.Success
	}
	code := s.codes[0]
	s.codes = s.codes[1:]
	return code
}

// workspace is a set of sibling projects under a temp directory.
type workspace struct {
	t        *testing.T
	root     string
	accessor mapAccessor
	gateway  *fakeGateway
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	return &workspace{
		t:        t,
		root:     paths.Canonical(t.TempDir()),
		accessor: mapAccessor{},
		gateway:  &fakeGateway{},
	}
}

func (w *workspace) dir(name string) string {
	return filepath.Join(w.root, name)
}

func (w *workspace) project(name string, create bool, deps ...string) string {
	w.t.Helper()
	m := &manifest.Manifest{Name: name, Path: filepath.Join(w.dir(name), manifest.DefaultFileName)}
	for _, d := range deps {
		m.Dependencies = append(m.Dependencies, manifest.Dependency{
			Name:      d,
			Directory: "../" + d,
			URL:       "https://example.com/" + d + ".git",
			Branch:    "develop",
		})
	}
	w.accessor[w.dir(name)] = m
	if create {
		if err := os.MkdirAll(w.dir(name), 0755); err != nil {
			w.t.Fatal(err)
		}
	}
	return w.dir(name)
}

func (w *workspace) engine() *traverse.Engine {
	return traverse.NewEngine(w.accessor, w.gateway)
}

func newTestReporter() (*Reporter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewReporter(buf, false), buf
}
