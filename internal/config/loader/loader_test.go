package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// memFS is an in-memory file system for testing.
type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) add(path, content string) {
	m.files[path] = []byte(content)
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  error
	}{
		{"/a/config.toml", FormatTOML, nil},
		{"/a/config.YAML", FormatYAML, nil},
		{"/a/config.yml", FormatYAML, nil},
		{"/a/config.json", 0, ErrUnsupportedFormat},
		{"/a/config", 0, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if !errors.Is(err, tt.err) {
			t.Errorf("FormatOf(%q) error = %v, expected %v", tt.path, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatOf(%q) = %v, expected %v", tt.path, got, tt.want)
		}
	}

	if _, err := NewFile(nil, "/a/config.ini"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat from NewFile, got %v", err)
	}
}

func TestTOMLAndYAMLAgree(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/c.toml", `
[layout]
policy = "reveal-if-hidden"
closeKeepsFocus = false

[display]
tabWidth = 4

[keymap]
"C-x 9" = "window.maximize"
`)
	memfs.add("/c.yaml", `
layout:
  policy: reveal-if-hidden
  closeKeepsFocus: false
display:
  tabWidth: 4
keymap:
  "C-x 9": window.maximize
`)

	tomlCfg := mustLoad(t, memfs, "/c.toml")
	yamlCfg := mustLoad(t, memfs, "/c.yaml")

	if diff := cmp.Diff(tomlCfg, yamlCfg); diff != "" {
		t.Errorf("formats disagree (-toml +yaml):\n%s", diff)
	}
}

func mustLoad(t *testing.T, fsys FileSystem, path string) map[string]any {
	t.Helper()
	f, err := NewFile(fsys, path)
	if err != nil {
		t.Fatalf("NewFile(%q): %v", path, err)
	}
	cfg, err := f.Load()
	if err != nil {
		t.Fatalf("Load(%q): %v", path, err)
	}
	return cfg
}

func TestLoadMissingFile(t *testing.T) {
	for _, path := range []string{"/missing.toml", "/missing.yaml"} {
		f, err := NewFile(newMemFS(), path)
		if err != nil {
			t.Fatalf("NewFile(%q): %v", path, err)
		}
		cfg, err := f.Load()
		if err != nil || cfg != nil {
			t.Errorf("expected nil, nil for missing file, got %v, %v", cfg, err)
		}
	}
}

func TestLoadReadError(t *testing.T) {
	f, err := NewFile(failFS{}, "/c.toml")
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if _, err := f.Load(); !errors.Is(err, errDisk) {
		t.Errorf("expected read error to wrap errDisk, got %v", err)
	}
}

var errDisk = errors.New("disk on fire")

type failFS struct{}

func (failFS) ReadFile(string) ([]byte, error) { return nil, errDisk }

func TestParseErrors(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/bad.toml", "[layout\npolicy = 1\n")
	memfs.add("/bad.yaml", "layout:\n  policy: [unterminated\n")

	for _, path := range []string{"/bad.toml", "/bad.yaml"} {
		f, err := NewFile(memfs, path)
		if err != nil {
			t.Fatalf("NewFile(%q): %v", path, err)
		}
		_, err = f.Load()
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("%s: expected ParseError, got %v", path, err)
		}
		if perr.Path != path || perr.Line == 0 {
			t.Errorf("%s: expected path and line in %+v", path, perr)
		}
		if !strings.HasPrefix(perr.Error(), path+":") {
			t.Errorf("%s: unexpected message %q", path, perr.Error())
		}
	}
}

func TestDecode(t *testing.T) {
	cfg, err := FormatYAML.Decode("<test>", []byte("logging:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"logging": map[string]any{"level": "debug"}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	ints, err := FormatTOML.Decode("<test>", []byte("[display]\ntabWidth = 4\nstops = [2, 6]\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInts := map[string]any{"display": map[string]any{"tabWidth": 4, "stops": []any{2, 6}}}
	if diff := cmp.Diff(wantInts, ints); diff != "" {
		t.Errorf("expected TOML integers as int (-want +got):\n%s", diff)
	}

	empty, err := FormatTOML.Decode("<test>", nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("expected empty map for empty input, got %v, %v", empty, err)
	}

	if _, err := Format(0).Decode("<test>", nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestMerge(t *testing.T) {
	defaults := map[string]any{
		"layout":  map[string]any{"policy": "minimize-motion", "closeKeepsFocus": true},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"layout": map[string]any{"policy": "duplicate-point"},
		"keymap": map[string]any{"C-x 2": "window.split"},
	}
	got := Merge(defaults, nil, src)
	want := map[string]any{
		"layout":  map[string]any{"policy": "duplicate-point", "closeKeepsFocus": true},
		"logging": map[string]any{"level": "info"},
		"keymap":  map[string]any{"C-x 2": "window.split"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}

	// The merged map must not alias any layer.
	got["keymap"].(map[string]any)["C-x 3"] = "window.splitRight"
	got["layout"].(map[string]any)["policy"] = "reveal-if-hidden"
	if _, ok := src["keymap"].(map[string]any)["C-x 3"]; ok {
		t.Error("merge aliased a source map")
	}
	if defaults["layout"].(map[string]any)["policy"] != "minimize-motion" {
		t.Error("merge modified an earlier layer")
	}

	// A scalar replaces a table and a table replaces a scalar.
	mixed := Merge(map[string]any{"a": 1, "b": map[string]any{"c": 2}}, map[string]any{"a": map[string]any{"x": 1}, "b": 3})
	want = map[string]any{"a": map[string]any{"x": 1}, "b": 3}
	if diff := cmp.Diff(want, mixed); diff != "" {
		t.Errorf("mixed merge (-want +got):\n%s", diff)
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{"a": map[string]any{"b": []any{1, map[string]any{"c": 2}}}}
	dst := Clone(src)
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Errorf("clone mismatch (-want +got):\n%s", diff)
	}
	dst["a"].(map[string]any)["b"].([]any)[1].(map[string]any)["c"] = 3
	if src["a"].(map[string]any)["b"].([]any)[1].(map[string]any)["c"] != 2 {
		t.Error("clone shares nested state")
	}
	if Clone(nil) != nil {
		t.Error("expected Clone(nil) to be nil")
	}
}
