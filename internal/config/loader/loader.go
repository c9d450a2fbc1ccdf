// Package loader reads configuration sources into nested maps.
//
// Files are TOML or YAML, chosen by extension. Environment variables with
// the configured prefix map onto dotted setting paths.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Source produces one configuration layer. A source with nothing to
// contribute returns a nil map and no error.
type Source interface {
	Load() (map[string]any, error)
}

// FileSystem is the file access File needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// OS returns the operating system's file system.
func OS() FileSystem {
	return osFS{}
}

// File is the Source for one config file.
type File struct {
	fs     FileSystem
	path   string
	format Format
}

// NewFile returns a source for path in the format its extension names.
// A nil fsys means the OS file system.
func NewFile(fsys FileSystem, path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = OS()
	}
	return &File{fs: fsys, path: path, format: format}, nil
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Format returns the file syntax.
func (f *File) Format() Format {
	return f.format
}

// Load reads and decodes the file. A missing file is an empty layer.
func (f *File) Load() (map[string]any, error) {
	data, err := f.fs.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", f.path, err)
	}
	return f.format.Decode(f.path, data)
}

// ParseError reports a syntax error in a config source.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
