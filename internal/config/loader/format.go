package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files whose extension names
// no known syntax.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format is a config file syntax.
type Format int

const (
	FormatTOML Format = iota + 1
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf returns the format named by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode parses data into a nested map. source names the input in
// errors. Empty input decodes to an empty map.
func (f Format) Decode(source string, data []byte) (map[string]any, error) {
	var (
		out map[string]any
		err error
	)
	switch f {
	case FormatTOML:
		err = toml.Unmarshal(data, &out)
	case FormatYAML:
		err = yaml.Unmarshal(data, &out)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, source)
	}
	if err != nil {
		line, col := errorPosition(err)
		return nil, &ParseError{Path: source, Line: line, Column: col, Message: err.Error(), Err: err}
	}
	if out == nil {
		out = make(map[string]any)
	}
	normalizeInts(out)
	return out, nil
}

// normalizeInts rewrites the int64 values go-toml produces as int, the
// type yaml.v3 uses, so both syntaxes load to the same map.
func normalizeInts(v any) any {
	switch v := v.(type) {
	case int64:
		if int64(int(v)) == v {
			return int(v)
		}
	case map[string]any:
		for k, e := range v {
			v[k] = normalizeInts(e)
		}
	case []any:
		for i, e := range v {
			v[i] = normalizeInts(e)
		}
	}
	return v
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// errorPosition extracts a line and column from a decoder error. yaml.v3
// only reports lines, inside the message text.
func errorPosition(err error) (line, col int) {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		return derr.Position()
	}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	return line, 0
}
