package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/quietwin/internal/config/loader"
)

// Layer names, lowest precedence first.
const (
	LayerDefaults = "defaults"
	LayerFile     = "file"
	LayerEnv      = "env"
	LayerFlags    = "flags"
)

var layerOrder = []string{LayerDefaults, LayerFile, LayerEnv, LayerFlags}

// Config holds the layered configuration.
type Config struct {
	mu sync.RWMutex

	path      string
	fs        loader.FileSystem
	envPrefix string
	environ   func() []string

	layers map[string]map[string]any
	merged map[string]any
	loaded bool
}

// Option configures a Config.
type Option func(*Config)

// WithPath sets the config file path. An empty path selects the default
// file under the user config directory.
func WithPath(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.path = path
		}
	}
}

// WithFS sets the file system used to read the config file.
func WithFS(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron replaces the environment source. Tests use it to avoid
// touching the process environment.
func WithEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// New creates a Config. Only the defaults layer is populated until Load.
func New(opts ...Option) *Config {
	c := &Config{
		path:      filepath.Join(defaultUserConfigDir(), "config.toml"),
		fs:        loader.OS(),
		envPrefix: loader.DefaultEnvPrefix,
		environ:   os.Environ,
		layers:    make(map[string]map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.layers[LayerDefaults] = defaultConfig()
	c.remerge()
	return c
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// Load reads the config file and environment. A missing config file is
// not an error.
func (c *Config) Load(_ context.Context) error {
	file, err := c.loadFile()
	if err != nil {
		return err
	}
	env, err := c.loadEnv()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers[LayerFile] = file
	c.layers[LayerEnv] = env
	c.loaded = true
	c.remerge()
	return nil
}

// Reload re-reads the config file, keeping the environment and flag
// layers. On a parse error the previous file layer stays in effect.
func (c *Config) Reload(_ context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		return ErrNotLoaded
	}

	file, err := c.loadFile()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers[LayerFile] = file
	c.remerge()
	return nil
}

func (c *Config) loadFile() (map[string]any, error) {
	f, err := loader.NewFile(c.fs, c.path)
	if err != nil {
		return nil, err
	}
	return f.Load()
}

func (c *Config) loadEnv() (map[string]any, error) {
	l := loader.NewEnvLoader(c.envPrefix)
	l.SetEnviron(c.environ)
	return l.Load()
}

// SetFlag sets a value in the flags layer, the highest precedence layer.
func (c *Config) SetFlag(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	flags := c.layers[LayerFlags]
	if flags == nil {
		flags = make(map[string]any)
	}
	if err := setPath(flags, path, value); err != nil {
		return fmt.Errorf("%w: %s", err, path)
	}
	c.layers[LayerFlags] = flags
	c.remerge()
	return nil
}

// remerge rebuilds the merged view. Callers hold mu.
func (c *Config) remerge() {
	layers := make([]map[string]any, 0, len(layerOrder))
	for _, name := range layerOrder {
		layers = append(layers, c.layers[name])
	}
	c.merged = loader.Merge(layers...)
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", notFound(path)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, notFound(path)
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, notFound(path)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetStringMap returns a table of string values, such as the keymap.
func (c *Config) GetStringMap(path string) (map[string]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, notFound(path)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "map", Actual: typeName(v)}
	}
	result := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			return nil, &TypeError{Path: path + "." + k, Expected: "string", Actual: typeName(item)}
		}
		result[k] = s
	}
	return result, nil
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quietwin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "quietwin")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"layout": map[string]any{
			"policy":          "minimize-motion",
			"closeKeepsFocus": true,
		},
		"display": map[string]any{
			"modeLine": true,
			"wrap":     true,
			"tabWidth": 8,
			"echoArea": true,
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"keymap": map[string]any{},
		"script": map[string]any{
			"init": "",
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}
	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into parts, dropping empty ones.
func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			if i > start {
				parts = append(parts, path[start:i])
			}
			start = i + 1
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
