package config

import (
	"errors"
	"strings"

	"github.com/dshills/quietwin/internal/logging"
	"github.com/dshills/quietwin/internal/policy"
)

// Settings is the typed view of the merged configuration.
type Settings struct {
	Layout  LayoutSettings
	Display DisplaySettings
	Logging LoggingSettings

	// Keymap maps key sequences ("C-x 2") to action names. It overrides
	// the default bindings.
	Keymap map[string]string

	// InitScript is the path of a Lua init script, or empty.
	InitScript string
}

// LayoutSettings seeds the policy store.
type LayoutSettings struct {
	Policy          policy.LayoutPolicy
	CloseKeepsFocus bool
}

// Snapshot returns the settings as a policy store snapshot.
func (l LayoutSettings) Snapshot() policy.Snapshot {
	return policy.Snapshot{Policy: l.Policy, CloseKeepsFocus: l.CloseKeepsFocus}
}

// DisplaySettings configures the in-memory host.
type DisplaySettings struct {
	ModeLine bool
	Wrap     bool
	TabWidth int
	EchoArea bool
}

// LoggingSettings configures the logger.
type LoggingSettings struct {
	Level logging.Level
	File  string
}

// Settings decodes and validates the merged configuration. All problems
// are reported together.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	var errs []error
	note := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	name, err := c.GetString("layout.policy")
	note(err)
	if err == nil {
		p, perr := policy.ParsePolicy(name)
		if perr != nil {
			note(&ValidationError{Path: "layout.policy", Message: "unknown layout policy", Value: name})
		}
		s.Layout.Policy = p
	}
	s.Layout.CloseKeepsFocus, err = c.GetBool("layout.closeKeepsFocus")
	note(err)

	s.Display.ModeLine, err = c.GetBool("display.modeLine")
	note(err)
	s.Display.Wrap, err = c.GetBool("display.wrap")
	note(err)
	s.Display.EchoArea, err = c.GetBool("display.echoArea")
	note(err)
	s.Display.TabWidth, err = c.GetInt("display.tabWidth")
	note(err)
	if err == nil && s.Display.TabWidth <= 0 {
		note(&ValidationError{Path: "display.tabWidth", Message: "must be positive", Value: s.Display.TabWidth})
	}

	level, err := c.GetString("logging.level")
	note(err)
	if err == nil {
		if !validLevel(level) {
			note(&ValidationError{Path: "logging.level", Message: "unknown log level", Value: level})
		}
		s.Logging.Level = logging.ParseLevel(level)
	}
	s.Logging.File, err = c.GetString("logging.file")
	note(err)

	s.Keymap, err = c.GetStringMap("keymap")
	note(err)
	s.InitScript, err = c.GetString("script.init")
	note(err)

	if len(errs) > 0 {
		return Settings{}, errors.Join(errs...)
	}
	return s, nil
}

func validLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
