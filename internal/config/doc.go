// Package config provides layered configuration for quietwin.
//
// Settings are resolved from four layers, lowest precedence first:
//
//	defaults < config file < environment < command-line flags
//
// The config file is TOML or YAML, chosen by extension, and lives at
// $XDG_CONFIG_HOME/quietwin/config.toml unless a path is given.
// Environment variables use the QUIETWIN_ prefix:
//
//	QUIETWIN_LAYOUT_POLICY=reveal-if-hidden
//	QUIETWIN_LAYOUT_CLOSE_KEEPS_FOCUS=false
//	QUIETWIN_LOG_LEVEL=debug
//
// Values are read by dotted path with typed getters, or decoded all at
// once into a validated Settings value:
//
//	cfg := config.New(config.WithPath(path))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	s, err := cfg.Settings()
//
// The watcher subpackage reports changes to the config file so the UI
// loop can call Reload.
package config
