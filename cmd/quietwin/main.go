// Package main is the entry point for the quietwin window layout viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quietwin/internal/command"
	"github.com/dshills/quietwin/internal/config"
	"github.com/dshills/quietwin/internal/config/watcher"
	"github.com/dshills/quietwin/internal/host"
	"github.com/dshills/quietwin/internal/host/memhost"
	"github.com/dshills/quietwin/internal/logging"
	"github.com/dshills/quietwin/internal/planner"
	"github.com/dshills/quietwin/internal/policy"
	"github.com/dshills/quietwin/internal/script"
	"github.com/dshills/quietwin/internal/termui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	policy     string
	logLevel   string
	logFile    string
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, settings, err := loadConfig(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := openLogger(settings.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	keymap := command.DefaultKeymap()
	buffers, err := loadBuffers(opts.files, keymap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()
	if settings.Logging.File == "" {
		// The screen owns the terminal from here on.
		logger.SetOutput(io.Discard)
	}

	width, height := screen.Size()
	h := memhost.New(width, height, buffers[0], memhost.Options{
		ModeLine: settings.Display.ModeLine,
		Wrap:     settings.Display.Wrap,
		TabWidth: settings.Display.TabWidth,
		EchoArea: settings.Display.EchoArea,
		MinWidth: 4,
	})
	store := policy.NewStore(settings.Layout.Snapshot())
	app := termui.New(screen, h, store, keymap, termui.WithLogger(logger), termui.WithConfig(cfg))

	for _, err := range app.ApplySettings(settings) {
		logger.Warn("%v", err)
	}
	showBuffers(app.Coordinator(), h, buffers[1:], logger)

	if settings.InitScript != "" {
		runner := script.New(script.Env{Store: store, Keymap: keymap, Dispatcher: app.Dispatcher()},
			script.WithLogger(logger))
		if err := runner.RunFile(ctx, settings.InitScript); err != nil {
			logger.Error("init script: %v", err)
			app.SetMessage(err.Error())
		}
		runner.Close()
	}

	if w, err := watcher.New(cfg.Path(), watcher.WithErrorHandler(func(err error) {
		logger.Warn("config watcher: %v", err)
	})); err != nil {
		logger.Info("config file not watched: %v", err)
	} else {
		defer w.Close()
		w.OnChange(func(watcher.Event) { app.RequestReload() })
		if err := w.Start(ctx); err != nil {
			logger.Warn("config watcher: %v", err)
		}
	}

	logger.Info("started with %d buffer(s), policy %s", len(buffers), store.Policy())
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.policy, "policy", "", "Layout policy (duplicate-point, minimize-motion, reveal-if-hidden)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "quietwin - cursor-preserving window layout viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quietwin [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("quietwin %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.files = flag.Args()
	return opts
}

// loadConfig builds the layered config with command-line flags on top
// and decodes it.
func loadConfig(ctx context.Context, opts options) (*config.Config, config.Settings, error) {
	path := opts.configPath
	if path == "" {
		path = os.Getenv("QUIETWIN_CONFIG")
	}
	cfg := config.New(config.WithPath(path))
	if err := cfg.Load(ctx); err != nil {
		return nil, config.Settings{}, err
	}

	for key, value := range map[string]string{
		"layout.policy": opts.policy,
		"logging.level": opts.logLevel,
		"logging.file":  opts.logFile,
	} {
		if value == "" {
			continue
		}
		if err := cfg.SetFlag(key, value); err != nil {
			return nil, config.Settings{}, err
		}
	}

	settings, err := cfg.Settings()
	if err != nil {
		return nil, config.Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, settings, nil
}

func openLogger(s config.LoggingSettings) (*logging.Logger, func(), error) {
	lc := logging.DefaultConfig()
	lc.Level = s.Level
	if s.File == "" {
		return logging.New(lc), func() {}, nil
	}
	f, err := logging.OpenFile(s.File)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	lc.Output = f
	return logging.New(lc), func() { _ = f.Close() }, nil
}

// loadBuffers reads the named files. With no files it returns a scratch
// buffer listing the key bindings.
func loadBuffers(files []string, keymap *command.Keymap) ([]*memhost.Buffer, error) {
	if len(files) == 0 {
		return []*memhost.Buffer{memhost.NewBuffer(1, "*scratch*", scratchText(keymap))}, nil
	}
	buffers := make([]*memhost.Buffer, 0, len(files))
	for i, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		buffers = append(buffers, memhost.NewBuffer(host.BufferID(i+1), filepath.Base(path), string(data)))
	}
	return buffers, nil
}

func scratchText(keymap *command.Keymap) string {
	var b strings.Builder
	b.WriteString("quietwin: window layout viewer\n\nKey bindings:\n\n")
	for _, binding := range keymap.Bindings() {
		fmt.Fprintf(&b, "  %-12s %s\n", binding.Keys, binding.Action)
	}
	b.WriteString("  M-x          run an action by name\n")
	b.WriteString("  C-x C-c      quit\n")
	return b.String()
}

// showBuffers splits the selected window once per extra buffer and shows
// each in the new bottom window.
func showBuffers(coord *planner.Coordinator, h *memhost.Host, buffers []*memhost.Buffer, logger *logging.Logger) {
	for _, buf := range buffers {
		_, bottom, err := coord.Split(h.Selected(), planner.Even())
		if err != nil {
			logger.Warn("not showing %s: %v", buf.Name(), err)
			return
		}
		if err := h.ShowBuffer(bottom, buf); err != nil {
			logger.Warn("not showing %s: %v", buf.Name(), err)
			return
		}
		if err := h.SelectWindow(bottom); err != nil {
			logger.Warn("select %s: %v", buf.Name(), err)
		}
	}
}
