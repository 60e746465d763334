// Package gumpkit wires the dialog controller, its registry and the script
// host from one settings file.
package gumpkit

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"gumpkit/config"
	"gumpkit/controller"
	"gumpkit/host"
	"gumpkit/host/breaker"
	"gumpkit/internal/logger"
	"gumpkit/internal/tracer"
	"gumpkit/registry"
	"gumpkit/script"
)

//go:embed scripts
var exampleScripts embed.FS

// Kit is a ready controller plus the script host bound to it.
type Kit struct {
	Config     config.Config
	Log        *logger.Logger
	Controller *controller.Controller
	Scripts    *script.Host

	shutdown func(context.Context) error
}

// Option adjusts a Kit before it is built.
type Option func(*options)

type options struct {
	out      io.Writer
	registry *registry.Registry
	console  func(owner, msg string)
}

// WithOutput sends console log lines to w instead of stdout.
func WithOutput(w io.Writer) Option { return func(o *options) { o.out = w } }

// WithRegistry uses r instead of registry.Default.
func WithRegistry(r *registry.Registry) Option { return func(o *options) { o.registry = r } }

// WithConsole receives script output.
func WithConsole(fn func(owner, msg string)) Option { return func(o *options) { o.console = fn } }

// Open loads settings from path and builds a Kit over h. A missing
// settings file is written with the defaults. Variables from .env and the
// environment override the file.
func Open(ctx context.Context, settingsPath string, h host.Adapter, opts ...Option) (*Kit, error) {
	cfg, loaded, err := config.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	if !loaded {
		if err := config.Save(settingsPath, cfg); err != nil {
			return nil, err
		}
	}
	config.LoadDotEnv()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return New(ctx, cfg, h, opts...)
}

// New builds a Kit from cfg.
func New(ctx context.Context, cfg config.Config, h host.Adapter, opts ...Option) (*Kit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{registry: registry.Default}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.New(cfg.Logger.Dir, cfg.Logger.Debug, o.out)
	log.DumpLen = cfg.Logger.DumpLen

	shutdown, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		return nil, fmt.Errorf("setup tracer: %w", err)
	}

	if cfg.Host.Breaker.Enabled {
		h = breaker.Wrap(h, cfg.Host.Breaker, log)
	}
	ctrl := controller.New(h,
		controller.WithRegistry(o.registry),
		controller.WithLogger(log),
		controller.WithMinRedraw(cfg.Dialog.MinRedraw),
		controller.WithDefaultPosition(cfg.Dialog.X, cfg.Dialog.Y),
	)
	sopts := []script.Option{script.WithLogger(log)}
	if o.console != nil {
		sopts = append(sopts, script.WithConsole(o.console))
	}
	return &Kit{
		Config:     cfg,
		Log:        log,
		Controller: ctrl,
		Scripts:    script.New(ctrl, cfg.Dialog, cfg.Scripts, sopts...),
		shutdown:   shutdown,
	}, nil
}

// LoadScripts loads every script in the configured scripts dir.
func (k *Kit) LoadScripts() ([]script.Info, error) {
	return k.Scripts.LoadDir(k.Config.Scripts.Dir)
}

// InstallExamples populates the scripts dir with the bundled example
// scripts when it holds no files yet. It reports whether it wrote any.
func (k *Kit) InstallExamples() (bool, error) {
	dir := k.Config.Scripts.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create scripts dir: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("read scripts dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			return false, nil
		}
	}
	embedded, err := exampleScripts.ReadDir("scripts")
	if err != nil {
		return false, fmt.Errorf("read embedded scripts: %w", err)
	}
	for _, e := range embedded {
		if e.IsDir() {
			continue
		}
		data, err := exampleScripts.ReadFile(path.Join("scripts", e.Name()))
		if err != nil {
			return false, fmt.Errorf("read embedded %s: %w", e.Name(), err)
		}
		dst := filepath.Join(dir, e.Name())
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return false, fmt.Errorf("write %s: %w", dst, err)
		}
	}
	return true, nil
}

// Close stops every script, closes the dialogs they left open and flushes
// traces.
func (k *Kit) Close(ctx context.Context) error {
	k.Scripts.StopAll()
	var errs []error
	for _, id := range k.Controller.Registry().Open() {
		if err := k.Controller.Close(id); err != nil {
			errs = append(errs, err)
		}
	}
	if err := k.shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
	}
	return errors.Join(errs...)
}
