// Package script runs dialog scripts under the yaegi interpreter.
//
// A script is a Go file in package main that imports "gump". It declares
// scriptName, scriptAuthor and scriptAPIVersion constants and usually an
// Init func, which runs on its own goroutine once the file is loaded.
// An optional Terminate func runs when the script is stopped.
package script

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/remeh/sizedwaitgroup"
	"github.com/traefik/yaegi/interp"

	"gumpkit/config"
	"gumpkit/controller"
	"gumpkit/internal/logger"
)

var (
	ErrInvalidScript = errors.New("invalid script")
	ErrDuplicateName = errors.New("duplicate script name")
)

var (
	nameRE   = regexp.MustCompile(`(?m)^\s*(?:var|const)\s+scriptName\s*=\s*"([^"]+)"`)
	authorRE = regexp.MustCompile(`(?m)^\s*(?:var|const)\s+scriptAuthor\s*=\s*"([^"]+)"`)
	apiVerRE = regexp.MustCompile(`(?m)^\s*(?:var|const)\s+scriptAPIVersion\s*=\s*([0-9]+)\s*$`)
)

// Info is what a script declares about itself.
type Info struct {
	Name   string
	Author string
	APIVer int
	Path   string
	// Run identifies one load of the script in logs.
	Run string
}

// Owner is the key a loaded script is tracked under.
func (i Info) Owner() string {
	return i.Name + "_" + strings.TrimSuffix(filepath.Base(i.Path), ".go")
}

// Scan reads the declarations from src. Scripts without a name, an author
// or the current API version are rejected.
func Scan(path string, src []byte) (Info, error) {
	info := Info{Path: path}
	if m := nameRE.FindSubmatch(src); len(m) >= 2 {
		info.Name = strings.TrimSpace(string(m[1]))
	}
	if m := authorRE.FindSubmatch(src); len(m) >= 2 {
		info.Author = strings.TrimSpace(string(m[1]))
	}
	if m := apiVerRE.FindSubmatch(src); len(m) >= 2 {
		info.APIVer, _ = strconv.Atoi(string(m[1]))
	}
	var errs []error
	if info.Name == "" {
		errs = append(errs, errors.New("missing scriptName"))
	}
	if info.Author == "" {
		errs = append(errs, errors.New("missing scriptAuthor"))
	}
	if info.APIVer != APIVersion {
		errs = append(errs, fmt.Errorf("scriptAPIVersion %d, want %d", info.APIVer, APIVersion))
	}
	if len(errs) > 0 {
		return info, fmt.Errorf("%s: %w: %w", path, ErrInvalidScript, errors.Join(errs...))
	}
	return info, nil
}

type loaded struct {
	info      Info
	cancel    context.CancelFunc
	terminate func()
}

// Host loads scripts and gives each one the dialog API bound to a shared
// controller.
type Host struct {
	ctrl          *controller.Controller
	log           *logger.Logger
	refresh       time.Duration
	timeout       time.Duration
	workers       int
	notifyEnabled bool
	console       func(owner, msg string)

	mu      sync.Mutex
	scripts map[string]*loaded
	running sync.WaitGroup
}

type Option func(*Host)

func WithLogger(l *logger.Logger) Option { return func(h *Host) { h.log = l } }

// WithConsole receives every gump.Print call.
func WithConsole(fn func(owner, msg string)) Option { return func(h *Host) { h.console = fn } }

func New(ctrl *controller.Controller, dialog config.DialogConfig, scripts config.ScriptsConfig, opts ...Option) *Host {
	h := &Host{
		ctrl:          ctrl,
		refresh:       dialog.Refresh,
		timeout:       dialog.Timeout,
		workers:       max(scripts.Workers, 1),
		notifyEnabled: scripts.Notify,
		scripts:       map[string]*loaded{},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = logger.Discard()
	}
	return h
}

// LoadSource evaluates src and starts its Init. A script already loaded
// under the same owner is stopped first.
func (h *Host) LoadSource(path string, src []byte) (Info, error) {
	info, err := Scan(path, src)
	if err != nil {
		h.log.Warnf("script %v", err)
		return info, err
	}
	owner := info.Owner()
	h.Stop(owner)

	ctx, cancel := context.WithCancel(context.Background())
	i := interp.New(interp.Options{})
	if err := i.Use(restrictedStdlib()); err != nil {
		cancel()
		return info, fmt.Errorf("script %s: %w", path, err)
	}
	if err := i.Use(h.exportsFor(ctx, owner)); err != nil {
		cancel()
		return info, fmt.Errorf("script %s: %w", path, err)
	}
	// Build tags like //go:build are for the Go toolchain only.
	if _, err := i.Eval(string(stripGoBuildDirectives(src))); err != nil {
		cancel()
		h.log.Errorf("script %s: load: %v", path, err)
		return info, fmt.Errorf("script %s: %w", path, err)
	}

	info.Run = newRunID(time.Now())
	l := &loaded{info: info, cancel: cancel}
	if v, err := i.Eval("Terminate"); err == nil {
		if fn, ok := v.Interface().(func()); ok {
			l.terminate = fn
		}
	}
	h.mu.Lock()
	h.scripts[owner] = l
	h.mu.Unlock()

	if v, err := i.Eval("Init"); err == nil {
		if fn, ok := v.Interface().(func()); ok {
			h.running.Add(1)
			go h.run(owner, fn)
		}
	}
	h.log.Debugf("loaded script %s (%s) run %s", info.Name, path, info.Run)
	return info, nil
}

func (h *Host) run(owner string, fn func()) {
	defer h.running.Done()
	defer func() {
		if r := recover(); r != nil {
			h.log.Errorf("script %s: panic: %v", owner, r)
		}
	}()
	fn()
}

// LoadDir loads every .go file in dir, a bounded number at a time. Two
// files declaring the same name load only the first in directory order.
func (h *Host) LoadDir(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read script dir %s: %w", dir, err)
	}

	var (
		mu    sync.Mutex
		infos []Info
		errs  []error
		seen  = map[string]bool{}
	)
	swg := sizedwaitgroup.New(h.workers)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("read script %s: %w", path, err))
			mu.Unlock()
			continue
		}
		// Names are claimed before loading starts so the winner does not
		// depend on worker scheduling.
		if info, err := Scan(path, src); err == nil {
			lower := strings.ToLower(info.Name)
			if seen[lower] {
				h.log.Warnf("script %s: duplicate name %s", path, info.Name)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w: %s", path, ErrDuplicateName, info.Name))
				mu.Unlock()
				continue
			}
			seen[lower] = true
		}
		swg.Add()
		go func() {
			defer swg.Done()
			info, err := h.LoadSource(path, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			infos = append(infos, info)
		}()
	}
	swg.Wait()
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Path, b.Path) })
	return infos, errors.Join(errs...)
}

// Stop cancels the script's dialogs and runs its Terminate.
func (h *Host) Stop(owner string) {
	h.mu.Lock()
	l, ok := h.scripts[owner]
	delete(h.scripts, owner)
	h.mu.Unlock()
	if !ok {
		return
	}
	l.cancel()
	if l.terminate != nil {
		l.terminate()
	}
}

func (h *Host) StopAll() {
	for _, owner := range h.Loaded() {
		h.Stop(owner)
	}
}

// Loaded returns the owners of loaded scripts, sorted.
func (h *Host) Loaded() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	owners := make([]string, 0, len(h.scripts))
	for o := range h.scripts {
		owners = append(owners, o)
	}
	slices.Sort(owners)
	return owners
}

// Wait blocks until every Init has returned.
func (h *Host) Wait() {
	h.running.Wait()
}

func newRunID(t time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// stripGoBuildDirectives removes leading build constraints (//go:build, // +build)
// which are meaningful to the Go toolchain but can confuse the interpreter.
func stripGoBuildDirectives(src []byte) []byte {
	lines := strings.Split(string(src), "\n")
	i := 0
	for i < len(lines) {
		l := strings.TrimSpace(lines[i])
		if strings.HasPrefix(l, "package ") {
			break
		}
		if strings.HasPrefix(l, "//go:build") || strings.HasPrefix(l, "// +build") || l == "" {
			i++
			continue
		}
		break
	}
	if i == 0 {
		return src
	}
	return []byte(strings.Join(lines[i:], "\n"))
}
