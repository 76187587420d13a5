package server

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeMarkdown ChangeType = iota
	ChangeCSS
	ChangeAsset
)

// Change represents a detected file change. Path is relative to the
// watched root, slash separated.
type Change struct {
	Path string
	Type ChangeType
}

// DefaultIgnore contains default patterns to skip while watching.
var DefaultIgnore = []string{
	"**/.*",
	"**/node_modules/**",
	"**/dist/**",
}

// Watcher monitors a directory tree for changes, coalescing bursts of
// events into one notification per change type.
type Watcher struct {
	root     string
	ignore   []string
	debounce time.Duration
	fsw      *fsnotify.Watcher

	mu       sync.Mutex
	onChange func(Change)
	running  bool
	stopCh   chan struct{}
	pending  map[ChangeType]string
	timer    *time.Timer
}

// NewWatcher creates a watcher for root. Ignore patterns are doublestar
// globs matched against root-relative paths; an empty slice gets
// DefaultIgnore.
func NewWatcher(root string, ignore []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if len(ignore) == 0 {
		ignore = DefaultIgnore
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &Watcher{
		root:     root,
		ignore:   ignore,
		debounce: debounce,
		fsw:      fsw,
		pending:  make(map[ChangeType]string),
	}, nil
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins watching for file changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	if err := w.watchTree(w.root); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop stops the watcher. Safe to call more than once, and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		w.running = false
		close(w.stopCh)
	}
	w.fsw.Close()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// watchTree registers dir and all non-ignored subdirectories.
func (w *Watcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if rel := w.relPath(p); rel != "." && w.ignored(rel) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	rel := w.relPath(event.Name)
	if rel == "." || w.ignored(rel) {
		return
	}

	// New directories need their own watch
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watchTree(event.Name)
			return
		}
	}

	w.mu.Lock()
	w.pending[classifyChange(rel)] = rel
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
	w.mu.Unlock()
}

// fire reports the pending changes, one per type.
func (w *Watcher) fire() {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[ChangeType]string)
	callback := w.onChange
	w.mu.Unlock()

	if callback == nil {
		return
	}
	for _, t := range []ChangeType{ChangeMarkdown, ChangeAsset, ChangeCSS} {
		if p, ok := pending[t]; ok {
			callback(Change{Path: p, Type: t})
		}
	}
}

// relPath converts an absolute event path to a root-relative slash path.
func (w *Watcher) relPath(p string) string {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return "."
	}
	return filepath.ToSlash(rel)
}

// ignored reports whether rel or any of its ancestors matches an ignore
// pattern, so a pattern for a directory prunes everything under it.
func (w *Watcher) ignored(rel string) bool {
	for _, pattern := range w.ignore {
		for p := rel; p != "." && p != "/"; p = path.Dir(p) {
			if ok, _ := doublestar.Match(pattern, p); ok {
				return true
			}
		}
	}
	return false
}

// classifyChange determines the type of change based on file extension.
func classifyChange(p string) ChangeType {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".md", ".markdown":
		return ChangeMarkdown
	case ".css":
		return ChangeCSS
	default:
		return ChangeAsset
	}
}
