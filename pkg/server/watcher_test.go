package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, ignore []string) (*Watcher, string, chan Change) {
	t.Helper()

	root := t.TempDir()
	w, err := NewWatcher(root, ignore, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	t.Cleanup(w.Stop)

	ch := make(chan Change, 8)
	w.OnChange(func(c Change) { ch <- c })

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// Give the watch registration a moment to settle
	time.Sleep(50 * time.Millisecond)
	return w, root, ch
}

func expectChange(t *testing.T, ch chan Change, wantPath string, wantType ChangeType) {
	t.Helper()
	select {
	case c := <-ch:
		if c.Path != wantPath {
			t.Errorf("Change.Path = %q, want %q", c.Path, wantPath)
		}
		if c.Type != wantType {
			t.Errorf("Change.Type = %d, want %d", c.Type, wantType)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for change to %q", wantPath)
	}
}

func expectNoChange(t *testing.T, ch chan Change) {
	t.Helper()
	select {
	case c := <-ch:
		t.Fatalf("unexpected change: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_DetectsMarkdownChange(t *testing.T) {
	_, root, ch := newTestWatcher(t, nil)

	if err := os.WriteFile(filepath.Join(root, "test.md"), []byte("# hi"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	expectChange(t, ch, "test.md", ChangeMarkdown)
}

func TestWatcher_ClassifiesCSS(t *testing.T) {
	_, root, ch := newTestWatcher(t, nil)

	if err := os.WriteFile(filepath.Join(root, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	expectChange(t, ch, "style.css", ChangeCSS)
}

func TestWatcher_IgnoresPatterns(t *testing.T) {
	_, root, ch := newTestWatcher(t, []string{"**/*.tmp"})

	if err := os.WriteFile(filepath.Join(root, "scratch.tmp"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	expectNoChange(t, ch)

	// The watcher is still alive for non-ignored files
	if err := os.WriteFile(filepath.Join(root, "real.md"), []byte("# hi"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	expectChange(t, ch, "real.md", ChangeMarkdown)
}

func TestWatcher_DefaultIgnoreHidesDotfiles(t *testing.T) {
	_, root, ch := newTestWatcher(t, nil)

	if err := os.WriteFile(filepath.Join(root, ".hidden.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	expectNoChange(t, ch)
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	_, root, ch := newTestWatcher(t, nil)

	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	// Allow the new directory's watch to register
	time.Sleep(250 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(sub, "inner.md"), []byte("# hi"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	expectChange(t, ch, "sub/inner.md", ChangeMarkdown)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, _, _ := newTestWatcher(t, nil)

	if !w.IsRunning() {
		t.Fatal("watcher should be running after Start")
	}
	w.Stop()
	if w.IsRunning() {
		t.Error("watcher should not be running after Stop")
	}
	w.Stop() // must not panic
}

func TestWatcher_IgnoredAncestors(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), []string{"**/node_modules/**", "**/.*"}, 0)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	t.Cleanup(w.Stop)

	tests := []struct {
		rel  string
		want bool
	}{
		{"node_modules/pkg/index.js", true},
		{"deep/node_modules/pkg/index.js", true},
		{"docs/guide.md", false},
		{".git/config", true},
		{"docs/.cache/data", true},
		{"readme.md", false},
	}
	for _, tt := range tests {
		if got := w.ignored(tt.rel); got != tt.want {
			t.Errorf("ignored(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		path string
		want ChangeType
	}{
		{"readme.md", ChangeMarkdown},
		{"docs/GUIDE.MD", ChangeMarkdown},
		{"notes.markdown", ChangeMarkdown},
		{"style.css", ChangeCSS},
		{"logo.png", ChangeAsset},
		{"data.json", ChangeAsset},
	}
	for _, tt := range tests {
		if got := classifyChange(tt.path); got != tt.want {
			t.Errorf("classifyChange(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}
