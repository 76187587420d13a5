package errors

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "render error",
			code:    "E002",
			wantMsg: "Tree transform failed",
			wantCat: CategoryRender,
		},
		{
			name:    "config error",
			code:    "E101",
			wantMsg: "Invalid vmark.json",
			wantCat: CategoryConfig,
		},
		{
			name:    "publish error",
			code:    "E302",
			wantMsg: "S3 upload failed",
			wantCat: CategoryPublish,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "intro.md")
	if err.Message != `file "intro.md" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "intro.md" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestVmarkError_Error(t *testing.T) {
	err := New("E002")
	got := err.Error()
	want := "E002: Tree transform failed"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &VmarkError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := New("E301").Wrap(inner)

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil) should be nil")
	}

	ve := New("E101")
	if got := FromError(ve, "E001"); got != ve {
		t.Error("FromError should pass through an existing VmarkError")
	}

	plain := errors.New("boom")
	wrapped := FromError(plain, "E001")
	if wrapped.Code != "E001" {
		t.Errorf("Code = %q, want E001", wrapped.Code)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("wrapped error lost the original")
	}
}

func TestWithLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intro.md")
	content := "line one\nline two\nline three\nline four\nline five\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E002").WithLocation(path, 3, 0)
	if err.Location == nil {
		t.Fatal("Location not set")
	}
	if got := err.Location.String(); got != path+":3" {
		t.Errorf("Location = %q, want %q", got, path+":3")
	}
	if len(err.Context) == 0 {
		t.Fatal("no context lines read")
	}
	found := false
	for _, l := range err.Context {
		if l == "line three" {
			found = true
		}
	}
	if !found {
		t.Errorf("Context = %v, want it to include the target line", err.Context)
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{"nil", nil, ""},
		{"line only", &Location{File: "a.md", Line: 7}, "a.md:7"},
		{"line and column", &Location{File: "a.md", Line: 7, Column: 3}, "a.md:7:3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E302").
		WithSuggestion("Check the bucket region").
		WithExample("vmark export docs --s3-bucket my-site")

	out := err.Format()
	for _, want := range []string{
		"ERROR E302: S3 upload failed",
		"Hint: Check the bucket region",
		"vmark export docs --s3-bucket my-site",
		"https://vmark.dev/docs/errors/E302",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q, got:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E002")
	err.Location = &Location{File: "docs/intro.md", Line: 15}

	got := err.FormatCompact()
	want := "docs/intro.md:15: E002: Tree transform failed"
	if got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("aa bb cc dd", 5)
	if len(lines) < 2 {
		t.Fatalf("wrapText returned %d lines, want wrapping", len(lines))
	}
	for _, l := range lines {
		if len(l) > 5 {
			t.Errorf("line %q exceeds width", l)
		}
	}
}
