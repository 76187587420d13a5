package publish

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// fakeS3 records PutObject calls.
type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, params)
	f.bodies = append(f.bodies, string(data))
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3Store(fake, "my-bucket", "docs")

	err := store.Put(context.Background(), "guide.html", "text/html", strings.NewReader("<p>hi</p>"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if len(fake.inputs) != 1 {
		t.Fatalf("PutObject calls = %d, want 1", len(fake.inputs))
	}
	in := fake.inputs[0]
	if *in.Bucket != "my-bucket" {
		t.Errorf("Bucket = %q, want %q", *in.Bucket, "my-bucket")
	}
	if *in.Key != "docs/guide.html" {
		t.Errorf("Key = %q, want %q", *in.Key, "docs/guide.html")
	}
	if *in.ContentType != "text/html" {
		t.Errorf("ContentType = %q, want %q", *in.ContentType, "text/html")
	}
	if fake.bodies[0] != "<p>hi</p>" {
		t.Errorf("body = %q, want %q", fake.bodies[0], "<p>hi</p>")
	}
}

func TestS3Store_PrefixNormalization(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "guide.html"},
		{"docs", "docs/guide.html"},
		{"docs/", "docs/guide.html"},
		{"/docs/", "docs/guide.html"},
	}

	for _, tt := range tests {
		fake := &fakeS3{}
		store := NewS3Store(fake, "b", tt.prefix)
		if err := store.Put(context.Background(), "guide.html", "text/html", strings.NewReader("x")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if got := *fake.inputs[0].Key; got != tt.want {
			t.Errorf("prefix %q: Key = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestS3Store_PutError(t *testing.T) {
	wantErr := errors.New("denied")
	store := NewS3Store(&fakeS3{err: wantErr}, "b", "")

	err := store.Put(context.Background(), "x.html", "text/html", strings.NewReader("x"))
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
	if !strings.Contains(err.Error(), "x.html") {
		t.Errorf("error should name the key: %v", err)
	}
}

func TestPublish_ToS3(t *testing.T) {
	src := t.TempDir()
	writeSourceFile(t, src, "readme.md", "# S3 Test\n")

	fake := &fakeS3{}
	store := NewS3Store(fake, "site-bucket", "v1")

	stats, err := New(store, DefaultOptions()).Publish(context.Background(), src)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if stats.Rendered != 1 {
		t.Errorf("Rendered = %d, want 1", stats.Rendered)
	}

	keys := make(map[string]bool)
	for _, in := range fake.inputs {
		keys[*in.Key] = true
	}
	if !keys["v1/readme.html"] {
		t.Errorf("keys = %v, want v1/readme.html", keys)
	}
	if !keys["v1/style.css"] {
		t.Errorf("keys = %v, want v1/style.css", keys)
	}
}
