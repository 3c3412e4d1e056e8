package media

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFile_CopiesData(t *testing.T) {
	data := []byte("hello")
	f := NewFile("a.txt", "text/plain", data)
	data[0] = 'j'

	if got := string(f.Bytes()); got != "hello" {
		t.Fatalf("Bytes() = %q, want %q", got, "hello")
	}
	b := f.Bytes()
	b[0] = 'j'
	if got := string(f.Bytes()); got != "hello" {
		t.Fatalf("Bytes() after modification of copy = %q", got)
	}
	if f.Name() != "a.txt" || f.Type() != "text/plain" || f.Size() != 5 {
		t.Fatalf("unexpected file attributes: %q %q %d", f.Name(), f.Type(), f.Size())
	}

	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "hello" {
		t.Fatalf("Open() content = %q", got)
	}
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	tests := []struct {
		name     string
		path     string
		mimeType string
		want     string
	}{
		{"sniffed png with wrong extension", write("picture.jpg", encodeImage(t, "png", 4, 4)), "", "image/png"},
		{"svg by extension", write("drawing.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"/>`)), "", "image/svg+xml"},
		{"svg by content", write("drawing", []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"/>`)), "", "image/svg+xml"},
		{"unknown", write("blob", []byte{0x01, 0x02, 0x03}), "", OctetStream},
		{"explicit type", write("data.bin", []byte{0x01}), "image/webp", "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := OpenFile(tt.path, tt.mimeType)
			if err != nil {
				t.Fatalf("OpenFile() error = %v", err)
			}
			if f.Type() != tt.want {
				t.Errorf("Type() = %q, want %q", f.Type(), tt.want)
			}
			if f.Name() != filepath.Base(tt.path) {
				t.Errorf("Name() = %q, want %q", f.Name(), filepath.Base(tt.path))
			}
		})
	}
}

func TestOpenFile_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := OpenFile(filepath.Join(dir, "missing.png"), ""); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := OpenFile(dir, ""); err == nil {
		t.Error("expected error for directory")
	}
}
