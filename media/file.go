// Package media converts between binary files, object URLs and decoded image
// dimensions.
//
// Files live in memory and never change after construction. A Registry mints
// blob: URLs for them, a Fetcher turns any URL (blob: included) back into a
// File and a Decoder reports pixel dimensions of image files.
package media

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
)

// OctetStream is used when file type cannot be determined.
const OctetStream = "application/octet-stream"

// File is named immutable blob of bytes with MIME type.
type File struct {
	name    string
	typ     string
	data    []byte
	modTime time.Time
}

// NewFile makes a copy of data, caller may reuse the slice.
func NewFile(name, mimeType string, data []byte) *File {
	return &File{
		name:    name,
		typ:     mimeType,
		data:    bytes.Clone(data),
		modTime: time.Now(),
	}
}

// OpenFile reads local file into memory. Empty mimeType is detected from file
// content and, failing that, from file extension.
func OpenFile(path, mimeType string) (*File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if mimeType == "" {
		mimeType = DetectType(filepath.Base(path), data)
	}
	return &File{
		name:    filepath.Base(path),
		typ:     mimeType,
		data:    data,
		modTime: fi.ModTime(),
	}, nil
}

// DetectType looks at content magic first and at name extension second.
func DetectType(name string, data []byte) string {
	if t := sniffType(data); t != "" {
		return t
	}
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
		return t
	}
	if isSVG(data) {
		return svgMimeType
	}
	return OctetStream
}

// sniffType returns empty string for unknown content.
func sniffType(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

func (f *File) Name() string { return f.name }

// Type is MIME type, may be empty.
func (f *File) Type() string { return f.typ }

func (f *File) Size() int64 { return int64(len(f.data)) }

func (f *File) ModTime() time.Time { return f.modTime }

// Bytes returns a copy of file content.
func (f *File) Bytes() []byte {
	return bytes.Clone(f.data)
}

// Open returns reader over file content.
func (f *File) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
