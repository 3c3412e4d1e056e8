package media

import (
	"bytes"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"cssm/utils/debug"
)

// BlobScheme is URL scheme of object URLs.
const BlobScheme = "blob"

// Registry maps object URLs to files. It is safe for concurrent use and
// serves registered files as http.RoundTripper for "blob" scheme.
type Registry struct {
	origin string
	log    *zap.Logger

	mu    sync.RWMutex
	files map[string]*File
}

func NewRegistry(origin string, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	if origin == "" {
		origin = "null"
	}
	return &Registry{
		origin: origin,
		log:    log.Named("registry"),
		files:  make(map[string]*File),
	}
}

// CreateObjectURL registers f under a new unique URL. Nil file yields false.
// URL stays valid until revoked.
func (r *Registry) CreateObjectURL(f *File) (string, bool) {
	if f == nil {
		return "", false
	}
	url := BlobScheme + ":" + r.origin + "/" + uuid.NewString()

	r.mu.Lock()
	r.files[url] = f
	r.mu.Unlock()

	r.log.Debug("Object URL created", zap.String("url", url), zap.String("name", f.Name()), zap.Int64("size", f.Size()))
	return url, true
}

// Revoke forgets url. Unknown URLs are ignored.
func (r *Registry) Revoke(url string) {
	r.mu.Lock()
	_, ok := r.files[url]
	delete(r.files, url)
	r.mu.Unlock()

	if ok {
		r.log.Debug("Object URL revoked", zap.String("url", url))
	}
}

func (r *Registry) Resolve(url string) (*File, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[url]
	return f, ok
}

// Len returns number of live object URLs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.files)
}

// Dump describes live object URLs ordered by file name.
func (r *Registry) Dump() []byte {
	type item struct {
		url string
		f   *File
	}

	r.mu.RLock()
	items := make([]item, 0, len(r.files))
	for url, f := range r.files {
		items = append(items, item{url, f})
	}
	r.mu.RUnlock()

	slices.SortFunc(items, func(a, b item) int {
		switch {
		case natural.Less(a.f.Name(), b.f.Name()):
			return -1
		case natural.Less(b.f.Name(), a.f.Name()):
			return 1
		}
		return strings.Compare(a.url, b.url)
	})

	tw := debug.NewTreeWriter()
	tw.Field(0, "origin", r.origin)
	tw.Field(0, "entries", len(items))
	for _, it := range items {
		tw.Line(1, "%q", it.f.Name())
		tw.Field(2, "url", it.url)
		tw.Field(2, "type", it.f.Type())
		tw.Field(2, "size", it.f.Size())
		tw.Field(2, "modified", it.f.ModTime().UTC().Format(time.RFC3339))
	}
	return tw.Bytes()
}

// RoundTrip serves registered files. Unknown or revoked URLs get 404.
func (r *Registry) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_ = req.Body.Close()
	}

	resp := &http.Response{
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		Request:    req,
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return withStatus(resp, http.StatusMethodNotAllowed), nil
	}

	f, ok := r.Resolve(req.URL.String())
	if !ok {
		return withStatus(resp, http.StatusNotFound), nil
	}

	resp.StatusCode = http.StatusOK
	resp.Status = "200 OK"
	resp.ContentLength = f.Size()
	resp.Header.Set("Content-Length", strconv.FormatInt(f.Size(), 10))
	if f.Type() != "" {
		resp.Header.Set("Content-Type", f.Type())
	}
	if req.Method == http.MethodHead {
		resp.Body = http.NoBody
	} else {
		resp.Body = io.NopCloser(bytes.NewReader(f.data))
	}
	return resp, nil
}

func withStatus(resp *http.Response, code int) *http.Response {
	resp.StatusCode = code
	resp.Status = strconv.Itoa(code) + " " + http.StatusText(code)
	resp.Body = io.NopCloser(strings.NewReader(""))
	return resp
}
