package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"cssm/config"
)

// DefaultMimeType is assumed for fetched content when caller did not specify
// type and configuration does not override it.
const DefaultMimeType = "image/jpeg"

var errUnexpectedStatus = errors.New("unexpected response status")

// Fetcher retrieves URLs into Files. Object URLs of the registry it was
// created with are served without touching network.
type Fetcher struct {
	cfg    config.FetchConfig
	client *http.Client
	log    *zap.Logger
}

// NewFetcher creates fetcher with its own transport. reg may be nil, then
// blob: URLs cannot be fetched. nil cfg is the zero configuration.
func NewFetcher(cfg *config.FetchConfig, reg *Registry, log *zap.Logger) *Fetcher {
	if cfg == nil {
		cfg = &config.FetchConfig{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if reg != nil {
		tr.RegisterProtocol(BlobScheme, reg)
	}
	return &Fetcher{
		cfg:    *cfg,
		client: &http.Client{Transport: tr, Timeout: cfg.Timeout},
		log:    log.Named("fetch"),
	}
}

// FetchFile downloads url completely and wraps result into File named after
// the last path segment of url. When mimeType is empty the type is sniffed
// from content (if enabled) or configured default is used. All errors match
// ErrFetch.
func (f *Fetcher) FetchFile(ctx context.Context, url, mimeType string) (*File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if f.cfg.UserAgent != "" && req.URL.Scheme != BlobScheme {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Err: errUnexpectedStatus}
	}

	var body io.Reader = resp.Body
	if f.cfg.MaxBodySize > 0 {
		body = io.LimitReader(resp.Body, f.cfg.MaxBodySize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Err: err}
	}
	if f.cfg.MaxBodySize > 0 && int64(len(data)) > f.cfg.MaxBodySize {
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("body exceeds %d bytes", f.cfg.MaxBodySize)}
	}

	if mimeType == "" {
		if f.cfg.SniffType {
			mimeType = sniffType(data)
		}
		if mimeType == "" {
			mimeType = f.defaultType()
		}
	}

	modTime := time.Now()
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			modTime = t
		}
	}

	file := &File{
		name:    FilenameFromURL(url),
		typ:     mimeType,
		data:    data,
		modTime: modTime,
	}
	f.log.Debug("Fetched",
		zap.String("url", url), zap.String("name", file.name), zap.String("type", file.typ),
		zap.Int("size", len(data)), zap.Duration("elapsed", time.Since(start)))
	return file, nil
}

func (f *Fetcher) defaultType() string {
	if f.cfg.DefaultMimeType != "" {
		return f.cfg.DefaultMimeType
	}
	return DefaultMimeType
}

// FilenameFromURL returns the last non-empty "/" separated segment of url as
// is, without unescaping or dropping query. Empty when there is none.
func FilenameFromURL(url string) string {
	parts := strings.Split(url, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}
