// Package convert implements program commands: formatting of CSS values and
// conversions between files, URLs and image dimensions.
package convert

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"cssm/media"
	"cssm/state"
)

// pipeline bundles media components built from program configuration.
type pipeline struct {
	env     *state.LocalEnv
	fetcher *media.Fetcher
	decoder *media.Decoder
}

func newPipeline(env *state.LocalEnv) *pipeline {
	return &pipeline{
		env:     env,
		fetcher: media.NewFetcher(&env.Cfg.Media.Fetch, env.Registry, env.Log),
		decoder: media.NewDecoder(&env.Cfg.Media.Decode, env.Log),
	}
}

// isURL tells remote and object URLs from local paths. Windows drive letters
// parse as schemes, so only known schemes count.
func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", media.BlobScheme:
		return true
	}
	return false
}

// fetch retrieves src which is either URL or local path. Local files are
// registered as object URLs for the duration of the call and go through the
// same fetcher as remote ones.
func (p *pipeline) fetch(ctx context.Context, src, mimeType string) (*media.File, error) {
	if isURL(src) {
		return p.fetcher.FetchFile(ctx, src, mimeType)
	}

	local, err := media.OpenFile(src, mimeType)
	if err != nil {
		return nil, fmt.Errorf("unable to open source: %w", err)
	}
	u, ok := p.env.Registry.CreateObjectURL(local)
	if !ok {
		// this should never happen
		return nil, errors.New("unable to create object URL")
	}
	defer p.env.Registry.Revoke(u)

	p.env.Log.Debug("Local file registered", zap.String("path", src), zap.String("url", u))
	return p.fetcher.FetchFile(ctx, u, local.Type())
}

func destinationDir(dst string) (string, error) {
	var err error
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	return filepath.Abs(dst)
}
