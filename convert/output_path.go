package convert

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"cssm/common"
	"cssm/config"
	"cssm/media"
	"cssm/state"
)

// defaultBaseName is used when URL gives no usable file name.
const defaultBaseName = "download"

// buildOutputPath returns path fetched file is saved under. Name derived from
// URL may carry query string and characters file system does not like, so
// query is dropped, name is cleaned and if requested transliterated. Missing
// extension is restored from MIME type.
func buildOutputPath(f *media.File, dst string, env *state.LocalEnv) string {
	name, _, _ := strings.Cut(f.Name(), "?")
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if ext == "" {
		ext = extensionForType(f.Type())
	}
	if env.Cfg.Media.Fetch.SlugNames {
		base = slug.Make(base)
	}
	if base == "" {
		base = defaultBaseName
	}
	return filepath.Join(dst, config.CleanFileName(base)+ext)
}

func extensionForType(mimeType string) string {
	if sub, ok := strings.CutPrefix(mimeType, "image/"); ok {
		if format, err := common.ParseImageFormat(strings.TrimSuffix(sub, "+xml")); err == nil {
			return "." + format.String()
		}
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
