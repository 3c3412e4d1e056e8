package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"runtime/debug"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"cssm/common"
	"cssm/config"
	"cssm/utils/images"
)

var svgMimeType = common.ImageFormatSvg.MimeType()

// svgRenderSize is the box SVG drawing is rendered into when full decode is
// requested. Rendering only proves the drawing is usable, size comes from
// the document itself.
const svgRenderSize = 64

// Source is named readable content. *File implements it.
type Source interface {
	Name() string
	Type() string
	Open() (io.ReadCloser, error)
}

// Dimensions are intrinsic pixel sizes of an image, both always positive.
type Dimensions struct {
	Width, Height int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Image is a result of decoding.
type Image struct {
	Dimensions
	Format common.ImageFormat
}

// Decoder reports dimensions of image files. It keeps no state between
// calls and may be shared.
type Decoder struct {
	cfg config.DecodeConfig
	log *zap.Logger
}

func NewDecoder(cfg *config.DecodeConfig, log *zap.Logger) *Decoder {
	if cfg == nil {
		cfg = &config.DecodeConfig{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{cfg: *cfg, log: log.Named("decode")}
}

// Dimensions reads src and decodes it as an image returning its size.
func (d *Decoder) Dimensions(ctx context.Context, src Source) (Dimensions, error) {
	img, err := d.Decode(ctx, src)
	if err != nil {
		return Dimensions{}, err
	}
	return img.Dimensions, nil
}

// Decode goes through two stages: content is read and encoded as data URL,
// then data URL payload is decoded. Read errors match ErrRead, bad content
// matches ErrDecode. When configured timeout expires or ctx is done the
// stage in progress is abandoned and context error is returned.
func (d *Decoder) Decode(ctx context.Context, src Source) (Image, error) {
	if src == nil {
		return Image{}, &ReadError{Err: errors.New("no file")}
	}
	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	var (
		stage   = common.StageAwaitingRead
		dataURL string
		res     Image
		err     error
	)

	start := time.Now()
	for !stage.Final() {
		if err = ctx.Err(); err != nil {
			err = fmt.Errorf("%s: %w", stage, err)
			stage = common.StageFailed
			continue
		}

		switch stage {
		case common.StageAwaitingRead:
			dataURL, err = await(ctx, func() (string, error) {
				return DataURL(src)
			})
			stage = advance(err, common.StageAwaitingDecode)
		case common.StageAwaitingDecode:
			res, err = await(ctx, func() (Image, error) {
				return d.decodeDataURL(dataURL)
			})
			stage = advance(err, common.StageDone)
		}
	}

	if err != nil {
		d.log.Debug("Decoding failed", zap.String("name", src.Name()), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return Image{}, err
	}
	d.log.Debug("Decoded",
		zap.String("name", src.Name()), zap.Stringer("format", res.Format), zap.Stringer("size", res.Dimensions),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func advance(err error, next common.Stage) common.Stage {
	if err != nil {
		return common.StageFailed
	}
	return next
}

// await runs fn in its own goroutine so that caller could stop waiting when
// ctx is done. fn is not interrupted, its result is dropped.
func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}

	ch := make(chan result, 1)
	go func() {
		defer func() {
			// some of image decoders are known to panic on malformed input
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("%w: panic: %v\n%s", ErrDecode, r, debug.Stack())}
			}
		}()
		v, err := fn()
		ch <- result{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}

// DataURL reads src completely and returns it as base64 data URL. Sources
// without type are labeled as OctetStream.
func DataURL(src Source) (string, error) {
	rc, err := src.Open()
	if err != nil {
		return "", &ReadError{Name: src.Name(), Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", &ReadError{Name: src.Name(), Err: err}
	}

	typ := src.Type()
	if typ == "" {
		typ = OctetStream
	}

	var sb strings.Builder
	sb.Grow(len("data:;base64,") + len(typ) + base64.StdEncoding.EncodedLen(len(data)))
	sb.WriteString("data:")
	sb.WriteString(typ)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	return sb.String(), nil
}

func parseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data URL has no payload")
	}
	typ, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return typ, data, nil
}

func (d *Decoder) decodeDataURL(s string) (Image, error) {
	typ, data, err := parseDataURL(s)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty content", ErrDecode)
	}

	// declared type is only a label, content decides unless it is not
	// recognizable by itself
	var res Image
	if isSVG(data) || (typ == svgMimeType && sniffType(data) == "") {
		res, err = d.decodeSVG(data)
	} else {
		res, err = d.decodeRaster(data)
	}
	if err != nil {
		return Image{}, err
	}
	if res.Width <= 0 || res.Height <= 0 {
		return Image{}, fmt.Errorf("%w: invalid dimensions %s", ErrDecode, res.Dimensions)
	}
	return res, nil
}

func (d *Decoder) decodeRaster(data []byte) (Image, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	format, err := common.ParseImageFormat(name)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	res := Image{Dimensions: Dimensions{Width: cfg.Width, Height: cfg.Height}, Format: format}
	if !d.cfg.FullDecode {
		return res, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(d.cfg.AutoOrient))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	b := img.Bounds()
	res.Width, res.Height = b.Dx(), b.Dy()
	return res, nil
}

func (d *Decoder) decodeSVG(data []byte) (Image, error) {
	w, h, err := images.SVGSize(data)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if d.cfg.FullDecode {
		if _, err := images.RasterizeSVG(data, svgRenderSize, svgRenderSize); err != nil {
			return Image{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}
	return Image{Dimensions: Dimensions{Width: w, Height: h}, Format: common.ImageFormatSvg}, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func isSVG(data []byte) bool {
	head := data[:min(len(data), 1024)]
	head = bytes.TrimSpace(bytes.TrimPrefix(head, utf8BOM))
	if !bytes.HasPrefix(head, []byte("<svg")) && !bytes.HasPrefix(head, []byte("<?xml")) && !bytes.HasPrefix(head, []byte("<!DOCTYPE svg")) {
		return false
	}
	return bytes.Contains(head, []byte("<svg"))
}
