// Package images holds helpers for vector images, which standard image
// decoders do not understand.
package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrNoIntrinsicSize is returned when SVG has neither viewBox nor
// width/height to take its size from.
var ErrNoIntrinsicSize = errors.New("svg has no intrinsic size")

// maxRasterDim is the maximum pixel dimension (width or height) allowed when
// rasterizing an SVG. Enormous viewBox values would otherwise allocate
// gigabytes for the RGBA buffer.
var maxRasterDim = 8192

// SVGSize returns intrinsic size of SVG image rounded up to whole pixels.
func SVGSize(svgData []byte) (int, int, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return 0, 0, err
	}
	w, h := intrinsicSize(icon)
	if w <= 0 || h <= 0 {
		return 0, 0, ErrNoIntrinsicSize
	}
	return w, h, nil
}

func intrinsicSize(icon *oksvg.SvgIcon) (int, int) {
	return int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H))
}

// RasterizeSVG rasterizes SVG to an RGBA image on white background.
//
// Rules:
//   - if targetW == 0 && targetH == 0: use intrinsic dimensions
//   - if only one of targetW/targetH is > 0: scale by that dimension keeping aspect ratio
//   - if both targetW and targetH are > 0: fit into that box keeping aspect ratio
//
// Result never exceeds maxRasterDim in either direction.
func RasterizeSVG(svgData []byte, targetW, targetH int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	intrW, intrH := intrinsicSize(icon)
	if intrW <= 0 || intrH <= 0 {
		return nil, ErrNoIntrinsicSize
	}

	w, h := intrW, intrH
	switch {
	case targetW <= 0 && targetH <= 0:
		// Keep intrinsic size.
	case targetW > 0 && targetH <= 0:
		w = targetW
		h = int(math.Round(float64(w) * float64(intrH) / float64(intrW)))
	case targetH > 0 && targetW <= 0:
		h = targetH
		w = int(math.Round(float64(h) * float64(intrW) / float64(intrH)))
	default:
		scale := math.Min(float64(targetW)/float64(intrW), float64(targetH)/float64(intrH))
		w = int(math.Round(float64(intrW) * scale))
		h = int(math.Round(float64(intrH) * scale))
	}
	w = max(w, 1)
	h = max(h, 1)

	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
