package media

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"cssm/config"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, h/2, color.RGBA{R: 255, A: 255})
	}
	return img
}

func encodeImage(t *testing.T, format string, w, h int) []byte {
	t.Helper()

	var (
		buf bytes.Buffer
		err error
	)
	img := testImage(w, h)
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, nil)
	default:
		t.Fatalf("unsupported test format %q", format)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func testFetchConfig() *config.FetchConfig {
	return &config.FetchConfig{
		DefaultMimeType: DefaultMimeType,
		UserAgent:       "cssm-test",
	}
}

func testDecodeConfig() *config.DecodeConfig {
	return &config.DecodeConfig{
		FullDecode: true,
		AutoOrient: true,
		Workers:    1,
	}
}
