// Enums shared by configuration, media pipeline and command line. Code for
// them is generated by go-enum, do not forget to regenerate after changes.
package common

// Progress of image decoding: file bytes are read first and only then handed
// to the image decoder.
// ENUM(awaitingRead, awaitingDecode, done, failed)
type Stage int

func (s Stage) Final() bool {
	return s == StageDone || s == StageFailed
}

// Image formats decoder is able to size.
// ENUM(jpeg, png, gif, bmp, tiff, webp, svg)
type ImageFormat int

// MimeType returns canonical MIME type for the format.
func (f ImageFormat) MimeType() string {
	switch f {
	case ImageFormatSvg:
		return "image/svg+xml"
	default:
		return "image/" + f.String()
	}
}
