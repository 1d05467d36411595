package storage

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const (
	MaxImageDimension = 1200
	ImageJpegQuality  = 85
	ImageExtension    = ".jpg"
)

// NormalizeImage decodes data, fits it inside MaxImageDimension and
// re-encodes it as JPEG. ok is false when data is not an image this build
// can decode, in which case the caller should store the original bytes.
func NormalizeImage(data []byte) (out io.Reader, ok bool, err error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false, nil
	}

	b := img.Bounds()
	var resized image.Image = img
	if b.Dx() > MaxImageDimension || b.Dy() > MaxImageDimension {
		resized = imaging.Fit(img, MaxImageDimension, MaxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(ImageJpegQuality)); err != nil {
		return nil, false, err
	}
	return &buf, true, nil
}
