// Package thumbnail produces upload thumbnails.
package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	// MaxThumbSize is the longest edge of a thumbnail.
	MaxThumbSize = 300
	thumbQuality = 60
)

// Thumbnailer implements asset.Thumbnailer.
type Thumbnailer struct {
	MaxSize int
	Quality int
}

func NewThumbnailer() *Thumbnailer {
	return &Thumbnailer{MaxSize: MaxThumbSize, Quality: thumbQuality}
}

// Thumbnail decodes a JPEG, PNG, GIF or WebP image, fits it into
// MaxSize x MaxSize (never upscaling) and encodes it as JPEG.
func (t *Thumbnailer) Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	edge := t.MaxSize
	if edge <= 0 {
		edge = MaxThumbSize
	}
	var out image.Image = img
	b := img.Bounds()
	if b.Dx() > edge || b.Dy() > edge {
		out = imaging.Fit(img, edge, edge, imaging.Lanczos)
	}

	q := t.Quality
	if q <= 0 {
		q = thumbQuality
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
