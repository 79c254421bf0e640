// Package render turns raw card artwork into the ready-to-send reveal
// image: reversed cards are rotated 180°, and the output encoding follows
// the source content so transparency is never silently dropped.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

// jpegQuality is the encoding quality for opaque photographic sources.
const jpegQuality = 90

// ErrRender wraps any decode or encode failure. Recoverable per-reveal:
// the pick stays recorded and the user can retry delivery.
var ErrRender = errors.New("render failed")

// Reveal decodes src, rotates it 180° (canvas expanded to fit) iff
// reversed, and re-encodes it. Sources with an alpha channel (and PNG
// sources generally) encode as PNG; everything else encodes as JPEG. The
// choice is content-driven, not caller-driven. Returns the encoded bytes
// and the output format ("png" or "jpeg").
func Reveal(src []byte, reversed bool) ([]byte, string, error) {
	img, srcFormat, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, "", fmt.Errorf("%w: decoding card image: %v", ErrRender, err)
	}

	// Transparency is a property of the source, so decide the output
	// format before any transformation.
	format := "jpeg"
	if srcFormat == "png" || !isOpaque(img) {
		format = "png"
	}

	if reversed {
		img = imaging.Rotate180(img)
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: encoding %s: %v", ErrRender, format, err)
	}
	return buf.Bytes(), format, nil
}

// isOpaque reports whether the image is known to carry no transparency.
// Standard decoded image types all implement Opaque; anything exotic is
// treated as possibly transparent so alpha is preserved.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
