// Package imaging normalizes uploaded reference images into the base64 PNG
// form the upstream API accepts as conditioning input.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxDimension is the longest side allowed before downsampling kicks in.
const MaxDimension = 1024

// Normalize decodes raw upload bytes, flattens them to RGBA, downsamples so
// the longer side is at most MaxDimension while preserving aspect ratio, and
// returns the result as base64-encoded PNG.
func Normalize(data []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("imaging: decode upload: %w", err)
	}

	normalized := scaleDown(flatten(src))

	var buf bytes.Buffer
	if err := png.Encode(&buf, normalized); err != nil {
		return "", fmt.Errorf("imaging: encode png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// flatten redraws the image into an RGBA buffer so palette, grayscale, and
// CMYK inputs all end up in a plain color representation.
func flatten(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(dst, image.Point{}, src, bounds, draw.Src, nil)
	return dst
}

func scaleDown(src *image.RGBA) *image.RGBA {
	width := src.Bounds().Dx()
	height := src.Bounds().Dy()
	longest := width
	if height > longest {
		longest = height
	}
	if longest <= MaxDimension {
		return src
	}

	scale := float64(MaxDimension) / float64(longest)
	dstW := int(float64(width)*scale + 0.5)
	dstH := int(float64(height)*scale + 0.5)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
