// Package imgutil prepares caller images for use as generation references.
package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	ai "github.com/mchlmayer/thumbpro"
)

// JPEGQuality is the quality used when re-encoding JPEG sources.
const JPEGQuality = 90

// DetectMIMEType sniffs the image MIME type of data. It returns an empty string
// when data is not a recognised image format.
func DetectMIMEType(data []byte) string {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return ""
	}
	return mimeType
}

// CropRect returns the largest rectangle with the given ratio centered in bounds.
func CropRect(bounds image.Rectangle, ratio ai.AspectRatio) image.Rectangle {
	rw, rh := ratio.Dimensions()
	w, h := bounds.Dx(), bounds.Dy()

	// Compare w/h against rw/rh without floating point.
	cw, ch := w, h
	if w*rh > h*rw {
		cw = h * rw / rh
	} else {
		ch = w * rh / rw
	}

	x0 := bounds.Min.X + (w-cw)/2
	y0 := bounds.Min.Y + (h-ch)/2
	return image.Rect(x0, y0, x0+cw, y0+ch)
}

// CropToAspect center-crops an encoded image to ratio and re-encodes it.
// JPEG sources stay JPEG; everything else is written as PNG.
func CropToAspect(data []byte, ratio ai.AspectRatio) (ai.ReferenceImage, error) {
	if !ratio.Valid() {
		return ai.ReferenceImage{}, ai.NewInvalidInputError(fmt.Sprintf("unsupported aspect ratio %q", ratio))
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ai.ReferenceImage{}, &ai.ImageError{Op: "decode", Source: "bytes", Err: err}
	}

	rect := CropRect(src.Bounds(), ratio)
	if rect.Empty() {
		return ai.ReferenceImage{}, &ai.ImageError{Op: "crop", Source: "bytes", Err: fmt.Errorf("image of %v is too small", src.Bounds().Size())}
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)

	buf := new(bytes.Buffer)
	mimeType := "image/png"
	if format == "jpeg" {
		mimeType = "image/jpeg"
		err = jpeg.Encode(buf, dst, &jpeg.Options{Quality: JPEGQuality})
	} else {
		err = png.Encode(buf, dst)
	}
	if err != nil {
		return ai.ReferenceImage{}, &ai.ImageError{Op: "encode", Source: format, Err: err}
	}

	return ai.ReferenceImage{Data: buf.Bytes(), MIMEType: mimeType}, nil
}

// LoadReference reads an image file and center-crops it to ratio.
func LoadReference(path string, ratio ai.AspectRatio) (ai.ReferenceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ai.ReferenceImage{}, &ai.ImageError{Op: "read", Source: filepath.Base(path), Err: err}
	}
	if DetectMIMEType(data) == "" {
		return ai.ReferenceImage{}, &ai.ImageError{Op: "sniff", Source: filepath.Base(path), Err: fmt.Errorf("not an image")}
	}
	return CropToAspect(data, ratio)
}
