package thumbpro

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// AspectRatio is one of the fixed output aspect ratios.
type AspectRatio string

const (
	AspectLandscape AspectRatio = "16:9" // YouTube default
	AspectPortrait  AspectRatio = "9:16" // Shorts
	AspectSquare    AspectRatio = "1:1"
	AspectClassic   AspectRatio = "4:3"
	AspectTall      AspectRatio = "3:4"
)

// AspectRatios lists every supported aspect ratio.
var AspectRatios = []AspectRatio{
	AspectLandscape,
	AspectPortrait,
	AspectSquare,
	AspectClassic,
	AspectTall,
}

// ParseAspectRatio validates s against the supported aspect ratios.
func ParseAspectRatio(s string) (AspectRatio, error) {
	r := AspectRatio(strings.TrimSpace(s))
	if !r.Valid() {
		return "", NewInvalidInputError(fmt.Sprintf("unsupported aspect ratio %q", s))
	}
	return r, nil
}

// Valid reports whether r is one of the supported aspect ratios.
func (r AspectRatio) Valid() bool {
	for _, v := range AspectRatios {
		if r == v {
			return true
		}
	}
	return false
}

// String returns the ratio literal, e.g. "16:9".
func (r AspectRatio) String() string { return string(r) }

// Dimensions returns the width and height terms of the ratio.
func (r AspectRatio) Dimensions() (w, h int) {
	switch r {
	case AspectLandscape:
		return 16, 9
	case AspectPortrait:
		return 9, 16
	case AspectClassic:
		return 4, 3
	case AspectTall:
		return 3, 4
	default:
		return 1, 1
	}
}

// Orientation describes the frame shape in words.
func (r AspectRatio) Orientation() string {
	w, h := r.Dimensions()
	switch {
	case w > h:
		return "landscape"
	case h > w:
		return "portrait"
	default:
		return "square"
	}
}

// RequestKind distinguishes pure text-to-image requests from reference edits.
type RequestKind string

const (
	RequestTextToImage   RequestKind = "text_to_image"
	RequestReferenceEdit RequestKind = "reference_edit"
)

// ReferenceImage is an image supplied by the caller to condition generation.
type ReferenceImage struct {
	Data     []byte
	MIMEType string
}

// NewReferenceImageFromBase64 decodes base64 image data.
func NewReferenceImageFromBase64(b64, mimeType string) (ReferenceImage, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return ReferenceImage{}, &ImageError{Op: "decode", Source: "base64", Err: err}
	}
	ref := ReferenceImage{Data: data, MIMEType: mimeType}
	if err := ref.Validate(); err != nil {
		return ReferenceImage{}, err
	}
	return ref, nil
}

// ParseDataURL decodes a "data:<mime>;base64,<payload>" URL as produced by browser canvases.
func ParseDataURL(dataURL string) (ReferenceImage, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return ReferenceImage{}, &ImageError{Op: "decode", Source: "data-url", Err: errors.New("missing data: prefix")}
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return ReferenceImage{}, &ImageError{Op: "decode", Source: "data-url", Err: errors.New("missing payload separator")}
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return ReferenceImage{}, &ImageError{Op: "decode", Source: "data-url", Err: errors.New("only base64 data URLs are supported")}
	}
	return NewReferenceImageFromBase64(payload, mimeType)
}

// Base64 returns the image data base64-encoded.
func (r ReferenceImage) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Data)
}

// Validate checks the image carries data and an image MIME type.
func (r ReferenceImage) Validate() error {
	if len(r.Data) == 0 {
		return NewInvalidInputError("reference image is empty")
	}
	if !strings.HasPrefix(r.MIMEType, "image/") {
		return NewInvalidInputError(fmt.Sprintf("reference image has non-image MIME type %q", r.MIMEType))
	}
	return nil
}

// Image is a generated image returned to the caller.
type Image struct {
	Data     []byte
	MIMEType string
	// Model is the candidate model that produced the image.
	Model string
}

// Base64 returns the image data base64-encoded.
func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data URL suitable for direct display.
func (i *Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

// GenerationRequest is one logical generation operation.
type GenerationRequest struct {
	Kind        RequestKind
	Prompt      string
	AspectRatio AspectRatio
	References  []ReferenceImage
}

// Validate enforces the request invariants.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return NewInvalidInputError("prompt is empty")
	}
	if !r.AspectRatio.Valid() {
		return NewInvalidInputError(fmt.Sprintf("unsupported aspect ratio %q", r.AspectRatio))
	}
	switch r.Kind {
	case RequestTextToImage:
	case RequestReferenceEdit:
		if len(r.References) == 0 {
			return NewInvalidInputError("reference edit requires at least one reference image")
		}
		for i, ref := range r.References {
			if err := ref.Validate(); err != nil {
				return NewInvalidInputError(fmt.Sprintf("reference image %d: %s", i, err.Error()))
			}
		}
	default:
		return NewInvalidInputError(fmt.Sprintf("unknown request kind %q", r.Kind))
	}
	return nil
}
