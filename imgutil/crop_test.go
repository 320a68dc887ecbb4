package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	ai "github.com/mchlmayer/thumbpro"
)

// encoded returns a w×h image in format with a marker pixel at the center.
func encoded(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	img.Set(w/2, h/2, color.RGBA{255, 0, 0, 255})

	buf := new(bytes.Buffer)
	switch format {
	case "png":
		require.NoError(t, png.Encode(buf, img))
	case "jpeg":
		require.NoError(t, jpeg.Encode(buf, img, nil))
	default:
		t.Fatalf("unsupported format: %s", format)
	}
	return buf.Bytes()
}

func TestCropToAspect(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		w, h     int
		ratio    ai.AspectRatio
		wantW    int
		wantH    int
		wantMIME string
	}{
		{"square to landscape", "png", 160, 160, ai.AspectLandscape, 160, 90, "image/png"},
		{"landscape to portrait", "png", 160, 90, ai.AspectPortrait, 50, 90, "image/png"},
		{"landscape to square", "jpeg", 160, 90, ai.AspectSquare, 90, 90, "image/jpeg"},
		{"portrait to classic", "png", 90, 160, ai.AspectClassic, 90, 67, "image/png"},
		{"already matching", "png", 300, 400, ai.AspectTall, 300, 400, "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := CropToAspect(encoded(t, tt.format, tt.w, tt.h), tt.ratio)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMIME, ref.MIMEType)
			require.NoError(t, ref.Validate())

			out, _, err := image.Decode(bytes.NewReader(ref.Data))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, out.Bounds().Dx())
			assert.Equal(t, tt.wantH, out.Bounds().Dy())
		})
	}
}

func TestCropToAspectKeepsCenter(t *testing.T) {
	ref, err := CropToAspect(encoded(t, "png", 200, 100), ai.AspectSquare)
	require.NoError(t, err)

	out, _, err := image.Decode(bytes.NewReader(ref.Data))
	require.NoError(t, err)
	r, _, _, _ := out.At(50, 50).RGBA()
	assert.Equal(t, uint32(0xffff), r, "center marker survives the crop")
}

func TestCropToAspectErrors(t *testing.T) {
	t.Run("not an image", func(t *testing.T) {
		_, err := CropToAspect([]byte("this is not an image"), ai.AspectSquare)
		var imgErr *ai.ImageError
		require.ErrorAs(t, err, &imgErr)
		assert.Equal(t, "decode", imgErr.Op)
	})

	t.Run("unsupported ratio", func(t *testing.T) {
		_, err := CropToAspect(encoded(t, "png", 10, 10), ai.AspectRatio("21:9"))
		assert.True(t, ai.IsKind(err, ai.KindInvalidInput))
	})

	t.Run("too small", func(t *testing.T) {
		_, err := CropToAspect(encoded(t, "png", 1, 1), ai.AspectLandscape)
		var imgErr *ai.ImageError
		require.ErrorAs(t, err, &imgErr)
		assert.Equal(t, "crop", imgErr.Op)
	})
}

func TestCropRectProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(16, 4000).Draw(t, "w")
		h := rapid.IntRange(16, 4000).Draw(t, "h")
		ratio := rapid.SampledFrom(ai.AspectRatios).Draw(t, "ratio")
		bounds := image.Rect(0, 0, w, h)

		rect := CropRect(bounds, ratio)
		rw, rh := ratio.Dimensions()

		if !rect.In(bounds) {
			t.Fatalf("crop %v escapes bounds %v", rect, bounds)
		}
		if rect.Dx() != w && rect.Dy() != h {
			t.Fatalf("crop %v does not span either full dimension of %v", rect, bounds)
		}
		diff := rect.Dx()*rh - rect.Dy()*rw
		if diff < 0 {
			diff = -diff
		}
		if diff >= max(rw, rh) {
			t.Fatalf("crop %v is off ratio %s by %d", rect, ratio, diff)
		}
	})
}

func TestDetectMIMEType(t *testing.T) {
	assert.Equal(t, "image/png", DetectMIMEType(encoded(t, "png", 4, 4)))
	assert.Equal(t, "image/jpeg", DetectMIMEType(encoded(t, "jpeg", 4, 4)))
	assert.Empty(t, DetectMIMEType([]byte("plain text")))
}

func TestLoadReference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "face.jpg")
	require.NoError(t, os.WriteFile(path, encoded(t, "jpeg", 320, 240), 0o600))

	ref, err := LoadReference(path, ai.AspectLandscape)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ref.MIMEType)

	textPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("hello"), 0o600))
	_, err = LoadReference(textPath, ai.AspectLandscape)
	var imgErr *ai.ImageError
	require.ErrorAs(t, err, &imgErr)
	assert.Equal(t, "sniff", imgErr.Op)

	_, err = LoadReference(filepath.Join(dir, "missing.png"), ai.AspectSquare)
	assert.ErrorAs(t, err, &imgErr)
}
