package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf
}

func TestEncodeLogoShrinksToFit(t *testing.T) {
	out, err := EncodeLogo(pngOf(t, 400, 200), 100)
	require.NoError(t, err)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestEncodeLogoKeepsSmallImages(t *testing.T) {
	out, err := EncodeLogo(pngOf(t, 40, 30), 100)
	require.NoError(t, err)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestEncodeLogoRejectsGarbage(t *testing.T) {
	_, err := EncodeLogo(strings.NewReader("definitely not an image"), 100)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestSaveAndRemoveLogo(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveLogo(dir, 12, []byte("webp"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/schools/12-"))

	disk := filepath.Join(dir, strings.TrimPrefix(path, "/uploads/"))
	_, err = os.Stat(disk)
	require.NoError(t, err)

	require.NoError(t, RemoveLogo(dir, path))
	_, err = os.Stat(disk)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, RemoveLogo(dir, "/uploads/../etc/passwd"))
	assert.NoError(t, RemoveLogo(dir, "https://elsewhere/logo.png"))
}
