package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrUnsupportedImage = errors.New("unsupported image format (jpg, jpeg, png, webp)")

const logoQuality = 85

// EncodeLogo decodes a jpeg, png or webp image, shrinks it to fit a
// maxSide square and re-encodes it as lossy webp.
func EncodeLogo(r io.Reader, maxSide int) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, ErrUnsupportedImage
	}
	if maxSide > 0 {
		b := img.Bounds()
		if b.Dx() > maxSide || b.Dy() > maxSide {
			img = imaging.Fit(img, maxSide, maxSide, imaging.CatmullRom)
		}
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: logoQuality}); err != nil {
		return nil, errors.Wrap(err, "encoding webp")
	}
	return buf.Bytes(), nil
}

// SaveLogo writes data under <dir>/schools and returns the public path
// served from /uploads.
func SaveLogo(dir string, schoolID int64, data []byte) (string, error) {
	sub := filepath.Join(dir, "schools")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		return "", errors.Wrap(err, "creating upload dir")
	}
	name := fmt.Sprintf("%d-%s-%s.webp", schoolID, time.Now().Format("20060102"), uuid.NewString()[:8])
	if err := os.WriteFile(filepath.Join(sub, name), data, 0o644); err != nil {
		return "", errors.Wrap(err, "writing logo")
	}
	return "/uploads/schools/" + name, nil
}

// RemoveLogo deletes a file previously returned by SaveLogo. Missing files
// are ignored.
func RemoveLogo(dir, publicPath string) error {
	const prefix = "/uploads/"
	if len(publicPath) <= len(prefix) || publicPath[:len(prefix)] != prefix {
		return nil
	}
	rel := filepath.Clean(publicPath[len(prefix):])
	if rel == "." || filepath.IsAbs(rel) || rel[0] == '.' {
		return nil
	}
	err := os.Remove(filepath.Join(dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
