// Package capture writes framebuffer screenshots as PNG files.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/prism/internal/engine/texture"
)

const timeLayout = "2006-01-02_15-04-05"

// Capture names and writes screenshots.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a capture that writes <dir>/<prefix>_<timestamp>.png.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// FromPixels writes bottom-up RGBA rows as read from the framebuffer and
// returns the file path.
func (c *Capture) FromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := &image.RGBA{
		Pix:    append([]byte(nil), pixels...),
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	texture.FlipVertical(img)
	return c.FromImage(img)
}

// FromImage writes img and returns the file path.
func (c *Capture) FromImage(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	name, file, err := c.create()
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return name, file.Close()
}

// create opens a fresh file, adding a counter when several captures land
// in the same second.
func (c *Capture) create() (string, *os.File, error) {
	base := fmt.Sprintf("%s_%s", c.prefix, c.now().Format(timeLayout))
	for n := 0; ; n++ {
		name := base + ".png"
		if n > 0 {
			name = fmt.Sprintf("%s_%d.png", base, n)
		}
		name = filepath.Join(c.dir, name)
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("creating file: %w", err)
		}
		return name, f, nil
	}
}
