package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
}

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestFromPixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := New(dir, "prism")
	c.now = fixedClock

	// Bottom row red, top row blue, as glReadPixels returns them.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	path, err := c.FromPixels(pixels, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prism_2026-03-04_05-06-07.png"), path)

	img := decode(t, path)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(img.At(1, 1)))
	assert.Equal(t, byte(255), pixels[0], "input left untouched")
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	c := New(t.TempDir(), "x")
	_, err := c.FromPixels(make([]byte, 7), 2, 1)
	assert.ErrorContains(t, err, "mismatch")
}

func TestSameSecondGetsCounter(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, "shot")
	c.now = fixedClock
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	first, err := c.FromImage(img)
	require.NoError(t, err)
	second, err := c.FromImage(img)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, filepath.Join(dir, "shot_2026-03-04_05-06-07_1.png"), second)
}
