package texture

import (
	"errors"
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/logger"
)

// ErrReleased is returned when a released texture is bound.
var ErrReleased = errors.New("texture released")

// Uploader stores RGBA pixels on the GPU. Rows arrive bottom first.
type Uploader interface {
	UploadTexture(img *image.RGBA) uint32
	BindTexture(unit int, id uint32)
	DeleteTexture(id uint32)
}

// Texture is a GPU texture handle.
type Texture struct {
	up       Uploader
	id       uint32
	width    int
	height   int
	released bool
}

// Load decodes the file at path and uploads it.
func Load(up Uploader, path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	img, err := Decode(data, path)
	if err != nil {
		return nil, err
	}
	t := FromImage(up, img)
	logger.Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", t.width),
		zap.Int("height", t.height))
	return t, nil
}

// FromImage uploads img. The image is flipped in place so texture
// coordinate v=0 samples its bottom row.
func FromImage(up Uploader, img *image.RGBA) *Texture {
	FlipVertical(img)
	b := img.Bounds()
	return &Texture{
		up:     up,
		id:     up.UploadTexture(img),
		width:  b.Dx(),
		height: b.Dy(),
	}
}

// ID returns the GPU handle, or 0 after Release.
func (t *Texture) ID() uint32 { return t.id }

// Size returns the pixel dimensions.
func (t *Texture) Size() (int, int) { return t.width, t.height }

// Bind attaches the texture to a texture unit.
func (t *Texture) Bind(unit int) error {
	if t.released {
		return ErrReleased
	}
	t.up.BindTexture(unit, t.id)
	return nil
}

// Release deletes the GPU texture. Further calls are no-ops.
func (t *Texture) Release() {
	if t.released {
		return
	}
	t.released = true
	t.up.DeleteTexture(t.id)
	t.id = 0
}
