package texture

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
)

// BuiltinPrefix marks texture names generated in memory instead of read
// from the asset directory.
const BuiltinPrefix = "builtin:"

var builtins = map[string]func() *image.RGBA{
	"checker": func() *image.RGBA {
		return Checker(256, 32, color.RGBA{230, 230, 230, 255}, color.RGBA{40, 40, 40, 255})
	},
	"white": func() *image.RGBA {
		return Checker(1, 1, color.RGBA{255, 255, 255, 255}, color.RGBA{255, 255, 255, 255})
	},
}

// Cache loads each texture name once and releases them together.
type Cache struct {
	up       Uploader
	dir      string
	textures map[string]*Texture
}

// NewCache resolves relative names against dir.
func NewCache(up Uploader, dir string) *Cache {
	return &Cache{up: up, dir: dir, textures: make(map[string]*Texture)}
}

// Get returns the texture for name, loading it on first use. Names with
// BuiltinPrefix select a generated image.
func (c *Cache) Get(name string) (*Texture, error) {
	if t, ok := c.textures[name]; ok {
		return t, nil
	}
	var t *Texture
	if b, ok := strings.CutPrefix(name, BuiltinPrefix); ok {
		gen, known := builtins[b]
		if !known {
			return nil, fmt.Errorf("unknown builtin texture %q", b)
		}
		t = FromImage(c.up, gen())
	} else {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.dir, name)
		}
		var err error
		if t, err = Load(c.up, path); err != nil {
			return nil, err
		}
	}
	c.textures[name] = t
	return t, nil
}

// Len returns the number of loaded textures.
func (c *Cache) Len() int { return len(c.textures) }

// Release deletes every loaded texture and empties the cache.
func (c *Cache) Release() {
	for name, t := range c.textures {
		t.Release()
		delete(c.textures, name)
	}
}
