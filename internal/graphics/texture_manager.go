package graphics

import (
	"image"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureUnits tracks which texture object is bound to each unit. Binding a
// new image to a unit releases the previous texture.
type TextureUnits struct {
	mu  sync.Mutex
	ids map[int]uint32
}

func NewTextureUnits() *TextureUnits {
	return &TextureUnits{ids: make(map[int]uint32)}
}

// Bind uploads img to unit, replacing whatever was bound there.
func (t *TextureUnits) Bind(unit int, img *image.RGBA) error {
	tex, err := UploadTexture(unit, img)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if old, ok := t.ids[unit]; ok {
		gl.DeleteTextures(1, &old)
	}
	t.ids[unit] = tex
	return nil
}

// Bound reports whether unit has a texture.
func (t *TextureUnits) Bound(unit int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ids[unit]
	return ok
}

// Dispose deletes every texture.
func (t *TextureUnits) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for unit, id := range t.ids {
		gl.DeleteTextures(1, &id)
		delete(t.ids, unit)
	}
}
