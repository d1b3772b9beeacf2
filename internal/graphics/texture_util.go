package graphics

import (
	"errors"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var errEmptyImage = errors.New("empty texture image")

// UploadTexture creates a 2D texture on the given unit from an RGBA image
// whose rows are already bottom-up. The texture stays bound to that unit.
func UploadTexture(unit int, img *image.RGBA) (uint32, error) {
	size := img.Rect.Size()
	if size.X == 0 || size.Y == 0 || len(img.Pix) == 0 {
		return 0, errEmptyImage
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)

	return texture, nil
}
