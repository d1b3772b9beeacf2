package textures

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DecodeFile reads and decodes the image at path. See Decode.
func DecodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode decodes a PNG, JPEG, BMP or WebP image into RGBA with the first
// row at the bottom, the order GL expects for texture uploads.
func Decode(r io.Reader) (*image.RGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	FlipVertical(rgba)
	return rgba, nil
}

// FlipVertical mirrors img top to bottom in place.
func FlipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := img.Bounds().Dx() * 4
	tmp := make([]byte, row)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+row]
		bot := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+row]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}
