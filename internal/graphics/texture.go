package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"

	"konstructs/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"neilpa.me/go-stbi"
)

// Texture is a 2D RGBA texture owned by whoever created it.
type Texture struct {
	dev    Device
	id     uint32
	Width  int
	Height int
}

// NewTexture uploads img.
func NewTexture(dev Device, img *image.RGBA) (*Texture, error) {
	id, err := dev.CreateTexture(img)
	if err != nil {
		return nil, &ResourceError{Resource: "texture", Err: err}
	}
	size := img.Rect.Size()
	return &Texture{dev: dev, id: id, Width: size.X, Height: size.Y}, nil
}

// Bind attaches the texture to a texture unit.
func (t *Texture) Bind(unit int32) {
	t.dev.BindTexture(unit, t.id)
}

func (t *Texture) Delete() {
	if t.id == 0 {
		return
	}
	t.dev.DeleteTexture(t.id)
	t.id = 0
}

// LoadAtlas reads the block atlas at path and uploads it. A missing file
// falls back to a generated checker atlas so the viewer still runs without
// assets; any other read or decode error is returned.
func LoadAtlas(dev Device, path string) (*Texture, error) {
	img, err := decodeAtlas(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Log.Info("atlas not found, using generated atlas", zap.String("path", path))
		img = CheckerAtlas(AtlasTiles, 16)
	case err != nil:
		return nil, err
	default:
		logger.Log.Info("atlas loaded", zap.String("path", path), zap.Int("width", img.Rect.Dx()), zap.Int("height", img.Rect.Dy()))
	}
	return NewTexture(dev, img)
}

func decodeAtlas(path string) (*image.RGBA, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	img, err := stbi.Load(path)
	if err != nil {
		return nil, fmt.Errorf("decode atlas %s: %w", path, err)
	}
	return NormalizeAtlas(img), nil
}

// NormalizeAtlas returns img scaled to a square power-of-two RGBA so uv
// coordinates computed against AtlasTiles stay exact.
func NormalizeAtlas(img image.Image) *image.RGBA {
	b := img.Bounds()
	side := nextPow2(max(b.Dx(), b.Dy()))
	if rgba, ok := img.(*image.RGBA); ok && b.Dx() == side && b.Dy() == side && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// AtlasTiles is the number of tiles along each side of the atlas.
const AtlasTiles = 16

// CheckerAtlas generates tiles×tiles tiles of tileSize pixels, each tile a
// two-tone checker in its own hue.
func CheckerAtlas(tiles, tileSize int) *image.RGBA {
	side := tiles * tileSize
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			base := tileColor(ty*tiles + tx)
			dark := color.RGBA{base.R / 2, base.G / 2, base.B / 2, 255}
			tile := image.Rect(tx*tileSize, ty*tileSize, (tx+1)*tileSize, (ty+1)*tileSize)
			draw.Draw(img, tile, &image.Uniform{C: base}, image.Point{}, draw.Src)
			half := tileSize / 2
			for y := 0; y < tileSize; y++ {
				for x := 0; x < tileSize; x++ {
					if (x < half) != (y < half) {
						img.SetRGBA(tile.Min.X+x, tile.Min.Y+y, dark)
					}
				}
			}
		}
	}
	return img
}

func tileColor(i int) color.RGBA {
	// spread hues with a golden-ratio step
	h := float64(i) * 0.618033988749895
	h -= float64(int(h))
	r, g, b := hueToRGB(h)
	return color.RGBA{r, g, b, 255}
}

func hueToRGB(h float64) (uint8, uint8, uint8) {
	h6 := h * 6
	x := h6 - float64(int(h6))
	lo, hi := uint8(80), uint8(230)
	mid := func(t float64) uint8 { return uint8(float64(lo) + t*float64(hi-lo)) }
	switch int(h6) % 6 {
	case 0:
		return hi, mid(x), lo
	case 1:
		return mid(1 - x), hi, lo
	case 2:
		return lo, hi, mid(x)
	case 3:
		return lo, mid(1 - x), hi
	case 4:
		return mid(x), lo, hi
	default:
		return hi, lo, mid(1 - x)
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
