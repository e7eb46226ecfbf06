package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// flagColor marks pixels whose value cannot be displayed (NaN, Inf or negative)
var flagColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Image is a linear-radiance framebuffer. Row 0 is the top of the picture.
type Image struct {
	width, height int
	pixels        []core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the image width in pixels
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels
func (img *Image) Height() int { return img.height }

// At returns the linear color stored at (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.pixels[y*img.width+x]
}

// Set stores a linear color at (x, y). Distinct pixels may be written
// concurrently.
func (img *Image) Set(x, y int, c core.Vec3) {
	img.pixels[y*img.width+x] = c
}

// ToSRGB applies the sRGB transfer curve to a linear channel value
func ToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

// ToRGBA converts the framebuffer to 8-bit sRGB. Every channel is scaled by
// bias before conversion. Pixels that are non-finite or negative are painted
// magenta instead of being clamped, and counted in the returned value.
func (img *Image) ToRGBA(bias float64) (*image.RGBA, int) {
	out := image.NewRGBA(image.Rect(0, 0, img.width, img.height))
	flagged := 0

	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			c := img.At(x, y).Multiply(bias)
			if !c.IsFinite() || c.IsNegative() {
				out.SetRGBA(x, y, flagColor)
				flagged++
				continue
			}
			out.SetRGBA(x, y, color.RGBA{
				R: toByte(c.X),
				G: toByte(c.Y),
				B: toByte(c.Z),
				A: 255,
			})
		}
	}
	return out, flagged
}

func toByte(c float64) uint8 {
	v := math.Max(0, math.Min(1, ToSRGB(c)))
	return uint8(math.Round(255 * v))
}

// WritePNG encodes the image as PNG
func (img *Image) WritePNG(w io.Writer, bias float64) error {
	rgba, _ := img.ToRGBA(bias)
	return png.Encode(w, rgba)
}

// SavePNG writes the image to a PNG file at path
func (img *Image) SavePNG(path string, bias float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := img.WritePNG(file, bias); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// bounds returns the full pixel rectangle of the image
func (img *Image) bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}
