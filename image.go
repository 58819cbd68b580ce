package wadmesh

import (
	"image"
	"image/color"
)

// RGBImage is an opaque image with three bytes per pixel, used for flats.
type RGBImage struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGBImage returns a black RGB image with the given bounds.
func NewRGBImage(r image.Rectangle) *RGBImage {
	return &RGBImage{
		Pix:    make([]uint8, 3*r.Dx()*r.Dy()),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

func (p *RGBImage) ColorModel() color.Model { return color.RGBAModel }

func (p *RGBImage) Bounds() image.Rectangle { return p.Rect }

func (p *RGBImage) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

// RGBAAt returns the opaque color at (x, y).
func (p *RGBImage) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{p.Pix[i], p.Pix[i+1], p.Pix[i+2], 0xff}
}

// PixOffset returns the index of the first byte of pixel (x, y) in Pix.
func (p *RGBImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// SetRGB sets the pixel at (x, y); points outside the image are ignored.
func (p *RGBImage) SetRGB(x, y int, c RGB) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = c.Red, c.Green, c.Blue
}

// Placeholder images stand in for textures and flats that could not be built.
const PlaceholderSize = 64

// PlaceholderColor fills placeholder images.
var PlaceholderColor = RGB{0xff, 0x00, 0xff}

// PlaceholderTexture returns a new 64x64 opaque magenta RGBA image.
func PlaceholderTexture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
	c := color.RGBA{PlaceholderColor.Red, PlaceholderColor.Green, PlaceholderColor.Blue, 0xff}
	for y := 0; y < PlaceholderSize; y++ {
		for x := 0; x < PlaceholderSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// PlaceholderFlat returns a new 64x64 magenta RGB image.
func PlaceholderFlat() *RGBImage {
	img := NewRGBImage(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
	for y := 0; y < PlaceholderSize; y++ {
		for x := 0; x < PlaceholderSize; x++ {
			img.SetRGB(x, y, PlaceholderColor)
		}
	}
	return img
}
