package wadmesh

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	PaletteLumpName = "PLAYPAL"
	paletteColors   = 256
	paletteBytes    = paletteColors * 3
)

type RGB struct {
	Red, Green, Blue uint8
}

// Each palette in PLAYPAL contains 256 three-ubyte colors totaling 768 bytes (RGB). Only the
// first palette of the lump is used for textures.
type Palette [paletteColors]RGB

// DefaultPalette is substituted when PLAYPAL is missing or short: every index maps to white.
func DefaultPalette() *Palette {
	var p Palette
	for i := range p {
		p[i] = RGB{0xff, 0xff, 0xff}
	}
	return &p
}

// DecodePalette decodes the first 768 bytes of a PLAYPAL lump. ok is false if the lump is too
// short.
func DecodePalette(lump []byte) (p *Palette, ok bool) {
	if len(lump) < paletteBytes {
		return nil, false
	}
	p = new(Palette)
	for i := range p {
		p[i] = RGB{lump[i*3], lump[i*3+1], lump[i*3+2]}
	}
	return p, true
}

// ReadPalette reads PLAYPAL, falling back to DefaultPalette.
func ReadPalette(w *WAD) *Palette {
	logger.Println("Loading PLAYPAL ...")
	lump, ok := w.Lump(PaletteLumpName)
	if !ok {
		logger.Println("PLAYPAL not found, using default palette")
		return DefaultPalette()
	}
	p, ok := DecodePalette(lump)
	if !ok {
		logger.Printf("PLAYPAL too short (%v bytes), using default palette", len(lump))
		return DefaultPalette()
	}
	return p
}

// RGBA returns the opaque color at index i.
func (p *Palette) RGBA(i uint8) color.RGBA {
	c := p[i]
	return color.RGBA{c.Red, c.Green, c.Blue, 0xff}
}

// Normalized returns the color at index i with channels scaled to 0..1.
func (p *Palette) Normalized(i uint8) mgl32.Vec3 {
	c := p[i]
	return mgl32.Vec3{float32(c.Red) / 255, float32(c.Green) / 255, float32(c.Blue) / 255}
}
