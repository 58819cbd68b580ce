package wadmesh

import (
	"image"
	"strings"
)

const (
	PatchNamesLumpName = "PNAMES"
	FlatWidth          = 64
	FlatHeight         = 64
	flatSize           = FlatWidth * FlatHeight

	textureHeaderSize    = 22
	patchPlacementSize   = 10
	textureDirectoryUnit = 4
)

// textureLumpNames are the composite texture directories, read in this order. A name defined
// in both keeps the later definition.
var textureLumpNames = []string{"TEXTURE1", "TEXTURE2"}

// Flat lumps sit between a start and an end marker. PWADs mix the F_ and FF_ spellings.
var (
	flatStartMarkers = map[string]bool{"F_START": true, "FF_START": true}
	flatEndMarkers   = map[string]bool{"F_END": true, "FF_END": true}
)

// TextureDef is one composite texture descriptor from a TEXTUREn lump.
type TextureDef struct {
	Name          string
	Masked        bool
	Width, Height int
	Patches       []PatchPlacement // List of component patches, drawn in order
}

// PatchPlacement positions a patch, via its PNAMES index, relative to the upper-left of the
// texture.
type PatchPlacement struct {
	OriginX, OriginY int
	PatchIndex       int
}

// TextureContext is the read-only state shared by every texture and flat build of one archive.
type TextureContext struct {
	Palette    *Palette
	PatchNames []string
	Pictures   map[string]*Picture // decoded patches, keyed by PNAMES entry
}

// NewTextureContext reads the palette and patch table and decodes every patch they reference.
// It must complete before any compositing starts.
func NewTextureContext(w *WAD) *TextureContext {
	ctx := &TextureContext{
		Palette:    ReadPalette(w),
		PatchNames: ReadPatchNames(w),
	}
	ctx.Pictures = readPatchPics(w, ctx.PatchNames)
	return ctx
}

// ReadPatchNames reads the PNAMES lump to populate a slice of patch names. A missing lump
// yields an empty table.
func ReadPatchNames(w *WAD) []string {
	logger.Printf("Loading patch names ...")
	lump, ok := w.Lump(PatchNamesLumpName)
	if !ok || len(lump) < 4 {
		logger.Println("PNAMES not found")
		return []string{}
	}

	// Read PNAMES header
	count := int(int32(le.Uint32(lump)))
	if avail := (len(lump) - 4) / lumpNameSize; count > avail || count < 0 {
		logger.Printf("PNAMES truncated: %v of %v names", avail, count)
		count = max(avail, 0)
	}

	// Read and translate PNAMES body
	patchNames := make([]string, count)
	for i := range patchNames {
		off := 4 + i*lumpNameSize
		patchNames[i] = strings.ToUpper(name8(lump[off : off+lumpNameSize])) // ToUpper required for "w94_1" patch
	}
	return patchNames
}

// readPatchPics decodes each distinct patch named in PNAMES. Missing or corrupt patches are
// logged and left out.
func readPatchPics(w *WAD, patchNames []string) map[string]*Picture {
	logger.Println("Loading patch pictures ...")
	pictures := make(map[string]*Picture)
	for _, pname := range patchNames {
		if _, ok := pictures[pname]; ok {
			continue
		}
		lump, ok := w.Lump(pname)
		if !ok {
			logger.Printf("Patch %v not found", pname)
			continue
		}
		pic, err := DecodePicture(pname, lump)
		if err != nil {
			logger.Printf("Err: %v", err)
			continue
		}
		pictures[pname] = pic
	}
	logger.Printf("Loaded %v patch pictures", len(pictures))
	return pictures
}

// DecodeTextureDefs decodes a TEXTUREn lump. Offsets or descriptors that fall outside the lump
// are skipped; a descriptor with a truncated placement list keeps the placements that fit.
func DecodeTextureDefs(lump []byte) []TextureDef {
	if len(lump) < textureDirectoryUnit {
		return nil
	}

	// Read header
	count := int(int32(le.Uint32(lump)))
	if avail := (len(lump) - textureDirectoryUnit) / textureDirectoryUnit; count > avail || count < 0 {
		count = max(avail, 0)
	}

	// For each offset...
	defs := make([]TextureDef, 0, count)
	for i := 0; i < count; i++ {
		offset := int(int32(le.Uint32(lump[textureDirectoryUnit*(i+1):])))
		if offset < 0 || offset+textureHeaderSize > len(lump) {
			logger.Printf("Texture %v: offset %v out of range", i, offset)
			continue
		}
		// Scale bytes at 10:12 and the obsolete column directory at 16:20 are unused
		header := lump[offset : offset+textureHeaderSize]
		def := TextureDef{
			Name:   name8(header[0:8]),
			Masked: le.Uint16(header[8:]) != 0,
			Width:  int(int16(le.Uint16(header[12:]))),
			Height: int(int16(le.Uint16(header[14:]))),
		}
		numPatches := int(int16(le.Uint16(header[20:])))
		body := lump[offset+textureHeaderSize:]
		if avail := len(body) / patchPlacementSize; numPatches > avail || numPatches < 0 {
			logger.Printf("Texture %v: %v of %v patches readable", def.Name, avail, numPatches)
			numPatches = max(avail, 0)
		}
		def.Patches = make([]PatchPlacement, numPatches)
		for pi := range def.Patches {
			p := body[pi*patchPlacementSize:]
			def.Patches[pi] = PatchPlacement{
				OriginX:    int(int16(le.Uint16(p[0:]))),
				OriginY:    int(int16(le.Uint16(p[2:]))),
				PatchIndex: int(int16(le.Uint16(p[4:]))),
			}
		}
		defs = append(defs, def)
	}
	return defs
}

// ReadTextureDefs reads every texture descriptor from TEXTURE1 and TEXTURE2.
func ReadTextureDefs(w *WAD) []TextureDef {
	var defs []TextureDef
	for _, name := range textureLumpNames {
		lump, ok := w.Lump(name)
		if !ok {
			continue
		}
		logger.Printf("Loading %v ...", name)
		defs = append(defs, DecodeTextureDefs(lump)...)
	}
	return defs
}

// Composite layers the texture's patches into a new RGBA image. Unresolvable placements are
// skipped and pixels outside the texture are dropped. A texture with no usable patches or a
// non-positive size becomes the placeholder.
func (c *TextureContext) Composite(def TextureDef) *image.RGBA {
	if def.Width <= 0 || def.Height <= 0 {
		logger.Printf("Texture %v: bad size %vx%v, using placeholder", def.Name, def.Width, def.Height)
		return PlaceholderTexture()
	}

	img := image.NewRGBA(image.Rect(0, 0, def.Width, def.Height))
	applied := 0
	for _, p := range def.Patches {
		if p.PatchIndex < 0 || p.PatchIndex >= len(c.PatchNames) {
			logger.Printf("Texture %v: patch index %v out of range", def.Name, p.PatchIndex)
			continue
		}
		pic, ok := c.Pictures[c.PatchNames[p.PatchIndex]]
		if !ok {
			continue
		}
		c.drawPicture(img, pic, p.OriginX, p.OriginY)
		applied++
	}
	if applied == 0 {
		logger.Printf("Texture %v: no patches applied, using placeholder", def.Name)
		return PlaceholderTexture()
	}
	return img
}

// drawPicture blits pic's posts into img with its top-left corner at (originX, originY).
func (c *TextureContext) drawPicture(img *image.RGBA, pic *Picture, originX, originY int) {
	bounds := img.Bounds()
	for x, column := range pic.Columns {
		dx := originX + x
		if dx < bounds.Min.X || dx >= bounds.Max.X {
			continue
		}
		for _, post := range column {
			for row, index := range post.Pixels {
				dy := originY + post.TopDelta + row
				if dy < bounds.Min.Y || dy >= bounds.Max.Y {
					continue
				}
				img.SetRGBA(dx, dy, c.Palette.RGBA(index))
			}
		}
	}
}

// Flat maps a raw 64x64 grid of palette indices to an RGB image. Data of any other size
// becomes the placeholder.
func (c *TextureContext) Flat(name string, data []byte) *RGBImage {
	if len(data) != flatSize {
		logger.Printf("Flat %v: %v bytes, using placeholder", name, len(data))
		return PlaceholderFlat()
	}
	img := NewRGBImage(image.Rect(0, 0, FlatWidth, FlatHeight))
	for i, b := range data {
		img.SetRGB(i%FlatWidth, i/FlatWidth, c.Palette[b])
	}
	return img
}

// BuildTextures composites every texture defined in the archive, in parallel by texture.
func BuildTextures(w *WAD, ctx *TextureContext, workers int) map[string]*image.RGBA {
	logger.Println("Loading textures ...")
	defs := ReadTextureDefs(w)
	images := make([]*image.RGBA, len(defs))
	forEach(len(defs), workers, func(i int) {
		images[i] = ctx.Composite(defs[i])
	})

	textures := make(map[string]*image.RGBA, len(defs))
	for i, def := range defs {
		textures[def.Name] = images[i]
	}
	logger.Printf("Loaded %v textures", len(textures))
	return textures
}

// flatLump is a flat found between markers.
type flatLump struct {
	name string
	data []byte
}

// findFlats returns the lumps between flat markers in directory order, skipping zero-size
// markers.
func findFlats(w *WAD) []flatLump {
	var flats []flatLump
	inFlats := false
	for i := range w.lumpInfos {
		lumpInfo, data, _ := w.LumpAt(i)
		switch {
		case flatStartMarkers[lumpInfo.Name]:
			inFlats = true
		case flatEndMarkers[lumpInfo.Name]:
			inFlats = false
		case inFlats && lumpInfo.Size > 0:
			flats = append(flats, flatLump{lumpInfo.Name, data})
		}
	}
	return flats
}

// BuildFlats converts every flat in the archive, in parallel by flat.
func BuildFlats(w *WAD, ctx *TextureContext, workers int) map[string]*RGBImage {
	logger.Println("Loading flats ...")
	lumps := findFlats(w)
	images := make([]*RGBImage, len(lumps))
	forEach(len(lumps), workers, func(i int) {
		images[i] = ctx.Flat(lumps[i].name, lumps[i].data)
	})

	flats := make(map[string]*RGBImage, len(lumps))
	for i, f := range lumps {
		flats[f.name] = images[i]
	}
	logger.Printf("Loaded %v flats", len(flats))
	return flats
}
