package wadmesh

import (
	"encoding/binary"
	"testing"
)

// testLump is one directory entry for buildWAD.
type testLump struct {
	name string
	data []byte
}

// buildWAD lays out a PWAD: header, lump data in order, then the directory.
func buildWAD(lumps ...testLump) []byte {
	buf := make([]byte, headerSize)
	copy(buf, magicPWAD)
	offsets := make([]int, len(lumps))
	for i, l := range lumps {
		offsets[i] = len(buf)
		buf = append(buf, l.data...)
	}
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(lumps)))
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(buf)))
	for i, l := range lumps {
		entry := make([]byte, lumpInfoSize)
		binary.LittleEndian.PutUint32(entry[0:], uint32(offsets[i]))
		binary.LittleEndian.PutUint32(entry[4:], uint32(len(l.data)))
		name := NewString8(l.name)
		copy(entry[8:], name[:])
		buf = append(buf, entry...)
	}
	return buf
}

func mustWAD(t testing.TB, lumps ...testLump) *WAD {
	t.Helper()
	w, err := New(buildWAD(lumps...))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func put16(b []byte, v int) []byte {
	return binary.LittleEndian.AppendUint16(b, uint16(v))
}

func put32(b []byte, v int) []byte {
	return binary.LittleEndian.AppendUint32(b, uint32(v))
}

func putName(b []byte, name string) []byte {
	s := NewString8(name)
	return append(b, s[:]...)
}

func vertexesLump(points ...Point) []byte {
	var b []byte
	for _, p := range points {
		b = put16(b, p.X)
		b = put16(b, p.Y)
	}
	return b
}

func linedefsLump(lines ...Linedef) []byte {
	var b []byte
	for _, l := range lines {
		for _, v := range []uint16{l.V1, l.V2, l.Flags, l.Special, l.Tag, l.Front, l.Back} {
			b = put16(b, int(v))
		}
	}
	return b
}

func sidedefsLump(sides ...Sidedef) []byte {
	var b []byte
	for _, s := range sides {
		b = put16(b, int(s.XOffset))
		b = put16(b, int(s.YOffset))
		b = putName(b, s.UpperTextureName)
		b = putName(b, s.LowerTextureName)
		b = putName(b, s.MiddleTextureName)
		b = put16(b, int(s.Sector))
	}
	return b
}

func sectorsLump(sectors ...Sector) []byte {
	var b []byte
	for _, s := range sectors {
		b = put16(b, int(s.FloorHeight))
		b = put16(b, int(s.CeilingHeight))
		b = putName(b, s.FloorTextureName)
		b = putName(b, s.CeilingTextureName)
		b = put16(b, int(s.LightLevel))
		b = put16(b, int(s.Type))
		b = put16(b, int(s.Tag))
	}
	return b
}

// paletteLump returns a PLAYPAL whose index i is (i, 255-i, 0), with overrides applied.
func paletteLump(overrides map[int]RGB) []byte {
	b := make([]byte, paletteBytes)
	for i := 0; i < paletteColors; i++ {
		c := RGB{uint8(i), uint8(255 - i), 0}
		if o, ok := overrides[i]; ok {
			c = o
		}
		b[i*3], b[i*3+1], b[i*3+2] = c.Red, c.Green, c.Blue
	}
	return b
}

func pnamesLump(names ...string) []byte {
	b := put32(nil, len(names))
	for _, n := range names {
		b = putName(b, n)
	}
	return b
}

// testPost is one post of a patch column.
type testPost struct {
	top    int
	pixels []byte
}

// patchLump encodes a patch with the given columns of posts.
func patchLump(width, height int, columns [][]testPost) []byte {
	b := put16(nil, width)
	b = put16(b, height)
	b = put16(b, 0)
	b = put16(b, 0)
	offsetsAt := len(b)
	b = append(b, make([]byte, 4*width)...)
	for x := 0; x < width; x++ {
		binary.LittleEndian.PutUint32(b[offsetsAt+4*x:], uint32(len(b)))
		if x < len(columns) {
			for _, p := range columns[x] {
				b = append(b, byte(p.top), byte(len(p.pixels)), 0)
				b = append(b, p.pixels...)
				b = append(b, 0)
			}
		}
		b = append(b, postTerminator)
	}
	return b
}

// solidPatch is a width x height patch filled with one palette index.
func solidPatch(width, height int, index byte) []byte {
	columns := make([][]testPost, width)
	for x := range columns {
		pixels := make([]byte, height)
		for y := range pixels {
			pixels[y] = index
		}
		columns[x] = []testPost{{0, pixels}}
	}
	return patchLump(width, height, columns)
}

// textureLump encodes a TEXTUREn directory.
func textureLump(defs ...TextureDef) []byte {
	var bodies [][]byte
	for _, d := range defs {
		b := putName(nil, d.Name)
		b = put16(b, 0) // flags
		b = append(b, 0, 0)
		b = put16(b, d.Width)
		b = put16(b, d.Height)
		b = put32(b, 0)
		b = put16(b, len(d.Patches))
		for _, p := range d.Patches {
			b = put16(b, p.OriginX)
			b = put16(b, p.OriginY)
			b = put16(b, p.PatchIndex)
			b = put16(b, 1)
			b = put16(b, 0)
		}
		bodies = append(bodies, b)
	}
	b := put32(nil, len(defs))
	offset := 4 + 4*len(defs)
	for _, body := range bodies {
		b = put32(b, offset)
		offset += len(body)
	}
	for _, body := range bodies {
		b = append(b, body...)
	}
	return b
}

// squareMap is a map marker plus the lumps of a single 128x128 sector.
func squareMap(marker string, floor, ceiling int16) []testLump {
	return []testLump{
		{marker, nil},
		{"THINGS", nil},
		{"LINEDEFS", linedefsLump(
			Linedef{V1: 0, V2: 1, Front: 0, Back: NoSide},
			Linedef{V1: 1, V2: 2, Front: 1, Back: NoSide},
			Linedef{V1: 2, V2: 3, Front: 2, Back: NoSide},
			Linedef{V1: 3, V2: 0, Front: 3, Back: NoSide},
		)},
		{"SIDEDEFS", sidedefsLump(
			Sidedef{UpperTextureName: "-", LowerTextureName: "-", MiddleTextureName: "WALL", Sector: 0},
			Sidedef{UpperTextureName: "-", LowerTextureName: "-", MiddleTextureName: "WALL", Sector: 0},
			Sidedef{UpperTextureName: "-", LowerTextureName: "-", MiddleTextureName: "WALL", Sector: 0},
			Sidedef{UpperTextureName: "-", LowerTextureName: "-", MiddleTextureName: "WALL", Sector: 0},
		)},
		{"VERTEXES", vertexesLump(Point{0, 0}, Point{0, 128}, Point{128, 128}, Point{128, 0})},
		{"SECTORS", sectorsLump(Sector{
			FloorHeight: floor, CeilingHeight: ceiling,
			FloorTextureName: "FLOOR", CeilingTextureName: "CEIL", LightLevel: 160,
		})},
	}
}
