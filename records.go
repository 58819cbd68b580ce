package wadmesh

import "encoding/binary"

// RecordKind identifies one of the fixed-size level records.
type RecordKind int

const (
	RecordVertex RecordKind = iota
	RecordLinedef
	RecordSidedef
	RecordSector
)

// recordSizes gives the on-disk byte size of each level record.
var recordSizes = [...]int{
	RecordVertex:  4,  // two int16
	RecordLinedef: 14, // seven uint16
	RecordSidedef: 30, // two int16, three names, one uint16
	RecordSector:  26, // two int16, two names, three int16
}

// Size returns the on-disk size of one record of this kind.
func (k RecordKind) Size() int {
	return recordSizes[k]
}

// NoSide marks an absent side on a linedef.
const NoSide = 0xFFFF

// NoTexture is the name stored in an unused sidedef texture slot.
const NoTexture = "-"

type Vertex struct {
	X, Y int16
}

type Linedef struct {
	V1, V2  uint16
	Flags   uint16
	Special uint16
	Tag     uint16
	Front   uint16
	Back    uint16
}

type Sidedef struct {
	XOffset           int16
	YOffset           int16
	UpperTextureName  string
	LowerTextureName  string
	MiddleTextureName string
	Sector            uint16
}

type Sector struct {
	FloorHeight        int16
	CeilingHeight      int16
	FloorTextureName   string
	CeilingTextureName string
	LightLevel         int16
	Type               int16
	Tag                int16
}

// WallHeight is the distance from floor to ceiling.
func (s *Sector) WallHeight() int {
	return int(s.CeilingHeight) - int(s.FloorHeight)
}

var le = binary.LittleEndian

func decodeVertex(b []byte) Vertex {
	return Vertex{X: int16(le.Uint16(b[0:])), Y: int16(le.Uint16(b[2:]))}
}

func decodeLinedef(b []byte) Linedef {
	return Linedef{
		V1:      le.Uint16(b[0:]),
		V2:      le.Uint16(b[2:]),
		Flags:   le.Uint16(b[4:]),
		Special: le.Uint16(b[6:]),
		Tag:     le.Uint16(b[8:]),
		Front:   le.Uint16(b[10:]),
		Back:    le.Uint16(b[12:]),
	}
}

func decodeSidedef(b []byte) Sidedef {
	return Sidedef{
		XOffset:           int16(le.Uint16(b[0:])),
		YOffset:           int16(le.Uint16(b[2:])),
		UpperTextureName:  name8(b[4:12]),
		LowerTextureName:  name8(b[12:20]),
		MiddleTextureName: name8(b[20:28]),
		Sector:            le.Uint16(b[28:]),
	}
}

func decodeSector(b []byte) Sector {
	return Sector{
		FloorHeight:        int16(le.Uint16(b[0:])),
		CeilingHeight:      int16(le.Uint16(b[2:])),
		FloorTextureName:   name8(b[4:12]),
		CeilingTextureName: name8(b[12:20]),
		LightLevel:         int16(le.Uint16(b[20:])),
		Type:               int16(le.Uint16(b[22:])),
		Tag:                int16(le.Uint16(b[24:])),
	}
}

// DecodeVertexes decodes a VERTEXES lump.
func DecodeVertexes(lump []byte) []Vertex {
	return DecodeRecords(lump, RecordVertex.Size(), decodeVertex)
}

// DecodeLinedefs decodes a LINEDEFS lump.
func DecodeLinedefs(lump []byte) []Linedef {
	return DecodeRecords(lump, RecordLinedef.Size(), decodeLinedef)
}

// DecodeSidedefs decodes a SIDEDEFS lump.
func DecodeSidedefs(lump []byte) []Sidedef {
	return DecodeRecords(lump, RecordSidedef.Size(), decodeSidedef)
}

// DecodeSectors decodes a SECTORS lump.
func DecodeSectors(lump []byte) []Sector {
	return DecodeRecords(lump, RecordSector.Size(), decodeSector)
}
