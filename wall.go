package wadmesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WallPart names the texture slot a wall quad is drawn with.
type WallPart int

const (
	WallMiddle WallPart = iota
	WallUpper
	WallLower
)

func (p WallPart) String() string {
	switch p {
	case WallUpper:
		return "upper"
	case WallLower:
		return "lower"
	default:
		return "middle"
	}
}

// Both sides of a line lay out positions in line order; the back side mirrors the winding.
var (
	frontQuadIndices = []uint32{0, 1, 2, 0, 2, 3}
	backQuadIndices  = []uint32{0, 2, 1, 0, 3, 2}
)

// wallSide is one present side of a line with everything needed to build its quads.
type wallSide struct {
	lineNum  int
	back     bool
	side     *Sidedef
	sector   *Sector
	opposite *Sector // nil on one-sided lines
}

// LineWalls builds the wall quads for both sides of line lineNum. A side with no sidedef, or
// whose sidedef or sector index is out of range, produces nothing. One-sided lines get a full
// height middle quad; two-sided lines get lower and upper risers where the neighbour's floor
// is higher or its ceiling lower.
func (l *Level) LineWalls(lineNum int) []*Mesh {
	line := &l.Lines[lineNum]
	v1, v2, ok := l.LineVertexes(line)
	if !ok {
		logger.Printf("Line %v: vertex out of range", lineNum)
		return nil
	}

	var meshes []*Mesh
	for _, back := range []bool{false, true} {
		sideNum, otherNum := line.Front, line.Back
		if back {
			sideNum, otherNum = line.Back, line.Front
		}
		side, sector := l.Side(sideNum), l.SideSector(sideNum)
		if side == nil || sector == nil {
			continue
		}
		ws := wallSide{
			lineNum:  lineNum,
			back:     back,
			side:     side,
			sector:   sector,
			opposite: l.SideSector(otherNum),
		}
		meshes = append(meshes, ws.quads(v1, v2)...)
	}
	return meshes
}

func (ws *wallSide) quads(v1, v2 Vertex) []*Mesh {
	floor, ceiling := int(ws.sector.FloorHeight), int(ws.sector.CeilingHeight)
	if ws.opposite == nil {
		if ceiling <= floor {
			return nil
		}
		return []*Mesh{ws.quad(v1, v2, floor, ceiling, WallMiddle, ws.side.MiddleTextureName)}
	}

	// Masked middle textures on two-sided lines are not drawn
	var meshes []*Mesh
	oppFloor, oppCeiling := int(ws.opposite.FloorHeight), int(ws.opposite.CeilingHeight)
	if floor < oppFloor {
		meshes = append(meshes, ws.quad(v1, v2, floor, max(floor, oppFloor), WallLower, ws.side.LowerTextureName))
	}
	if ceiling > oppCeiling {
		meshes = append(meshes, ws.quad(v1, v2, min(ceiling, oppCeiling), ceiling, WallUpper, ws.side.UpperTextureName))
	}
	return meshes
}

// quad spans the full line between bottom and top. U runs along the line and V down from the
// top, both in texture repeats offset by the sidedef's texture offsets.
func (ws *wallSide) quad(v1, v2 Vertex, bottom, top int, part WallPart, texture string) *Mesh {
	if texture == NoTexture {
		texture = ""
	}
	sideName := "front"
	indices := frontQuadIndices
	if ws.back {
		sideName = "back"
		indices = backQuadIndices
	}

	dx, dy := float64(v2.X)-float64(v1.X), float64(v2.Y)-float64(v1.Y)
	u0 := texCoord(ws.side.XOffset)
	u1 := u0 + texCoord(math.Hypot(dx, dy))
	vTop := texCoord(ws.side.YOffset)
	vBottom := vTop + texCoord(top-bottom)

	x1, y1 := float32(v1.X), float32(v1.Y)
	x2, y2 := float32(v2.X), float32(v2.Y)
	return &Mesh{
		Name:    fmt.Sprintf("line%d_%s_%s", ws.lineNum, sideName, part),
		Texture: texture,
		Light:   lightLevel(ws.sector),
		Positions: []mgl32.Vec3{
			{x1, y1, float32(bottom)},
			{x2, y2, float32(bottom)},
			{x2, y2, float32(top)},
			{x1, y1, float32(top)},
		},
		UVs: []mgl32.Vec2{
			{u0, vBottom},
			{u1, vBottom},
			{u1, vTop},
			{u0, vTop},
		},
		Indices: append([]uint32(nil), indices...),
	}
}
