package wadmesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// TextureUnit is the number of map units covered by one texture repeat.
const TextureUnit = 64

// Mesh is an indexed triangle buffer handed to the host. Positions are map coordinates with
// Z up; UVs are in texture repeats.
type Mesh struct {
	Name      string
	Texture   string  // wall texture or flat name, "" if none
	Light     float32 // sector light level, 0..1
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three positions of triangle i.
func (m *Mesh) Triangle(i int) [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{
		m.Positions[m.Indices[i*3]],
		m.Positions[m.Indices[i*3+1]],
		m.Positions[m.Indices[i*3+2]],
	}
}

// UVExtent returns the width and height of the UV bounding box.
func (m *Mesh) UVExtent() mgl32.Vec2 {
	if len(m.UVs) == 0 {
		return mgl32.Vec2{}
	}
	lo, hi := m.UVs[0], m.UVs[0]
	for _, uv := range m.UVs[1:] {
		lo = mgl32.Vec2{min(lo.X(), uv.X()), min(lo.Y(), uv.Y())}
		hi = mgl32.Vec2{max(hi.X(), uv.X()), max(hi.Y(), uv.Y())}
	}
	return hi.Sub(lo)
}

func lightLevel(s *Sector) float32 {
	return clamp(float32(s.LightLevel)/255, 0, 1)
}

// planeMesh lays a triangulated sector polygon flat at height z. Flats tile on the world grid.
func planeMesh(name, texture string, poly []Point, tris []Triangle, z int16, light float32) *Mesh {
	m := &Mesh{
		Name:      name,
		Texture:   texture,
		Light:     light,
		Positions: make([]mgl32.Vec3, len(poly)),
		UVs:       make([]mgl32.Vec2, len(poly)),
		Indices:   make([]uint32, 0, len(tris)*3),
	}
	for i, p := range poly {
		m.Positions[i] = mgl32.Vec3{float32(p.X), float32(p.Y), float32(z)}
		m.UVs[i] = mgl32.Vec2{texCoord(p.X), texCoord(p.Y)}
	}
	for _, t := range tris {
		m.Indices = append(m.Indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return m
}

// SectorMeshes builds the floor and ceiling of a sector from its ordered boundary. The floor
// keeps the triangulation's winding and the ceiling reverses it. Both are nil if the
// boundary has fewer than three points.
func SectorMeshes(sectorNum int, sector *Sector, poly []Point) (floor, ceiling *Mesh) {
	tris := Triangulate(poly)
	if len(tris) == 0 {
		return nil, nil
	}
	light := lightLevel(sector)
	floor = planeMesh(fmt.Sprintf("sector%d_floor", sectorNum), sector.FloorTextureName,
		poly, tris, sector.FloorHeight, light)
	ceiling = planeMesh(fmt.Sprintf("sector%d_ceiling", sectorNum), sector.CeilingTextureName,
		poly, FlipWinding(tris), sector.CeilingHeight, light)
	return floor, ceiling
}
