package wadmesh

import (
	"errors"
	"fmt"
	"sort"
)

// ErrLevelNotFound is returned by ReadLevel for an unknown map marker.
var ErrLevelNotFound = errors.New("level not found")

// Level holds the geometry records of one map.
type Level struct {
	Name     string
	Vertexes []Vertex
	Lines    []Linedef
	Sides    []Sidedef
	Sectors  []Sector
}

// levelLumps are the lump names that may follow a map marker, in any order.
var levelLumps = map[string]bool{
	"THINGS":   true,
	"LINEDEFS": true,
	"SIDEDEFS": true,
	"VERTEXES": true,
	"SEGS":     true,
	"SSECTORS": true,
	"NODES":    true,
	"SECTORS":  true,
	"REJECT":   true,
	"BLOCKMAP": true,
	"BEHAVIOR": true,
}

// isLevelMarker reports whether the lump at position i starts a map block.
func (w *WAD) isLevelMarker(i int) bool {
	if i+1 >= len(w.lumpInfos) || levelLumps[w.lumpInfos[i].Name] {
		return false
	}
	next := w.lumpInfos[i+1].Name
	return next == "THINGS" || next == "LINEDEFS"
}

// LevelNames returns a slice of level names found in the WAD archive.
func (w *WAD) LevelNames() []string {
	result := make([]string, 0)
	seen := make(map[string]bool)
	for i, li := range w.lumpInfos {
		if w.isLevelMarker(i) && !seen[li.Name] {
			seen[li.Name] = true
			result = append(result, li.Name)
		}
	}
	sort.Strings(result)
	return result
}

// ReadLevel reads the run of level lumps that follows the named map marker. Level lumps reuse
// the same names for every map, so they are resolved by position, never by name.
func (w *WAD) ReadLevel(name string) (*Level, error) {
	logger.Printf("Reading Level %v ...", name)

	levelIdx := noLevel
	for i, li := range w.lumpInfos {
		if li.Name == name && w.isLevelMarker(i) {
			levelIdx = i // last marker wins, like name lookups
		}
	}
	if levelIdx == noLevel {
		return nil, fmt.Errorf("%w: %v", ErrLevelNotFound, name)
	}

	level := &Level{Name: name}
	for i := levelIdx + 1; i < len(w.lumpInfos); i++ {
		lumpInfo, lump, _ := w.LumpAt(i)
		if !levelLumps[lumpInfo.Name] {
			break
		}
		switch lumpInfo.Name {
		case "VERTEXES":
			level.Vertexes = DecodeVertexes(lump)
		case "LINEDEFS":
			level.Lines = DecodeLinedefs(lump)
		case "SIDEDEFS":
			level.Sides = DecodeSidedefs(lump)
		case "SECTORS":
			level.Sectors = DecodeSectors(lump)
		default:
			logger.Printf("Unhandled lump %s", lumpInfo.Name)
		}
	}
	logger.Printf("Read %v vertexes, %v lines, %v sides, %v sectors",
		len(level.Vertexes), len(level.Lines), len(level.Sides), len(level.Sectors))

	return level, nil
}

const noLevel = -1

// Side returns the sidedef with the given index, or nil if the index is absent or out of range.
func (l *Level) Side(i uint16) *Sidedef {
	if i == NoSide || int(i) >= len(l.Sides) {
		return nil
	}
	return &l.Sides[i]
}

// SideSector returns the sector owning the given sidedef, or nil.
func (l *Level) SideSector(i uint16) *Sector {
	side := l.Side(i)
	if side == nil || int(side.Sector) >= len(l.Sectors) {
		return nil
	}
	return &l.Sectors[side.Sector]
}

// LineVertexes returns both endpoints of a line; ok is false if either index is out of range.
func (l *Level) LineVertexes(line *Linedef) (v1, v2 Vertex, ok bool) {
	if int(line.V1) >= len(l.Vertexes) || int(line.V2) >= len(l.Vertexes) {
		return Vertex{}, Vertex{}, false
	}
	return l.Vertexes[line.V1], l.Vertexes[line.V2], true
}

// SectorLines groups line indices by the sectors their sides reference. A line whose front
// and back both face the same sector is listed once.
func (l *Level) SectorLines() [][]int {
	lines := make([][]int, len(l.Sectors))
	for i := range l.Lines {
		line := &l.Lines[i]
		front, back := l.sideSectorNum(line.Front), l.sideSectorNum(line.Back)
		if front >= 0 {
			lines[front] = append(lines[front], i)
		}
		if back >= 0 && back != front {
			lines[back] = append(lines[back], i)
		}
	}
	return lines
}

func (l *Level) sideSectorNum(side uint16) int {
	s := l.Side(side)
	if s == nil || int(s.Sector) >= len(l.Sectors) {
		return -1
	}
	return int(s.Sector)
}
