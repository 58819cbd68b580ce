package wadmesh

import (
	"image"
	"sync"
)

// Options tunes an import pass.
type Options struct {
	// Workers bounds the goroutines used per build step. Zero or less means GOMAXPROCS.
	Workers int
}

// Import is one pass over one archive. Images and level geometry are built on first request
// and cached for the life of the Import; it is safe for concurrent use.
type Import struct {
	wad  *WAD
	opts Options

	ctxOnce sync.Once
	ctx     *TextureContext

	texturesOnce sync.Once
	textures     map[string]*image.RGBA

	flatsOnce sync.Once
	flats     map[string]*RGBImage

	mu     sync.Mutex
	levels map[string]*LevelGeometry
}

// NewImport starts an import pass over w.
func NewImport(w *WAD, opts Options) *Import {
	return &Import{
		wad:    w,
		opts:   opts,
		levels: make(map[string]*LevelGeometry),
	}
}

// WAD returns the archive being imported.
func (im *Import) WAD() *WAD {
	return im.wad
}

// Context returns the shared palette and patch table, reading them on first use.
func (im *Import) Context() *TextureContext {
	im.ctxOnce.Do(func() {
		im.ctx = NewTextureContext(im.wad)
	})
	return im.ctx
}

// Textures returns every composite wall texture keyed by name.
func (im *Import) Textures() map[string]*image.RGBA {
	im.texturesOnce.Do(func() {
		im.textures = BuildTextures(im.wad, im.Context(), im.opts.Workers)
	})
	return im.textures
}

// Flats returns every flat keyed by name.
func (im *Import) Flats() map[string]*RGBImage {
	im.flatsOnce.Do(func() {
		im.flats = BuildFlats(im.wad, im.Context(), im.opts.Workers)
	})
	return im.flats
}

// Level reads and builds the geometry of the named map, once per Import.
func (im *Import) Level(name string) (*LevelGeometry, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if g, ok := im.levels[name]; ok {
		return g, nil
	}
	level, err := im.wad.ReadLevel(name)
	if err != nil {
		return nil, err
	}
	g := BuildLevelGeometry(level, im.opts.Workers)
	im.levels[name] = g
	return g, nil
}

// LevelGeometry is the mesh output for one map.
type LevelGeometry struct {
	Level    *Level
	Polygons [][]Point // ordered boundary per sector index, nil if none could be built
	Floors   []*Mesh
	Ceilings []*Mesh
	Walls    []*Mesh
}

// BuildLevelGeometry reconstructs every sector's floor and ceiling and every line's walls.
// Sectors and lines are processed in parallel; output order follows sector and line indices.
func BuildLevelGeometry(level *Level, workers int) *LevelGeometry {
	logger.Printf("Building geometry for %v ...", level.Name)
	g := &LevelGeometry{
		Level:    level,
		Polygons: make([][]Point, len(level.Sectors)),
	}

	sectorLines := level.SectorLines()
	floors := make([]*Mesh, len(level.Sectors))
	ceilings := make([]*Mesh, len(level.Sectors))
	forEach(len(level.Sectors), workers, func(i int) {
		poly := OrderBoundary(level.SectorSegments(sectorLines[i]))
		if poly == nil {
			logger.Printf("Sector %v: no boundary polygon", i)
			return
		}
		g.Polygons[i] = poly
		floors[i], ceilings[i] = SectorMeshes(i, &level.Sectors[i], poly)
	})

	walls := make([][]*Mesh, len(level.Lines))
	forEach(len(level.Lines), workers, func(i int) {
		walls[i] = level.LineWalls(i)
	})

	for i := range floors {
		if floors[i] != nil {
			g.Floors = append(g.Floors, floors[i])
			g.Ceilings = append(g.Ceilings, ceilings[i])
		}
	}
	for _, w := range walls {
		g.Walls = append(g.Walls, w...)
	}
	logger.Printf("Built %v floors, %v ceilings, %v walls", len(g.Floors), len(g.Ceilings), len(g.Walls))
	return g
}
