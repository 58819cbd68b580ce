package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"github.com/stuarthighley/wadmesh"
)

// encoders maps an output format to its file extension and encoder.
var encoders = map[string]struct {
	ext    string
	encode func(io.Writer, image.Image) error
}{
	"png": {".png", png.Encode},
	"tga": {".tga", tga.Encode},
	"bmp": {".bmp", bmp.Encode},
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatalln(err)
	}
	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg Config) error {
	log.Println("Starting")

	// Set WAD logger
	if cfg.Verbose {
		wadmesh.SetLogger(log.New(os.Stderr, "", log.LstdFlags))
	}

	data, err := readArchive(cfg.WAD)
	if err != nil {
		return err
	}
	w, err := wadmesh.New(data)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.WAD, err)
	}

	if cfg.List {
		for i, name := range w.LumpNames() {
			fmt.Println("Lump:", i, name)
		}
		for _, name := range w.LevelNames() {
			fmt.Println("Level:", name)
		}
		return nil
	}

	im := wadmesh.NewImport(w, wadmesh.Options{Workers: cfg.Workers})

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}
	textures := im.Textures()
	for name, img := range textures {
		if err := writeImage(cfg, "textures", name, img); err != nil {
			return err
		}
	}
	flats := im.Flats()
	for name, img := range flats {
		if err := writeImage(cfg, "flats", name, img); err != nil {
			return err
		}
	}
	fmt.Printf("Wrote %v textures and %v flats to %v\n", len(textures), len(flats), cfg.OutDir)

	levels := cfg.Levels
	if len(levels) == 0 {
		levels = w.LevelNames()
	}
	for _, name := range levels {
		g, err := im.Level(name)
		if err != nil {
			return err
		}
		printLevel(name, g)
	}
	return nil
}

// writeImage encodes img to <out>/<kind>/<name><ext>.
func writeImage(cfg Config, kind, name string, img image.Image) error {
	enc := encoders[cfg.Format]
	dir := filepath.Join(cfg.OutDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, name+enc.ext))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := enc.encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}

func printLevel(name string, g *wadmesh.LevelGeometry) {
	triangles := func(meshes []*wadmesh.Mesh) int {
		n := 0
		for _, m := range meshes {
			n += m.TriangleCount()
		}
		return n
	}
	missing := 0
	for _, p := range g.Polygons {
		if p == nil {
			missing++
		}
	}
	fmt.Printf("Level %v: %v sectors (%v without boundary), %v floor tris, %v ceiling tris, %v wall quads\n",
		name, len(g.Polygons), missing, triangles(g.Floors), triangles(g.Ceilings), len(g.Walls))

	textures := make(map[string]int)
	for _, m := range g.Walls {
		textures[m.Texture]++
	}
	names := make([]string, 0, len(textures))
	for t := range textures {
		names = append(names, t)
	}
	sort.Strings(names)
	for _, t := range names {
		fmt.Printf("  %-8s %v\n", t, textures[t])
	}
}
