package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config controls an export run. A YAML file supplies defaults; flags override it.
type Config struct {
	WAD     string   `yaml:"wad"`
	Levels  []string `yaml:"levels"`
	OutDir  string   `yaml:"out"`
	Format  string   `yaml:"format"`
	Workers int      `yaml:"workers"`
	Verbose bool     `yaml:"verbose"`
	List    bool     `yaml:"list"`
}

func defaultConfig() Config {
	return Config{
		OutDir: "out",
		Format: "png",
	}
}

// loadConfig decodes a YAML config file over the defaults.
func loadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// parseArgs builds the run configuration from the command line.
func parseArgs(args []string) (Config, error) {
	cfg := defaultConfig()
	fs := pflag.NewFlagSet("wadmesh", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "YAML config file")
	levels := fs.StringSliceP("level", "l", nil, "level to build (repeatable, default all)")
	outDir := fs.StringP("out", "o", cfg.OutDir, "output directory for images")
	format := fs.StringP("format", "f", cfg.Format, "image format: png, tga or bmp")
	workers := fs.IntP("workers", "j", 0, "worker goroutines (0 = GOMAXPROCS)")
	verbose := fs.BoolP("verbose", "v", false, "log progress to stderr")
	list := fs.Bool("list", false, "list lumps and levels, then exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wadmesh [flags] file.wad[.zst|.lz4]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	if fs.NArg() > 0 {
		cfg.WAD = fs.Arg(0)
	}
	if fs.Changed("level") {
		cfg.Levels = *levels
	}
	if fs.Changed("out") {
		cfg.OutDir = *outDir
	}
	if fs.Changed("format") {
		cfg.Format = *format
	}
	if fs.Changed("workers") {
		cfg.Workers = *workers
	}
	if fs.Changed("verbose") {
		cfg.Verbose = *verbose
	}
	if fs.Changed("list") {
		cfg.List = *list
	}

	if cfg.WAD == "" {
		fs.Usage()
		return cfg, fmt.Errorf("no WAD file given")
	}
	if _, ok := encoders[cfg.Format]; !ok {
		return cfg, fmt.Errorf("unknown image format %q", cfg.Format)
	}
	return cfg, nil
}
