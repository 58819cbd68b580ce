package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseArgs(t *testing.T) {
	configPath := writeFile(t, "wadmesh.yaml", `
wad: doom.wad
levels: [E1M1, E1M2]
out: export
format: tga
workers: 3
`)

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			args: []string{"doom2.wad"},
			want: Config{WAD: "doom2.wad", OutDir: "out", Format: "png"},
		},
		{
			name: "flags",
			args: []string{"-l", "MAP01", "--level", "MAP02", "-o", "dir", "-f", "bmp", "-j", "2", "-v", "doom2.wad"},
			want: Config{WAD: "doom2.wad", Levels: []string{"MAP01", "MAP02"}, OutDir: "dir", Format: "bmp", Workers: 2, Verbose: true},
		},
		{
			name: "config file",
			args: []string{"-c", configPath},
			want: Config{WAD: "doom.wad", Levels: []string{"E1M1", "E1M2"}, OutDir: "export", Format: "tga", Workers: 3},
		},
		{
			name: "flags override config file",
			args: []string{"--config", configPath, "--format", "png", "--list", "other.wad"},
			want: Config{WAD: "other.wad", Levels: []string{"E1M1", "E1M2"}, OutDir: "export", Format: "png", Workers: 3, List: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("config = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no wad", nil},
		{"bad format", []string{"-f", "gif", "doom.wad"}},
		{"unknown flag", []string{"--frobnicate", "doom.wad"}},
		{"missing config", []string{"-c", filepath.Join(t.TempDir(), "nope.yaml"), "doom.wad"}},
		{"bad config", []string{"-c", writeFile(t, "bad.yaml", "workers: [1"), "doom.wad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseArgs(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
