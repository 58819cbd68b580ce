package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// readArchive loads a WAD file, decompressing .zst and .lz4 archives in memory.
func readArchive(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch lower := strings.ToLower(path); {
	case strings.HasSuffix(lower, ".zst"):
		decoder, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("zstd %s: %w", path, err)
		}
		defer decoder.Close()
		return readAll(path, decoder)
	case strings.HasSuffix(lower, ".lz4"):
		return readAll(path, lz4.NewReader(bytes.NewReader(data)))
	default:
		return data, nil
	}
}

func readAll(path string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return data, nil
}
