package wadmesh

import (
	"errors"
	"fmt"
)

// The doom picture (image) format. Sometimes called a patch, but this code considers a
// placement to be the part of a texture that points to a picture.
type Picture struct {
	Name                  string // Useful for debugging
	Width, Height         int
	LeftOffset, TopOffset int // Allows soulspheres, weapons and keys to float
	Columns               []Column
}

// Column is the list of posts drawn in one picture column, top to bottom.
type Column []Post

// A post is a vertical run of palette indices starting TopDelta pixels below the top.
type Post struct {
	TopDelta int
	Pixels   []byte
}

const (
	pictureHeaderSize = 8
	postTerminator    = 0xff
)

var errPictureTruncated = errors.New("truncated picture")

// DecodePicture decodes a patch lump. Post pixel slices alias the lump.
func DecodePicture(name string, lump []byte) (*Picture, error) {
	// Read patch lump header
	if len(lump) < pictureHeaderSize {
		return nil, fmt.Errorf("%v: %w header", name, errPictureTruncated)
	}
	pic := &Picture{
		Name:       name,
		Width:      int(le.Uint16(lump[0:])),
		Height:     int(le.Uint16(lump[2:])),
		LeftOffset: int(int16(le.Uint16(lump[4:]))),
		TopOffset:  int(int16(le.Uint16(lump[6:]))),
	}

	// Read column offsets
	if len(lump) < pictureHeaderSize+pic.Width*4 {
		return nil, fmt.Errorf("%v: %w column offsets", name, errPictureTruncated)
	}
	pic.Columns = make([]Column, pic.Width)

	// For each column offset, collect its posts
	for x := range pic.Columns {
		offset := int(le.Uint32(lump[pictureHeaderSize+x*4:]))
		column, err := decodeColumn(lump, offset)
		if err != nil {
			return nil, fmt.Errorf("%v column %v: %w", name, x, err)
		}
		pic.Columns[x] = column
	}
	return pic, nil
}

// decodeColumn reads posts from offset until the 0xFF terminator.
func decodeColumn(lump []byte, offset int) (Column, error) {
	var column Column
	for {
		if offset < 0 || offset >= len(lump) {
			return nil, errPictureTruncated
		}
		topDelta := int(lump[offset])
		offset += 1
		if topDelta == postTerminator {
			return column, nil
		}
		if offset+2 > len(lump) {
			return nil, errPictureTruncated
		}
		numPixels := int(lump[offset])
		offset += 1
		offset += 1 // Padding
		if offset+numPixels+1 > len(lump) {
			return nil, errPictureTruncated
		}
		column = append(column, Post{TopDelta: topDelta, Pixels: lump[offset : offset+numPixels]})
		offset += numPixels
		offset += 1 // Padding
	}
}
