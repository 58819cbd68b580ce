// Package wadmesh rebuilds level geometry and wall/flat images from Doom's data
// archives, also known as WAD files, for handing over to a rendering host.
// The file format is documented in The Unofficial DOOM Specs:
// http://www.gamers.org/dhs/helpdocs/dmsp1666.html

package wadmesh

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// WAD is an in-memory Doom data archive. The data is organized as named lumps, addressed
// both by name (last entry wins) and by position in the directory (every entry kept).
type WAD struct {
	header    Header
	data      []byte
	lumpInfos []LumpInfo
	lumpNums  map[string]int
}

type Header struct {
	Magic        string
	NumLumps     int
	InfoTableOfs int
}

type LumpInfo struct {
	Name    string
	Filepos int
	Size    int
}

const (
	headerSize   = 12
	lumpInfoSize = 16
	lumpNameSize = 8
	magicIWAD    = "IWAD"
	magicPWAD    = "PWAD"
)

// ErrBadHeader is returned when the archive header cannot be decoded.
var ErrBadHeader = errors.New("bad WAD header")

// WAD eight-character string type. Null-terminated for short strings.
type String8 [8]byte

// String converts String8 to string
func (s String8) String() string {
	i := bytes.IndexByte(s[:], 0)
	if i == -1 {
		i = len(s)
	}
	return string(s[0:i])
}

// NewString8 pads or truncates a name to the on-disk eight byte form.
func NewString8(name string) String8 {
	var s String8
	copy(s[:], name)
	return s
}

// name8 reads an eight byte name field starting at b[0].
func name8(b []byte) string {
	var s String8
	copy(s[:], b)
	return s.String()
}

// Open reads a WAD file from disk.
func Open(filename string) (*WAD, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return New(data)
}

// New parses the header and lump directory of an archive held in memory. The header is the
// only part that must decode; everything else degrades to empty results.
func New(data []byte) (*WAD, error) {
	logger.Println("Start reading WAD")

	// Read header
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadHeader, len(data))
	}
	magic := string(data[0:4])
	if magic != magicIWAD && magic != magicPWAD {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadHeader, magic)
	}
	numLumps := int(int32(binary.LittleEndian.Uint32(data[4:8])))
	infoTableOfs := int(int32(binary.LittleEndian.Uint32(data[8:12])))
	if numLumps < 0 || infoTableOfs < 0 {
		return nil, fmt.Errorf("%w: lumps %d, directory at %d", ErrBadHeader, numLumps, infoTableOfs)
	}

	w := &WAD{
		header: Header{Magic: magic, NumLumps: numLumps, InfoTableOfs: infoTableOfs},
		data:   data,
	}
	w.readInfoTables()
	return w, nil
}

// readInfoTables builds both directory indexes. Entries past the end of the buffer are dropped.
func (w *WAD) readInfoTables() {
	count := w.header.NumLumps
	if count > 0 {
		avail := (len(w.data) - w.header.InfoTableOfs) / lumpInfoSize
		if avail < 0 {
			avail = 0
		}
		if avail < count {
			logger.Printf("Directory truncated: %v of %v entries readable", avail, count)
			count = avail
		}
	}

	lumpNums := make(map[string]int, count)
	lumpInfos := make([]LumpInfo, count)
	for i := 0; i < count; i++ {
		entry := w.data[w.header.InfoTableOfs+i*lumpInfoSize:]
		lumpInfo := LumpInfo{
			Filepos: int(int32(binary.LittleEndian.Uint32(entry[0:4]))),
			Size:    int(int32(binary.LittleEndian.Uint32(entry[4:8]))),
			Name:    name8(entry[8 : 8+lumpNameSize]),
		}
		lumpNums[lumpInfo.Name] = i
		lumpInfos[i] = lumpInfo
	}
	w.lumpNums = lumpNums
	w.lumpInfos = lumpInfos
	logger.Printf("Read %v lump entries", len(lumpInfos))
}

// Header returns the decoded archive header.
func (w *WAD) Header() Header {
	return w.header
}

// NumLumps is the number of directory entries that could be read.
func (w *WAD) NumLumps() int {
	return len(w.lumpInfos)
}

// LumpNames returns every lump name in directory order, duplicates included.
func (w *WAD) LumpNames() []string {
	names := make([]string, len(w.lumpInfos))
	for i, li := range w.lumpInfos {
		names[i] = li.Name
	}
	return names
}

// LumpNum returns the directory position of the last lump with the given name.
func (w *WAD) LumpNum(name string) (int, bool) {
	i, ok := w.lumpNums[name]
	return i, ok
}

// Lump returns the bytes of the last lump with the given name.
func (w *WAD) Lump(name string) ([]byte, bool) {
	i, ok := w.lumpNums[name]
	if !ok {
		return nil, false
	}
	return w.readLump(&w.lumpInfos[i]), true
}

// LumpAt returns the directory entry and bytes at position i.
func (w *WAD) LumpAt(i int) (LumpInfo, []byte, bool) {
	if i < 0 || i >= len(w.lumpInfos) {
		return LumpInfo{}, nil, false
	}
	li := w.lumpInfos[i]
	return li, w.readLump(&li), true
}

// readLump slices a lump out of the archive, clipped to the buffer.
func (w *WAD) readLump(lumpInfo *LumpInfo) []byte {
	start, end := lumpInfo.Filepos, lumpInfo.Filepos+lumpInfo.Size
	if lumpInfo.Size <= 0 || start < 0 || start >= len(w.data) {
		return nil
	}
	if end > len(w.data) {
		logger.Printf("Lump %v truncated: %v of %v bytes", lumpInfo.Name, len(w.data)-start, lumpInfo.Size)
		end = len(w.data)
	}
	return w.data[start:end:end]
}

// DecodeRecords splits data into fixed-size records and decodes each one. A trailing partial
// record is ignored.
func DecodeRecords[T any](data []byte, size int, decode func([]byte) T) []T {
	if size <= 0 {
		return nil
	}
	count := len(data) / size
	records := make([]T, count)
	for i := range records {
		records[i] = decode(data[i*size : (i+1)*size])
	}
	return records
}

// ReadRecords decodes the last lump called name as an array of fixed-size records.
func ReadRecords[T any](w *WAD, name string, size int, decode func([]byte) T) ([]T, bool) {
	lump, ok := w.Lump(name)
	if !ok {
		return nil, false
	}
	return DecodeRecords(lump, size, decode), true
}
