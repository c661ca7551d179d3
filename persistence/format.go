package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

const (
	// FormatMagic identifies columnar feature files (ASCII: "RFC0").
	FormatMagic = 0x52464330

	// FormatVersion is the current feature file format version.
	FormatVersion uint32 = 1

	// HeaderSize is the size of the file header in bytes.
	HeaderSize = 48

	// FlagZstd indicates that the data section is zstd-compressed.
	FlagZstd uint32 = 1 << 0
	// FlagLZ4 indicates that the data section is lz4-compressed.
	FlagLZ4 uint32 = 1 << 1
)

var (
	// ErrInvalidMagic is returned when a file has an invalid magic number.
	ErrInvalidMagic = errors.New("persistence: invalid magic number")

	// ErrInvalidVersion is returned when a file has an unsupported version.
	ErrInvalidVersion = errors.New("persistence: unsupported format version")

	// ErrCorrupted is returned when a file fails checksum validation.
	ErrCorrupted = errors.New("persistence: file corrupted (checksum mismatch)")

	// ErrTruncated is returned when a file is shorter than its header claims.
	ErrTruncated = errors.New("persistence: file truncated")
)

// FileHeader is the 48-byte header at the start of feature files.
//
// All multi-byte fields are little-endian.
type FileHeader struct {
	Magic    uint32 // 0x52464330 ("RFC0")
	Version  uint32 // Format version (currently 1)
	Flags    uint32 // Compression flags
	Rank     uint32 // Vector dimensionality
	Count    uint64 // Number of feature records
	DataSize uint64 // Size of the (possibly compressed) data section
	RawSize  uint64 // Size of the data section after decompression
	Checksum uint32 // CRC32 (IEEE) of the data section as stored
}

// Validate checks that the header is structurally valid.
func (h *FileHeader) Validate() error {
	if h.Magic != FormatMagic {
		return ErrInvalidMagic
	}
	if h.Version > FormatVersion {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	return nil
}

// Compressed returns true if the data section is compressed.
func (h *FileHeader) Compressed() bool {
	return h.Flags&(FlagZstd|FlagLZ4) != 0
}

func (h *FileHeader) marshal() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.Flags)
	binary.LittleEndian.PutUint32(buf[12:16], h.Rank)
	binary.LittleEndian.PutUint64(buf[16:24], h.Count)
	binary.LittleEndian.PutUint64(buf[24:32], h.DataSize)
	binary.LittleEndian.PutUint64(buf[32:40], h.RawSize)
	binary.LittleEndian.PutUint32(buf[40:44], h.Checksum)
	// buf[44:48] reserved
	return buf
}

func unmarshalHeader(buf []byte) (FileHeader, error) {
	if len(buf) < HeaderSize {
		return FileHeader{}, ErrTruncated
	}
	return FileHeader{
		Magic:    binary.LittleEndian.Uint32(buf[0:4]),
		Version:  binary.LittleEndian.Uint32(buf[4:8]),
		Flags:    binary.LittleEndian.Uint32(buf[8:12]),
		Rank:     binary.LittleEndian.Uint32(buf[12:16]),
		Count:    binary.LittleEndian.Uint64(buf[16:24]),
		DataSize: binary.LittleEndian.Uint64(buf[24:32]),
		RawSize:  binary.LittleEndian.Uint64(buf[32:40]),
		Checksum: binary.LittleEndian.Uint32(buf[40:44]),
	}, nil
}

func checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
