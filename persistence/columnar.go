package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/recgo/model"
)

// Compression selects the codec for feature file data sections.
type Compression int

const (
	// CompressionNone stores feature records uncompressed.
	CompressionNone Compression = iota
	// CompressionZstd compresses with zstd (good ratio, fast decode).
	CompressionZstd
	// CompressionLZ4 compresses with lz4 (fastest, lighter ratio).
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

func compressionFromName(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, fmt.Errorf("persistence: unknown compression %q", name)
	}
}

func (c Compression) flag() uint32 {
	switch c {
	case CompressionZstd:
		return FlagZstd
	case CompressionLZ4:
		return FlagLZ4
	default:
		return 0
	}
}

// recordSize is the encoded size of one feature record.
func recordSize(rank int) int {
	return 4 + 8*rank
}

// encodeFeatures encodes one side's feature vectors as a complete columnar
// file image (header + data section). The data section is buffered so the
// header can carry sizes and checksum up front; feature files are written
// once and never appended to.
func encodeFeatures(rank int, count int, vecs iter.Seq[model.FeatureVector], comp Compression) ([]byte, error) {
	raw := make([]byte, 0, count*recordSize(rank))

	var scratch [8]byte
	for fv := range vecs {
		binary.LittleEndian.PutUint32(scratch[:4], uint32(fv.ID))
		raw = append(raw, scratch[:4]...)
		for _, v := range fv.Vector {
			binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
			raw = append(raw, scratch[:]...)
		}
	}

	data, err := compress(raw, comp)
	if err != nil {
		return nil, err
	}

	h := FileHeader{
		Magic:    FormatMagic,
		Version:  FormatVersion,
		Flags:    comp.flag(),
		Rank:     uint32(rank),
		Count:    uint64(count),
		DataSize: uint64(len(data)),
		RawSize:  uint64(len(raw)),
		Checksum: checksum(data),
	}

	out := make([]byte, 0, HeaderSize+len(data))
	out = append(out, h.marshal()...)
	out = append(out, data...)
	return out, nil
}

// decodeFeatures decodes a columnar file image back into feature vectors.
func decodeFeatures(file []byte) (rank int, vecs []model.FeatureVector, err error) {
	h, err := unmarshalHeader(file)
	if err != nil {
		return 0, nil, err
	}
	if err := h.Validate(); err != nil {
		return 0, nil, err
	}

	if uint64(len(file)-HeaderSize) < h.DataSize {
		return 0, nil, ErrTruncated
	}
	data := file[HeaderSize : HeaderSize+int(h.DataSize)]

	if checksum(data) != h.Checksum {
		return 0, nil, ErrCorrupted
	}

	raw, err := decompress(data, h)
	if err != nil {
		return 0, nil, err
	}

	rank = int(h.Rank)
	size := recordSize(rank)
	if len(raw) != int(h.Count)*size {
		return 0, nil, ErrTruncated
	}

	vecs = make([]model.FeatureVector, h.Count)
	for i := range vecs {
		rec := raw[i*size : (i+1)*size]
		vec := make(model.Vector, rank)
		for r := 0; r < rank; r++ {
			vec[r] = math.Float64frombits(binary.LittleEndian.Uint64(rec[4+8*r:]))
		}
		vecs[i] = model.FeatureVector{
			ID:     model.ID(int32(binary.LittleEndian.Uint32(rec[:4]))),
			Vector: vec,
		}
	}

	return rank, vecs, nil
}

func compress(raw []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return raw, nil

	case CompressionZstd:
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("persistence: create zstd writer: %w", err)
		}
		if _, err := enc.Write(raw); err != nil {
			_ = enc.Close()
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(raw); err != nil {
			_ = w.Close()
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("persistence: unknown compression %d", int(comp))
	}
}

func decompress(data []byte, h FileHeader) ([]byte, error) {
	switch {
	case h.Flags&FlagZstd != 0:
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("persistence: create zstd reader: %w", err)
		}
		defer dec.Close()

		raw := make([]byte, 0, h.RawSize)
		buf := bytes.NewBuffer(raw)
		if _, err := io.Copy(buf, dec); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case h.Flags&FlagLZ4 != 0:
		r := lz4.NewReader(bytes.NewReader(data))
		raw := make([]byte, 0, h.RawSize)
		buf := bytes.NewBuffer(raw)
		if _, err := io.Copy(buf, r); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return data, nil
	}
}
