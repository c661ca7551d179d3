// Package persistence saves and loads recommendation models through any
// blobstore.BlobStore.
//
// A saved model is a small JSON manifest plus one columnar feature file per
// side, under separate subpaths:
//
//	manifest.json
//	CURRENT                     -> name of the active manifest
//	source/features.col
//	destination/features.col
//
// Feature files carry a fixed header (magic, format version, compression
// flags, rank, record count, CRC32 of the data section) followed by
// little-endian records of id plus rank float64 components, optionally
// zstd- or lz4-compressed.
//
// The scoring core neither reads nor writes storage; this package is the
// only bridge between a Model and a BlobStore.
package persistence
