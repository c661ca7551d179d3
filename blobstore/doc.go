// Package blobstore abstracts the storage targets a recommendation model
// can be saved to and loaded from.
//
// The scoring core never touches storage; only the persistence package
// talks to a BlobStore. Implementations exist for the local filesystem
// (mmap-backed reads), memory (tests), S3 and MinIO.
package blobstore
