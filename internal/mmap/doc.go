// Package mmap provides read-only memory-mapped file access.
//
// Feature files written by the persistence package can be hundreds of
// megabytes; mapping them avoids copying the whole file through kernel
// buffers just to decode it once.
//
//	m, err := mmap.Open("source/features.col")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// Unix (Linux, macOS, BSD) uses mmap(2); Windows uses
// CreateFileMapping/MapViewOfFile. Mappings are safe for concurrent
// reads; Close is idempotent, but callers must not touch Bytes() after
// Close returns.
package mmap
