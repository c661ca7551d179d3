// Package minio provides a MinIO implementation of the blobstore.BlobStore
// interface for self-hosted S3-compatible storage.
//
//	client, _ := minio.New("localhost:9000", &minio.Options{...})
//	store := miniostore.NewStore(client, "models", "reco/")
package minio
