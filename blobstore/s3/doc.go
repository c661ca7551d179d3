// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	client, err := s3.NewDefaultClient(ctx)
//	store := s3.NewStore(client, "my-bucket", "models/reco/")
//
//	err = persistence.Save(ctx, m, store)
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Streaming multipart uploads for large feature files
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Optional DynamoDB commit store for atomic model publication
package s3
