// Package recgo provides an exact, block-wise top-K recommendation engine.
//
// Given a "source" set and a "destination" set of equal-rank feature
// vectors, recgo computes for every source entity the K destination
// entities with the highest dot-product score. Both sides are partitioned
// into fixed-size blocks so the computation scales to sets far larger than
// a single score matrix: every source block is scored against every
// destination block by dense matrix multiplication, each block pair is
// reduced to a fixed-width per-row top-K partial, and partials for the same
// source block are merged with an associative, commutative combine.
//
// # Quick Start
//
//	m, _ := recgo.New(2,
//	    slices.Values([]model.FeatureVector{
//	        {ID: 1, Vector: model.Vector{1, 0}},
//	        {ID: 2, Vector: model.Vector{0, 1}},
//	    }),
//	    slices.Values([]model.FeatureVector{
//	        {ID: 10, Vector: model.Vector{2, 0}},
//	        {ID: 11, Vector: model.Vector{0, 3}},
//	        {ID: 12, Vector: model.Vector{1, 1}},
//	    }),
//	)
//
//	all, _ := m.RecommendForAll(ctx, 2)   // top 2 per source entity
//	one, _ := m.Recommend(ctx, 1, 2)      // top 2 for source id 1
//
// # Guarantees
//
// Top-K results are exact, never approximate. Per-result ordering is by
// score descending; tie order between equal scores is unspecified. IDs are
// assumed unique within each side — recgo does not deduplicate, and scoring
// duplicate ids is undefined behavior unless eager validation is enabled
// via WithIDValidation.
//
// # Persistence
//
// Models can be saved to and loaded from any blobstore.BlobStore (local
// filesystem, memory, S3, MinIO) via the persistence package. The scoring
// core itself never touches storage.
package recgo
