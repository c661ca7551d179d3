// Package model defines core types used throughout recgo.
//
// # Identity Types
//
//   - ID: 32-bit entity key, unique within one side of a model
//
// # Data Types
//
//   - Vector: dense float64 feature vector of a model's rank
//   - FeatureVector: an (ID, Vector) pair as consumed by the blockifier
//   - Recommendation: a scored destination entity
//   - Recommendations: the final per-source result group
package model
