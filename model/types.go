package model

import (
	"fmt"
)

// ID is the user-facing entity key for both sources and destinations.
// IDs are expected to be unique within a side; recgo does not deduplicate.
type ID int32

// Vector is a dense feature vector. Every vector in a model has the same
// length (the model's rank).
type Vector []float64

// FeatureVector pairs an entity key with its feature vector.
type FeatureVector struct {
	ID     ID
	Vector Vector
}

// String returns a string representation of the FeatureVector.
func (f FeatureVector) String() string {
	return fmt.Sprintf("FeatureVector(%d, rank=%d)", f.ID, len(f.Vector))
}

// Recommendation is a single scored destination entity.
type Recommendation struct {
	// ID is the destination entity key.
	ID ID
	// Score is the dot product of the source and destination vectors.
	Score float64
}

// Recommendations groups the top-scoring destinations for one source entity.
// Items are sorted by Score descending. Items may be empty (a source with no
// scorable destinations), never nil-padded.
type Recommendations struct {
	SourceID ID
	Items    []Recommendation
}
