// Package score computes dot-product scores between feature vectors and
// between whole blocks of feature vectors.
package score

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/recgo/block"
	"github.com/hupe1980/recgo/model"
)

// Dot returns the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b model.Vector) float64 {
	return floats.Dot(a, b)
}

// Pairwise computes the full score matrix for one block pair:
// transpose(src.Matrix()) x dst.Matrix(). Entry (i, k) is the dot product of
// source vector i and destination vector k.
//
// Pairwise is pure; the result is freshly allocated on every call.
func Pairwise(src, dst *block.Block) (*mat.Dense, error) {
	if src.Rank() != dst.Rank() {
		return nil, &block.ErrDimensionMismatch{Expected: src.Rank(), Actual: dst.Rank()}
	}

	var scores mat.Dense
	scores.Mul(src.Matrix().T(), dst.Matrix())

	return &scores, nil
}

// Against scores a single query vector against every column of a block.
// The result has one score per block entry, in block order.
func Against(query model.Vector, b *block.Block) ([]float64, error) {
	if len(query) != b.Rank() {
		return nil, &block.ErrDimensionMismatch{Expected: b.Rank(), Actual: len(query)}
	}

	q := mat.NewVecDense(len(query), query)
	var scores mat.VecDense
	scores.MulVec(b.Matrix().T(), q)

	return scores.RawVector().Data, nil
}
