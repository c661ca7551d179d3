// Package block groups partitioned feature vectors into fixed-capacity
// blocks, each materialized as one dense matrix for efficient bulk scoring.
package block

import (
	"errors"
	"fmt"
	"iter"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/recgo/model"
)

// DefaultBlockSize is the default number of vectors per block. It trades
// per-block memory against the fan-out of the pairwise block cross product.
const DefaultBlockSize = 2000

var (
	// ErrInvalidBlockSize is returned when blockSize is not positive.
	ErrInvalidBlockSize = errors.New("block size must be positive")

	// ErrInvalidRank is returned when rank is not positive.
	ErrInvalidRank = errors.New("rank must be positive")
)

// ErrDimensionMismatch indicates a vector whose length differs from the rank.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// Block is an immutable grouping of up to blockSize feature vectors.
// Column i of the matrix holds the vector of IDs()[i]; the matrix is
// rank x Len(). Blocks are safe for concurrent use once built.
type Block struct {
	ids  []model.ID
	data *mat.Dense // rank x len(ids)
	rank int
}

// Len returns the number of vectors in the block.
func (b *Block) Len() int { return len(b.ids) }

// Rank returns the vector dimensionality.
func (b *Block) Rank() int { return b.rank }

// IDs returns the block's entity keys in input order.
// The returned slice is owned by the block and must not be mutated.
func (b *Block) IDs() []model.ID { return b.ids }

// Matrix returns the rank x Len() feature matrix.
// The returned matrix is owned by the block and must not be mutated.
func (b *Block) Matrix() *mat.Dense { return b.data }

// VectorAt returns a copy of the i-th vector.
func (b *Block) VectorAt(i int) model.Vector {
	v := make(model.Vector, b.rank)
	for r := 0; r < b.rank; r++ {
		v[r] = b.data.At(r, i)
	}
	return v
}

// String returns a string representation of the Block.
func (b *Block) String() string {
	return fmt.Sprintf("Block(rank=%d, len=%d)", b.rank, len(b.ids))
}

// Blockify consumes feature vectors in input order and groups consecutive
// runs of up to blockSize entries into immutable blocks. The relative order
// of ids is preserved; the last block may be shorter than blockSize.
//
// Duplicate ids are not detected here; see CheckUniqueIDs.
func Blockify(rank, blockSize int, vecs iter.Seq[model.FeatureVector]) ([]*Block, error) {
	if rank <= 0 {
		return nil, ErrInvalidRank
	}
	if blockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}

	var blocks []*Block

	b := newBuilder(rank, blockSize)
	for fv := range vecs {
		if len(fv.Vector) != rank {
			return nil, &ErrDimensionMismatch{Expected: rank, Actual: len(fv.Vector)}
		}
		b.append(fv)
		if b.full() {
			blocks = append(blocks, b.build())
		}
	}
	if b.len() > 0 {
		blocks = append(blocks, b.build())
	}

	return blocks, nil
}

// builder accumulates vectors for one block. The backing storage is bulk
// allocated per block and handed off to the immutable Block on build, so a
// partially-built block is never visible to other goroutines.
type builder struct {
	rank      int
	blockSize int
	ids       []model.ID
	cols      []model.Vector
}

func newBuilder(rank, blockSize int) *builder {
	return &builder{
		rank:      rank,
		blockSize: blockSize,
		ids:       make([]model.ID, 0, blockSize),
		cols:      make([]model.Vector, 0, blockSize),
	}
}

func (b *builder) append(fv model.FeatureVector) {
	b.ids = append(b.ids, fv.ID)
	b.cols = append(b.cols, fv.Vector)
}

func (b *builder) len() int { return len(b.ids) }

func (b *builder) full() bool { return len(b.ids) == b.blockSize }

// build materializes the accumulated vectors as a rank x n column-per-vector
// matrix and resets the builder for the next block.
func (b *builder) build() *Block {
	n := len(b.ids)

	backing := make([]float64, b.rank*n)
	for i, col := range b.cols {
		for r := 0; r < b.rank; r++ {
			backing[r*n+i] = col[r]
		}
	}

	ids := make([]model.ID, n)
	copy(ids, b.ids)

	blk := &Block{
		ids:  ids,
		data: mat.NewDense(b.rank, n, backing),
		rank: b.rank,
	}

	b.ids = b.ids[:0]
	b.cols = b.cols[:0]

	return blk
}
