package recgo

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/recgo/block"
	"github.com/hupe1980/recgo/model"
)

// Model holds one side of blockified source features and one side of
// blockified destination features sharing a common rank. A Model is
// immutable after construction and safe for concurrent use.
type Model struct {
	rank      int
	srcBlocks []*block.Block
	dstBlocks []*block.Block

	// srcIndex locates a source vector by id for the single-entity path.
	// With duplicate ids (undefined behavior) the last occurrence wins.
	srcIndex map[model.ID]location

	opts     options
	progress rate.Sometimes
}

type location struct {
	block int
	col   int
}

// New blockifies both feature sides eagerly and returns a ready Model.
//
// Vectors are consumed in input order; each side is partitioned into blocks
// of the configured block size. A vector whose length differs from rank
// fails with *ErrDimensionMismatch. With WithIDValidation, duplicate ids
// within a side fail with block.ErrDuplicateID.
func New(rank int, source, destination iter.Seq[model.FeatureVector], opts ...Option) (*Model, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger.WithRank(rank)

	srcBlocks, err := block.Blockify(rank, o.blockSize, source)
	log.LogBlockify(context.Background(), "source", block.Count(srcBlocks), len(srcBlocks), err)
	if err != nil {
		return nil, translateError(err)
	}
	dstBlocks, err := block.Blockify(rank, o.blockSize, destination)
	log.LogBlockify(context.Background(), "destination", block.Count(dstBlocks), len(dstBlocks), err)
	if err != nil {
		return nil, translateError(err)
	}

	if o.validateIDs {
		if err := block.CheckUniqueIDs(srcBlocks); err != nil {
			return nil, err
		}
		if err := block.CheckUniqueIDs(dstBlocks); err != nil {
			return nil, err
		}
	}

	srcIndex := make(map[model.ID]location, block.Count(srcBlocks))
	for bi, b := range srcBlocks {
		for ci, id := range b.IDs() {
			srcIndex[id] = location{block: bi, col: ci}
		}
	}

	// Distinct counts need a full scan, so gate them on the log level.
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.DebugContext(context.Background(), "model constructed",
			"source_vectors", block.Count(srcBlocks),
			"source_distinct_ids", block.DistinctIDs(srcBlocks),
			"destination_vectors", block.Count(dstBlocks),
			"destination_distinct_ids", block.DistinctIDs(dstBlocks),
		)
	}

	return &Model{
		rank:      rank,
		srcBlocks: srcBlocks,
		dstBlocks: dstBlocks,
		srcIndex:  srcIndex,
		opts:      o,
		progress:  rate.Sometimes{Interval: time.Second},
	}, nil
}

// Rank returns the feature vector dimensionality.
func (m *Model) Rank() int { return m.rank }

// SourceCount returns the number of source entities.
func (m *Model) SourceCount() int { return block.Count(m.srcBlocks) }

// DestinationCount returns the number of destination entities.
func (m *Model) DestinationCount() int { return block.Count(m.dstBlocks) }

// SourceVectors iterates the source features in block order.
// Vectors are copied out of the block storage.
func (m *Model) SourceVectors() iter.Seq[model.FeatureVector] {
	return vectors(m.srcBlocks)
}

// DestinationVectors iterates the destination features in block order.
// Vectors are copied out of the block storage.
func (m *Model) DestinationVectors() iter.Seq[model.FeatureVector] {
	return vectors(m.dstBlocks)
}

func vectors(blocks []*block.Block) iter.Seq[model.FeatureVector] {
	return func(yield func(model.FeatureVector) bool) {
		for _, b := range blocks {
			for i, id := range b.IDs() {
				if !yield(model.FeatureVector{ID: id, Vector: b.VectorAt(i)}) {
					return
				}
			}
		}
	}
}
