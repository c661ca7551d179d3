package block

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/recgo/model"
)

// ErrDuplicateID is returned by CheckUniqueIDs when a key occurs more than
// once within one side of a model.
var ErrDuplicateID = errors.New("duplicate id")

// CheckUniqueIDs verifies that every id across the given blocks occurs
// exactly once. Scoring with duplicate ids within a side is undefined
// behavior, so callers that cannot guarantee uniqueness should run this as
// an eager validation pass before recommending.
func CheckUniqueIDs(blocks []*Block) error {
	seen := roaring.New()
	for _, b := range blocks {
		for _, id := range b.ids {
			if !seen.CheckedAdd(uint32(id)) {
				return fmt.Errorf("%w: %d", ErrDuplicateID, id)
			}
		}
	}
	return nil
}

// DistinctIDs returns the exact number of distinct ids across the given
// blocks. With unique ids this equals the total vector count; a smaller
// value indicates duplicates.
func DistinctIDs(blocks []*Block) uint64 {
	seen := roaring.New()
	for _, b := range blocks {
		for _, id := range b.ids {
			seen.Add(uint32(id))
		}
	}
	return seen.GetCardinality()
}

// Count returns the total number of vectors across the given blocks.
func Count(blocks []*Block) int {
	n := 0
	for _, b := range blocks {
		n += b.Len()
	}
	return n
}

// IDs returns the concatenated ids of the given blocks in block, then
// in-block order.
func IDs(blocks []*Block) []model.ID {
	ids := make([]model.ID, 0, Count(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ids...)
	}
	return ids
}
