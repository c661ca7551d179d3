package topk

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/recgo/model"
)

// Sentinel marks an unfilled top-K slot. Any real score compares strictly
// greater, so a row's first sentinel is its true cutoff.
var Sentinel = math.Inf(-1)

// Partial is a fixed-width top-K result for the rows of one source block.
// Row r occupies ids[r*k : (r+1)*k] and scores[r*k : (r+1)*k]; scores are
// sorted descending within each row and trailing unfilled slots carry
// Sentinel with an undefined id.
//
// A Partial is immutable once returned from Select or Merge.
type Partial struct {
	rows int
	k    int

	ids    []model.ID
	scores []float64
}

func newPartial(rows, k int) *Partial {
	scores := make([]float64, rows*k)
	for i := range scores {
		scores[i] = Sentinel
	}
	return &Partial{
		rows:   rows,
		k:      k,
		ids:    make([]model.ID, rows*k),
		scores: scores,
	}
}

// Rows returns the number of source rows covered by the partial.
func (p *Partial) Rows() int { return p.rows }

// K returns the fixed row width.
func (p *Partial) K() int { return p.k }

// Row returns the ids and scores of row r, including sentinel padding.
// The returned slices are owned by the partial and must not be mutated.
func (p *Partial) Row(r int) ([]model.ID, []float64) {
	return p.ids[r*p.k : (r+1)*p.k], p.scores[r*p.k : (r+1)*p.k]
}

// Select reduces the score matrix of one block pair to a fixed-width top-K
// partial. For each source row the K highest-scoring destination entries are
// retained; rows with fewer than K candidates keep trailing sentinels.
// K larger than the destination block is legal.
func Select(scores *mat.Dense, dstIDs []model.ID, k int) *Partial {
	rows, cols := scores.Dims()

	p := newPartial(rows, k)

	sel := NewSelector(k)
	for r := 0; r < rows; r++ {
		sel.Clear()
		row := scores.RawRowView(r)
		for c := 0; c < cols; c++ {
			sel.Insert(dstIDs[c], row[c])
		}

		// Drain smallest first, filling the row from the back so it ends
		// up descending. Slots before the fill point keep their sentinel.
		i := r*k + sel.Len() - 1
		for sel.Len() > 0 {
			p.ids[i], p.scores[i] = sel.PollMin()
			i--
		}
	}

	return p
}
