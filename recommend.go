package recgo

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/recgo/model"
	"github.com/hupe1980/recgo/score"
	"github.com/hupe1980/recgo/topk"
)

// RecommendForAll computes the exact top k destinations for every source
// entity. Results are grouped per source id in source input order; a source
// with fewer than k scorable destinations gets exactly that many items.
//
// Every source block is scored against every destination block; source
// blocks run concurrently up to the configured parallelism. Each block-pair
// contribution enters the per-source-block merge exactly once, and the
// merge is order-independent, so scheduling does not affect the result.
func (m *Model) RecommendForAll(ctx context.Context, k int) ([]model.Recommendations, error) {
	start := time.Now()

	var pairs atomic.Int64
	out, err := m.recommendForAll(ctx, k, &pairs)

	m.opts.metrics.RecordRecommendForAll(k, int(pairs.Load()), time.Since(start), err)
	m.opts.logger.LogRecommendForAll(ctx, k, len(out), err)

	return out, err
}

func (m *Model) recommendForAll(ctx context.Context, k int, pairs *atomic.Int64) ([]model.Recommendations, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	log := m.opts.logger.WithK(k)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.parallelism)

	perBlock := make([][]model.Recommendations, len(m.srcBlocks))
	var done atomic.Int64

	for bi, sb := range m.srcBlocks {
		g.Go(func() error {
			// Fold all destination contributions for this source block.
			// Merge is the seq and comb operation of the reduction; nil is
			// the identity, so the first partial is taken verbatim.
			var acc *topk.Partial
			for _, db := range m.dstBlocks {
				if err := gctx.Err(); err != nil {
					return err
				}

				scores, err := score.Pairwise(sb, db)
				if err != nil {
					return translateError(err)
				}

				acc = topk.Merge(acc, topk.Select(scores, db.IDs(), k), k)
				pairs.Add(1)
			}

			perBlock[bi] = topk.Expand(acc, sb.IDs())

			n := done.Add(1)
			m.progress.Do(func() {
				log.DebugContext(gctx, "scoring progress",
					"source_blocks_done", n,
					"source_blocks_total", len(m.srcBlocks),
					"block_pairs", pairs.Load(),
				)
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.Recommendations, 0, m.SourceCount())
	for _, recs := range perBlock {
		out = append(out, recs...)
	}
	return out, nil
}

// Recommend computes the exact top k destinations for one source entity,
// looked up by id. It fails with ErrNotFound if the id is absent from the
// source features.
func (m *Model) Recommend(ctx context.Context, sourceID model.ID, k int) ([]model.Recommendation, error) {
	start := time.Now()

	out, err := m.recommend(ctx, sourceID, k)

	m.opts.metrics.RecordRecommend(k, time.Since(start), err)
	m.opts.logger.LogRecommend(ctx, k, len(out), err)

	return out, err
}

func (m *Model) recommend(ctx context.Context, sourceID model.ID, k int) ([]model.Recommendation, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	loc, ok := m.srcIndex[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: source %d", ErrNotFound, sourceID)
	}

	query := m.srcBlocks[loc.block].VectorAt(loc.col)
	return m.recommendVector(ctx, query, k)
}

// RecommendVector computes the exact top k destinations for a caller
// supplied query vector of the model's rank.
func (m *Model) RecommendVector(ctx context.Context, query model.Vector, k int) ([]model.Recommendation, error) {
	start := time.Now()

	var out []model.Recommendation
	err := func() error {
		if k <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidK, k)
		}
		if len(query) != m.rank {
			return &ErrDimensionMismatch{Expected: m.rank, Actual: len(query)}
		}

		var err error
		out, err = m.recommendVector(ctx, query, k)
		return err
	}()

	m.opts.metrics.RecordRecommend(k, time.Since(start), err)
	m.opts.logger.LogRecommend(ctx, k, len(out), err)

	return out, err
}

// recommendVector streams every destination through one bounded selector.
// Ties between equal scores are broken arbitrarily by the selector.
func (m *Model) recommendVector(ctx context.Context, query model.Vector, k int) ([]model.Recommendation, error) {
	sel := topk.NewSelector(k)

	for _, db := range m.dstBlocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scores, err := score.Against(query, db)
		if err != nil {
			return nil, translateError(err)
		}

		ids := db.IDs()
		for c, s := range scores {
			sel.Insert(ids[c], s)
		}
	}

	return sel.Result(), nil
}
