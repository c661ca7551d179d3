package recgo

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/block"
	"github.com/hupe1980/recgo/model"
	"github.com/hupe1980/recgo/score"
)

func testSources() []model.FeatureVector {
	return []model.FeatureVector{
		{ID: 1, Vector: model.Vector{1, 0}},
		{ID: 2, Vector: model.Vector{0, 1}},
	}
}

func testDestinations() []model.FeatureVector {
	return []model.FeatureVector{
		{ID: 10, Vector: model.Vector{2, 0}},
		{ID: 11, Vector: model.Vector{0, 3}},
		{ID: 12, Vector: model.Vector{1, 1}},
	}
}

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()

	m, err := New(2, slices.Values(testSources()), slices.Values(testDestinations()), opts...)
	require.NoError(t, err)

	return m
}

func TestNew(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, 2, m.Rank())
	assert.Equal(t, 2, m.SourceCount())
	assert.Equal(t, 3, m.DestinationCount())
}

func TestNewErrors(t *testing.T) {
	t.Run("InvalidRank", func(t *testing.T) {
		_, err := New(0, slices.Values(testSources()), slices.Values(testDestinations()))
		assert.ErrorIs(t, err, block.ErrInvalidRank)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		bad := []model.FeatureVector{{ID: 1, Vector: model.Vector{1, 2, 3}}}

		_, err := New(2, slices.Values(bad), slices.Values(testDestinations()))

		dimErr := new(ErrDimensionMismatch)
		require.ErrorAs(t, err, &dimErr)
		assert.Equal(t, 2, dimErr.Expected)
		assert.Equal(t, 3, dimErr.Actual)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		dup := append(testSources(), model.FeatureVector{ID: 1, Vector: model.Vector{5, 5}})

		_, err := New(2, slices.Values(dup), slices.Values(testDestinations()), WithIDValidation())
		assert.ErrorIs(t, err, block.ErrDuplicateID)
	})

	t.Run("DuplicateIDWithoutValidation", func(t *testing.T) {
		dup := append(testSources(), model.FeatureVector{ID: 1, Vector: model.Vector{5, 5}})

		_, err := New(2, slices.Values(dup), slices.Values(testDestinations()))
		assert.NoError(t, err)
	})
}

func TestRecommendForAll(t *testing.T) {
	m := newTestModel(t)

	got, err := m.RecommendForAll(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, model.ID(1), got[0].SourceID)
	assert.Equal(t, []model.Recommendation{{ID: 10, Score: 2}, {ID: 12, Score: 1}}, got[0].Items)

	assert.Equal(t, model.ID(2), got[1].SourceID)
	assert.Equal(t, []model.Recommendation{{ID: 11, Score: 3}, {ID: 12, Score: 1}}, got[1].Items)
}

func TestRecommendForAllKExceedsDestinations(t *testing.T) {
	m := newTestModel(t)

	got, err := m.RecommendForAll(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for _, recs := range got {
		assert.Len(t, recs.Items, 3)
	}
}

func TestRecommendForAllEmptyDestinations(t *testing.T) {
	m, err := New(2, slices.Values(testSources()), slices.Values([]model.FeatureVector{}))
	require.NoError(t, err)

	got, err := m.RecommendForAll(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for _, recs := range got {
		assert.Empty(t, recs.Items)
	}
}

func TestRecommendForAllInvalidK(t *testing.T) {
	m := newTestModel(t)

	_, err := m.RecommendForAll(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = m.RecommendForAll(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestRecommendForAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newTestModel(t, WithBlockSize(1))

	_, err := m.RecommendForAll(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

// synthetic generates deterministic, effectively tie-free feature vectors.
func synthetic(n, rank, seed int) []model.FeatureVector {
	vecs := make([]model.FeatureVector, n)
	for i := range vecs {
		v := make(model.Vector, rank)
		for r := range v {
			v[r] = math.Sin(float64((seed+i)*rank + r + 1))
		}
		vecs[i] = model.FeatureVector{ID: model.ID(seed + i), Vector: v}
	}
	return vecs
}

// Block partitioning is an implementation detail: any block size must give
// results identical to the brute-force score-and-sort answer.
func TestRecommendForAllMatchesBruteForce(t *testing.T) {
	const (
		rank = 4
		k    = 5
	)

	srcVecs := synthetic(17, rank, 100)
	dstVecs := synthetic(43, rank, 1000)

	expected := make(map[model.ID][]model.Recommendation, len(srcVecs))
	for _, sv := range srcVecs {
		items := make([]model.Recommendation, 0, len(dstVecs))
		for _, dv := range dstVecs {
			items = append(items, model.Recommendation{ID: dv.ID, Score: score.Dot(sv.Vector, dv.Vector)})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Score > items[j].Score })
		expected[sv.ID] = items[:k]
	}

	for _, blockSize := range []int{1, 3, 7, 43, 1000} {
		m, err := New(rank, slices.Values(srcVecs), slices.Values(dstVecs), WithBlockSize(blockSize))
		require.NoError(t, err)

		got, err := m.RecommendForAll(context.Background(), k)
		require.NoError(t, err)
		require.Len(t, got, len(srcVecs))

		for _, recs := range got {
			want := expected[recs.SourceID]
			require.Len(t, recs.Items, k, "blockSize=%d source=%d", blockSize, recs.SourceID)
			for i := range want {
				assert.Equal(t, want[i].ID, recs.Items[i].ID, "blockSize=%d source=%d slot=%d", blockSize, recs.SourceID, i)
				assert.InDelta(t, want[i].Score, recs.Items[i].Score, 1e-9)
			}
		}
	}
}

func TestRecommend(t *testing.T) {
	m := newTestModel(t)

	got, err := m.Recommend(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []model.Recommendation{{ID: 10, Score: 2}, {ID: 12, Score: 1}}, got)

	got, err = m.Recommend(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Recommendation{{ID: 11, Score: 3}}, got)
}

func TestRecommendErrors(t *testing.T) {
	m := newTestModel(t)

	t.Run("NotFound", func(t *testing.T) {
		_, err := m.Recommend(context.Background(), 99, 2)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := m.Recommend(context.Background(), 1, 0)
		assert.ErrorIs(t, err, ErrInvalidK)
	})
}

func TestRecommendVector(t *testing.T) {
	m := newTestModel(t)

	got, err := m.RecommendVector(context.Background(), model.Vector{1, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Recommendation{{ID: 11, Score: 3}}, got)
}

func TestRecommendVectorDimensionMismatch(t *testing.T) {
	m := newTestModel(t)

	_, err := m.RecommendVector(context.Background(), model.Vector{1, 1, 1}, 1)

	dimErr := new(ErrDimensionMismatch)
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 3, dimErr.Actual)
}

func TestRecommendMatchesRecommendForAll(t *testing.T) {
	const (
		rank = 3
		k    = 4
	)

	srcVecs := synthetic(9, rank, 1)
	dstVecs := synthetic(21, rank, 500)

	m, err := New(rank, slices.Values(srcVecs), slices.Values(dstVecs), WithBlockSize(5))
	require.NoError(t, err)

	all, err := m.RecommendForAll(context.Background(), k)
	require.NoError(t, err)

	for _, recs := range all {
		single, err := m.Recommend(context.Background(), recs.SourceID, k)
		require.NoError(t, err)

		require.Len(t, single, len(recs.Items))
		for i := range recs.Items {
			assert.Equal(t, recs.Items[i].ID, single[i].ID)
			assert.InDelta(t, recs.Items[i].Score, single[i].Score, 1e-9)
		}
	}
}

func TestVectorIterators(t *testing.T) {
	m := newTestModel(t, WithBlockSize(2))

	var src []model.FeatureVector
	for fv := range m.SourceVectors() {
		src = append(src, fv)
	}
	assert.Equal(t, testSources(), src)

	var dst []model.FeatureVector
	for fv := range m.DestinationVectors() {
		dst = append(dst, fv)
	}
	assert.Equal(t, testDestinations(), dst)
}

func TestBasicMetricsCollector(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	m := newTestModel(t, WithBlockSize(1), WithMetricsCollector(metrics))

	_, err := m.RecommendForAll(context.Background(), 2)
	require.NoError(t, err)

	_, err = m.Recommend(context.Background(), 99, 2)
	require.Error(t, err)

	assert.Equal(t, int64(1), metrics.RecommendForAllCount.Load())
	assert.Equal(t, int64(0), metrics.RecommendForAllErrors.Load())
	// 2 source blocks x 3 destination blocks.
	assert.Equal(t, int64(6), metrics.BlockPairs.Load())
	assert.Equal(t, int64(1), metrics.RecommendCount.Load())
	assert.Equal(t, int64(1), metrics.RecommendErrors.Load())
}

func newDebugLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNewLogsDistinctIDs(t *testing.T) {
	var buf bytes.Buffer

	src := append(testSources(), model.FeatureVector{ID: 1, Vector: model.Vector{5, 5}})

	_, err := New(2, slices.Values(src), slices.Values(testDestinations()),
		WithLogger(newDebugLogger(&buf)))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "model constructed")
	assert.Contains(t, out, "source_vectors=3")
	assert.Contains(t, out, "source_distinct_ids=2")
	assert.Contains(t, out, "destination_distinct_ids=3")
}

func TestRecommendForAllLogsProgress(t *testing.T) {
	var buf bytes.Buffer

	m := newTestModel(t, WithBlockSize(1), WithLogger(newDebugLogger(&buf)))

	_, err := m.RecommendForAll(context.Background(), 2)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "scoring progress")
	assert.Contains(t, out, "k=2")
	assert.Contains(t, out, "source_blocks_total=2")
}

func TestWithParallelism(t *testing.T) {
	m := newTestModel(t, WithBlockSize(1), WithParallelism(1))

	got, err := m.RecommendForAll(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
