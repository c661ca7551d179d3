package recgo_test

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/hupe1980/recgo"
	"github.com/hupe1980/recgo/model"
)

func exampleModel() *recgo.Model {
	sources := []model.FeatureVector{
		{ID: 1, Vector: model.Vector{1, 0}},
		{ID: 2, Vector: model.Vector{0, 1}},
	}
	destinations := []model.FeatureVector{
		{ID: 10, Vector: model.Vector{2, 0}},
		{ID: 11, Vector: model.Vector{0, 3}},
		{ID: 12, Vector: model.Vector{1, 1}},
	}

	m, err := recgo.New(2, slices.Values(sources), slices.Values(destinations))
	if err != nil {
		log.Fatal(err)
	}
	return m
}

// Example_recommendForAll demonstrates batch top-K recommendation for every
// source entity at once.
func Example_recommendForAll() {
	m := exampleModel()

	results, err := m.RecommendForAll(context.Background(), 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, recs := range results {
		fmt.Printf("source %d:", recs.SourceID)
		for _, item := range recs.Items {
			fmt.Printf(" (%d, %.1f)", item.ID, item.Score)
		}
		fmt.Println()
	}
	// Output:
	// source 1: (10, 2.0) (12, 1.0)
	// source 2: (11, 3.0) (12, 1.0)
}

// Example_recommend demonstrates recommending for a single source entity.
func Example_recommend() {
	m := exampleModel()

	items, err := m.Recommend(context.Background(), 1, 1)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("top destination: %d (score %.1f)\n", items[0].ID, items[0].Score)
	// Output: top destination: 10 (score 2.0)
}

// Example_recommendVector demonstrates scoring an ad-hoc query vector
// against the destination features.
func Example_recommendVector() {
	m := exampleModel()

	items, err := m.RecommendVector(context.Background(), model.Vector{1, 1}, 1)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("top destination: %d (score %.1f)\n", items[0].ID, items[0].Score)
	// Output: top destination: 11 (score 3.0)
}

// Example_options demonstrates tuning block size and parallelism.
func Example_options() {
	sources := []model.FeatureVector{{ID: 1, Vector: model.Vector{1, 0}}}
	destinations := []model.FeatureVector{{ID: 10, Vector: model.Vector{2, 0}}}

	m, err := recgo.New(2,
		slices.Values(sources),
		slices.Values(destinations),
		recgo.WithBlockSize(1000),
		recgo.WithParallelism(4),
		recgo.WithIDValidation(),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("model ready: %d sources, %d destinations\n", m.SourceCount(), m.DestinationCount())
	// Output: model ready: 1 sources, 1 destinations
}
