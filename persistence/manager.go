package persistence

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/recgo"
	"github.com/hupe1980/recgo/blobstore"
	"github.com/hupe1980/recgo/model"
)

// SaveOption configures Save.
type SaveOption func(*saveOptions)

type saveOptions struct {
	compression Compression
}

// WithCompression selects the data section codec for both feature files.
// The default is zstd.
func WithCompression(c Compression) SaveOption {
	return func(o *saveOptions) {
		o.compression = c
	}
}

// Save writes the model's manifest and both feature sides to the store and
// publishes the manifest through the CURRENT pointer. Both sides are
// written in parallel.
//
// On stores with atomic pointer semantics (LocalStore rename,
// s3.DDBCommitStore conditional writes) a reader never observes a
// half-published model.
func Save(ctx context.Context, m *recgo.Model, store blobstore.BlobStore, opts ...SaveOption) error {
	o := saveOptions{compression: CompressionZstd}
	for _, opt := range opts {
		opt(&o)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		file, err := encodeFeatures(m.Rank(), m.SourceCount(), m.SourceVectors(), o.compression)
		if err != nil {
			return fmt.Errorf("encode source features: %w", err)
		}
		return store.Put(gctx, SourcePath, file)
	})

	g.Go(func() error {
		file, err := encodeFeatures(m.Rank(), m.DestinationCount(), m.DestinationVectors(), o.compression)
		if err != nil {
			return fmt.Errorf("encode destination features: %w", err)
		}
		return store.Put(gctx, DestinationPath, file)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	manifest := &Manifest{
		SchemaVersion: SchemaVersion,
		Rank:          m.Rank(),
		Compression:   o.compression.String(),
		Source:        SideInfo{Count: m.SourceCount(), Path: SourcePath},
		Destination:   SideInfo{Count: m.DestinationCount(), Path: DestinationPath},
	}

	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	if err := store.Put(ctx, ManifestName, data); err != nil {
		return err
	}

	return store.Put(ctx, CurrentName, []byte(ManifestName))
}

// Load reads a saved model from the store and rebuilds it. Options are
// forwarded to the model constructor.
func Load(ctx context.Context, store blobstore.BlobStore, opts ...recgo.Option) (*recgo.Model, error) {
	manifestName := ManifestName
	if current, err := blobstore.ReadAll(ctx, store, CurrentName); err == nil && len(current) > 0 {
		manifestName = string(current)
	} else if err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return nil, err
	}

	data, err := blobstore.ReadAll(ctx, store, manifestName)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	manifest, err := unmarshalManifest(data)
	if err != nil {
		return nil, err
	}
	if _, err := compressionFromName(manifest.Compression); err != nil {
		return nil, err
	}

	var srcVecs, dstVecs []model.FeatureVector

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		srcVecs, err = loadSide(gctx, store, manifest.Source, manifest.Rank)
		return err
	})
	g.Go(func() error {
		var err error
		dstVecs, err = loadSide(gctx, store, manifest.Destination, manifest.Rank)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return recgo.New(manifest.Rank, slices.Values(srcVecs), slices.Values(dstVecs), opts...)
}

func loadSide(ctx context.Context, store blobstore.BlobStore, side SideInfo, wantRank int) ([]model.FeatureVector, error) {
	file, err := blobstore.ReadAll(ctx, store, side.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", side.Path, err)
	}

	rank, vecs, err := decodeFeatures(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", side.Path, err)
	}
	if rank != wantRank {
		return nil, fmt.Errorf("persistence: %s rank %d does not match manifest rank %d", side.Path, rank, wantRank)
	}
	if len(vecs) != side.Count {
		return nil, fmt.Errorf("persistence: %s has %d records, manifest says %d", side.Path, len(vecs), side.Count)
	}

	return vecs, nil
}
