package manifest

import (
	"context"
	"encoding/json"
	"fmt"

	ds "github.com/ipfs/go-datastore"
	dsq "github.com/ipfs/go-datastore/query"
	dslvl "github.com/ipfs/go-ds-leveldb"

	"github.com/binpart/binpart/core/model"
)

// Store keeps one SplitManifest per base path. It is advisory: the
// joiner works from filenames alone and only cross-checks against
// the recorded manifest.
type Store struct {
	Manifests *dslvl.Datastore
}

func NewStore(dsPath string) (*Store, error) {
	p := fmt.Sprintf("%s/manifests", dsPath)
	store, err := dslvl.NewDatastore(p, nil)
	if err != nil {
		return nil, err
	}

	return &Store{
		Manifests: store,
	}, nil
}

func (s *Store) Get(ctx context.Context, basePath model.BasePath) (*model.SplitManifest, error) {
	k := ds.NewKey(basePath)
	b, err := s.Manifests.Get(ctx, k)
	if err != nil {
		return nil, err
	}

	var m model.SplitManifest
	err = json.Unmarshal(b, &m)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (s *Store) Has(ctx context.Context, basePath model.BasePath) (bool, error) {
	k := ds.NewKey(basePath)
	exists, err := s.Manifests.Has(ctx, k)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (s *Store) Put(ctx context.Context, m model.SplitManifest) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}

	k := ds.NewKey(m.BasePath)
	return s.Manifests.Put(ctx, k, b)
}

func (s *Store) Delete(ctx context.Context, basePath model.BasePath) error {
	k := ds.NewKey(basePath)
	return s.Manifests.Delete(ctx, k)
}

func (s *Store) All(ctx context.Context) ([]*model.SplitManifest, error) {
	q := dsq.Query{}
	manifests := make([]*model.SplitManifest, 0)

	res, err := s.Manifests.Query(ctx, q)
	if err != nil {
		return manifests, err
	}

	for {
		r, hasNext := res.NextSync()
		if !hasNext {
			break
		}

		var m model.SplitManifest
		err = json.Unmarshal(r.Value, &m)
		if err != nil {
			return manifests, err
		}
		manifests = append(manifests, &m)
	}

	return manifests, err
}

func (s *Store) Close() error {
	return s.Manifests.Close()
}
