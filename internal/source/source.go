// Package source loads the dataset the record engine runs over. Every source
// validates the shape of what it reads and joins performances with their
// swimmer and meet before handing the dataset on.
package source

import (
	"context"
	"fmt"

	"github.com/dbsmedya/swimrecords/internal/config"
	"github.com/dbsmedya/swimrecords/internal/types"
)

// Source produces a complete dataset.
type Source interface {
	Name() string
	Load(ctx context.Context) (*types.Dataset, error)
}

// Loader is implemented by store.Store.
type Loader interface {
	LoadDataset(ctx context.Context) (*types.Dataset, error)
}

// StoreSource reads the dataset from the records database.
type StoreSource struct {
	loader Loader
}

// NewStoreSource wraps a database loader.
func NewStoreSource(loader Loader) *StoreSource {
	return &StoreSource{loader: loader}
}

func (s *StoreSource) Name() string { return config.DataKindMySQL }

func (s *StoreSource) Load(ctx context.Context) (*types.Dataset, error) {
	ds, err := s.loader.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	if err := Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// FromConfig builds the source selected by data.kind. loader is only needed
// for the mysql kind.
func FromConfig(cfg *config.Config, loader Loader) (Source, error) {
	switch cfg.Data.Kind {
	case config.DataKindMySQL, "":
		if loader == nil {
			return nil, fmt.Errorf("mysql data source requires a database connection")
		}
		return NewStoreSource(loader), nil
	case config.DataKindFile:
		return NewFileSource(cfg.Data.File), nil
	case config.DataKindAPI:
		return NewAPISource(cfg.Data.API), nil
	default:
		return nil, fmt.Errorf("unknown data kind %q", cfg.Data.Kind)
	}
}
