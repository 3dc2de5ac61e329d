package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dbsmedya/swimrecords/internal/config"
	"github.com/dbsmedya/swimrecords/internal/types"
)

// Document is the on-disk form of a dataset: the four API collections under
// one object.
type Document struct {
	Records  []types.Performance `json:"records"`
	Meets    []types.Meet        `json:"meets"`
	Swimmers []types.Swimmer     `json:"swimmers"`
	Relays   []types.Relay       `json:"relays"`
}

// FileSource reads a dataset from a JSON document.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string { return config.DataKindFile }

func (f *FileSource) Load(ctx context.Context) (*types.Dataset, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, types.NewError(types.KindTransport, "source.FileSource", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, types.NewError(types.KindMalformedResponse, "source.FileSource",
			fmt.Errorf("%s: invalid JSON: %w", f.path, err))
	}

	ds := &types.Dataset{
		Performances: doc.Records,
		Meets:        doc.Meets,
		Swimmers:     doc.Swimmers,
		Relays:       doc.Relays,
	}
	if err := Validate(ds); err != nil {
		return nil, err
	}
	ds.Stats = types.LoadStats{Source: f.Name(), Duration: time.Since(start)}
	return ds, nil
}
