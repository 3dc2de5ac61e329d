package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dbsmedya/swimrecords/internal/config"
	"github.com/dbsmedya/swimrecords/internal/types"
)

// maxResponseBytes bounds a single collection response.
const maxResponseBytes = 32 << 20

// APISource fetches the four collections from the records HTTP API.
type APISource struct {
	baseURL string
	client  *http.Client
}

// NewAPISource creates an API source from configuration.
func NewAPISource(cfg config.APIConfig) *APISource {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &APISource{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *APISource) Name() string { return config.DataKindAPI }

// Load fetches /records, /meets, /swimmers and /relays. A failed request or
// non-2xx status is a transport error; a body that does not decode or
// validate is a malformed response.
func (a *APISource) Load(ctx context.Context) (*types.Dataset, error) {
	start := time.Now()
	ds := &types.Dataset{}

	if err := a.get(ctx, "/records", &ds.Performances); err != nil {
		return nil, err
	}
	if err := a.get(ctx, "/meets", &ds.Meets); err != nil {
		return nil, err
	}
	if err := a.get(ctx, "/swimmers", &ds.Swimmers); err != nil {
		return nil, err
	}
	if err := a.get(ctx, "/relays", &ds.Relays); err != nil {
		return nil, err
	}

	if err := Validate(ds); err != nil {
		return nil, err
	}
	ds.Stats = types.LoadStats{Source: a.Name(), Duration: time.Since(start)}
	return ds, nil
}

func (a *APISource) get(ctx context.Context, path string, into interface{}) error {
	op := "source.APISource GET " + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return types.NewError(types.KindTransport, op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return types.NewError(types.KindTransport, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return types.NewError(types.KindTransport, op, fmt.Errorf("unexpected status %s", resp.Status))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(into); err != nil {
		return types.NewError(types.KindMalformedResponse, op, fmt.Errorf("invalid JSON: %w", err))
	}
	return nil
}
