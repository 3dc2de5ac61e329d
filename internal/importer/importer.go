package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dbsmedya/swimrecords/internal/logger"
	"github.com/dbsmedya/swimrecords/internal/store"
	"github.com/dbsmedya/swimrecords/internal/types"
)

// Locker serializes writers. *lock.AdvisoryLock implements it.
type Locker interface {
	WithLock(ctx context.Context, timeoutSeconds int, fn func() error) error
}

// Result summarizes an import.
type Result struct {
	Performances int64
	Relays       int
	DryRun       bool
	Batch        *Batch
}

// Importer parses CSV exports and writes them to the store.
type Importer struct {
	store       *store.Store
	lock        Locker
	lockTimeout int
	logger      *logger.Logger
}

// New creates an importer. lockTimeout is in seconds.
func New(st *store.Store, l Locker, lockTimeout int, log *logger.Logger) (*Importer, error) {
	if st == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if l == nil {
		return nil, fmt.Errorf("lock is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Importer{store: st, lock: l, lockTimeout: lockTimeout, logger: log}, nil
}

// Run parses r against the current roster and meets and, unless dryRun is
// set, writes the batch. Performances go in first so relay legs swum in the
// same file can be resolved; the whole write is one transaction held under
// the import lock.
func (im *Importer) Run(ctx context.Context, r io.Reader, dryRun bool) (*Result, error) {
	swimmers, err := im.store.ListSwimmers(ctx)
	if err != nil {
		return nil, err
	}
	meets, err := im.store.ListMeets(ctx)
	if err != nil {
		return nil, err
	}

	batch, err := Parse(r, swimmers, meets)
	if err != nil {
		return nil, err
	}
	im.logger.Infof("Parsed %d performances and %d relays", len(batch.Performances), len(batch.Relays))

	result := &Result{DryRun: dryRun, Batch: batch}
	if dryRun {
		return result, nil
	}

	err = im.lock.WithLock(ctx, im.lockTimeout, func() error {
		return im.store.WithTx(ctx, func(tx *store.Store) error {
			n, err := tx.InsertPerformances(ctx, batch.Performances)
			if err != nil {
				return err
			}
			result.Performances = n

			var rowErrs RowErrors
			for _, relay := range batch.Relays {
				legs, err := tx.FindRelayLegs(ctx, relay.MeetID, relay.Type, relay.SwimmerIDs)
				if errors.Is(err, store.ErrNotFound) {
					rowErrs = append(rowErrs, RowError{
						Line: relay.Line,
						Err:  fmt.Errorf("relay split missing for %w", err),
					})
					continue
				}
				if err != nil {
					return err
				}

				if _, err := tx.InsertRelay(ctx, types.Relay{Type: relay.Type, LegIDs: legs, Time: relay.Time}); err != nil {
					return err
				}
				result.Relays++
				im.logger.WithRow(relay.Line).Debugf("Inserted %s relay with legs %v", relay.Type, legs)
			}

			if len(rowErrs) > 0 {
				return types.NewError(types.KindMalformedInput, "importer.Run", rowErrs)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	im.logger.Infof("Imported %d performances and %d relays", result.Performances, result.Relays)
	return result, nil
}
