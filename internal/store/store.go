// Package store persists swimmers, meets, performances and relays in MySQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dbsmedya/swimrecords/internal/config"
	"github.com/dbsmedya/swimrecords/internal/logger"
	"github.com/dbsmedya/swimrecords/internal/sqlutil"
	"github.com/dbsmedya/swimrecords/internal/types"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// quotedTables holds backtick-quoted table names ready for interpolation.
type quotedTables struct {
	swimmers     string
	meets        string
	performances string
	relays       string
}

// Store reads and writes the records database.
type Store struct {
	db        *sql.DB
	q         querier
	inTx      bool
	tables    quotedTables
	batchSize int
	logger    *logger.Logger
}

// New creates a Store over db. Table names are validated before use.
func New(db *sql.DB, tables config.TableNames, batchSize int, log *logger.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	if batchSize <= 0 {
		batchSize = 200
	}

	quoted := make([]string, 0, 4)
	for _, name := range []string{tables.Swimmers, tables.Meets, tables.Performances, tables.Relays} {
		q, err := sqlutil.QuoteIdentifierSafe(name)
		if err != nil {
			return nil, err
		}
		quoted = append(quoted, q)
	}

	return &Store{
		db: db,
		q:  db,
		tables: quotedTables{
			swimmers:     quoted[0],
			meets:        quoted[1],
			performances: quoted[2],
			relays:       quoted[3],
		},
		batchSize: batchSize,
		logger:    log,
	}, nil
}

// WithTx runs fn against a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("store.WithTx", fmt.Errorf("failed to begin transaction: %w", err))
	}

	defer func() {
		if tx != nil {
			s.logger.Warn("Rolling back records transaction due to error or panic")
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	bound := *s
	bound.q = tx
	bound.inTx = true

	if err := fn(&bound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError("store.WithTx", fmt.Errorf("failed to commit transaction: %w", err))
	}
	tx = nil
	return nil
}

// ListSwimmers returns every swimmer ordered by id.
func (s *Store) ListSwimmers(ctx context.Context) ([]types.Swimmer, error) {
	query := fmt.Sprintf("SELECT id, name, graduating_year FROM %s ORDER BY id", s.tables.swimmers)
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("store.ListSwimmers", err)
	}
	defer rows.Close()

	var out []types.Swimmer
	for rows.Next() {
		var sw types.Swimmer
		if err := rows.Scan(&sw.ID, &sw.Name, &sw.GraduatingYear); err != nil {
			return nil, storageError("store.ListSwimmers", err)
		}
		out = append(out, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("store.ListSwimmers", err)
	}
	return out, nil
}

// ListMeets returns every meet ordered by date, then id.
func (s *Store) ListMeets(ctx context.Context) ([]types.Meet, error) {
	query := fmt.Sprintf("SELECT id, name, location, meet_date FROM %s ORDER BY meet_date, id", s.tables.meets)
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("store.ListMeets", err)
	}
	defer rows.Close()

	var out []types.Meet
	for rows.Next() {
		var m types.Meet
		var date time.Time
		if err := rows.Scan(&m.ID, &m.Name, &m.Location, &date); err != nil {
			return nil, storageError("store.ListMeets", err)
		}
		m.Date = date.Unix()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("store.ListMeets", err)
	}
	return out, nil
}

// ListPerformances returns every performance joined with its swimmer name and
// meet date, ordered by id.
func (s *Store) ListPerformances(ctx context.Context) ([]types.Performance, error) {
	query := fmt.Sprintf(`SELECT p.id, p.swimmer_id, s.name, p.meet_id, m.meet_date,
	p.event, p.swim_type, p.start_type, p.time_seconds
FROM %s p
JOIN %s s ON s.id = p.swimmer_id
JOIN %s m ON m.id = p.meet_id
ORDER BY p.id`, s.tables.performances, s.tables.swimmers, s.tables.meets)

	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("store.ListPerformances", err)
	}
	defer rows.Close()

	var out []types.Performance
	for rows.Next() {
		var p types.Performance
		var date time.Time
		var event, swimKind, startKind string
		if err := rows.Scan(&p.ID, &p.SwimmerID, &p.SwimmerName, &p.MeetID, &date,
			&event, &swimKind, &startKind, &p.Time); err != nil {
			return nil, storageError("store.ListPerformances", err)
		}
		p.MeetDate = date.Unix()
		p.Event = types.Event(event)
		p.SwimKind = types.SwimKind(swimKind)
		p.StartKind = types.StartKind(startKind)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("store.ListPerformances", err)
	}
	return out, nil
}

// ListRelays returns every relay ordered by id.
func (s *Store) ListRelays(ctx context.Context) ([]types.Relay, error) {
	query := fmt.Sprintf("SELECT id, relay_type, leg1_id, leg2_id, leg3_id, leg4_id, time_seconds FROM %s ORDER BY id",
		s.tables.relays)
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("store.ListRelays", err)
	}
	defer rows.Close()

	var out []types.Relay
	for rows.Next() {
		var r types.Relay
		var relayType string
		if err := rows.Scan(&r.ID, &relayType, &r.LegIDs[0], &r.LegIDs[1], &r.LegIDs[2], &r.LegIDs[3], &r.Time); err != nil {
			return nil, storageError("store.ListRelays", err)
		}
		r.Type = types.RelayType(relayType)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("store.ListRelays", err)
	}
	return out, nil
}

// LoadDataset reads the whole database.
func (s *Store) LoadDataset(ctx context.Context) (*types.Dataset, error) {
	start := time.Now()
	ds := &types.Dataset{}
	var err error

	if ds.Swimmers, err = s.ListSwimmers(ctx); err != nil {
		return nil, err
	}
	if ds.Meets, err = s.ListMeets(ctx); err != nil {
		return nil, err
	}
	if ds.Performances, err = s.ListPerformances(ctx); err != nil {
		return nil, err
	}
	if ds.Relays, err = s.ListRelays(ctx); err != nil {
		return nil, err
	}

	ds.Stats = types.LoadStats{Source: "mysql", Duration: time.Since(start)}
	s.logger.Debugf("Loaded %d performances, %d meets, %d swimmers, %d relays in %s",
		len(ds.Performances), len(ds.Meets), len(ds.Swimmers), len(ds.Relays), ds.Stats.Duration)
	return ds, nil
}

// InsertSwimmer adds a swimmer and returns its id.
func (s *Store) InsertSwimmer(ctx context.Context, sw types.Swimmer) (int64, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, graduating_year) VALUES (?, ?)", s.tables.swimmers)
	res, err := s.q.ExecContext(ctx, query, sw.Name, sw.GraduatingYear)
	if err != nil {
		return 0, storageError("store.InsertSwimmer", err)
	}
	return lastInsertID("store.InsertSwimmer", res)
}

// InsertMeet adds a meet and returns its id.
func (s *Store) InsertMeet(ctx context.Context, m types.Meet) (int64, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, location, meet_date) VALUES (?, ?, ?)", s.tables.meets)
	date := time.Unix(m.Date, 0).UTC().Format("2006-01-02")
	res, err := s.q.ExecContext(ctx, query, m.Name, m.Location, date)
	if err != nil {
		return 0, storageError("store.InsertMeet", err)
	}
	return lastInsertID("store.InsertMeet", res)
}

// performanceColumns is the column list written by InsertPerformances.
const performanceColumns = 6

// InsertPerformances writes perfs with multi-row INSERTs of at most batchSize
// rows each, all inside one transaction. The ID, SwimmerName and MeetDate
// fields are ignored.
func (s *Store) InsertPerformances(ctx context.Context, perfs []types.Performance) (int64, error) {
	if len(perfs) == 0 {
		return 0, nil
	}

	var inserted int64
	err := s.WithTx(ctx, func(tx *Store) error {
		for start := 0; start < len(perfs); start += tx.batchSize {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("insert interrupted: %w", err)
			}

			end := start + tx.batchSize
			if end > len(perfs) {
				end = len(perfs)
			}
			batch := perfs[start:end]

			query := fmt.Sprintf(
				"INSERT INTO %s (swimmer_id, meet_id, event, swim_type, start_type, time_seconds) VALUES %s",
				tx.tables.performances, sqlutil.ValuesClause(len(batch), performanceColumns))
			args := make([]interface{}, 0, len(batch)*performanceColumns)
			for _, p := range batch {
				args = append(args, p.SwimmerID, p.MeetID, string(p.Event), string(p.SwimKind), string(p.StartKind), p.Time)
			}

			res, err := tx.q.ExecContext(ctx, query, args...)
			if err != nil {
				return storageError("store.InsertPerformances", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return storageError("store.InsertPerformances", err)
			}
			inserted += n
			tx.logger.Debugf("Inserted batch of %d performances", n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// InsertRelay adds a relay and returns its id.
func (s *Store) InsertRelay(ctx context.Context, r types.Relay) (int64, error) {
	query := fmt.Sprintf(
		"INSERT INTO %s (relay_type, leg1_id, leg2_id, leg3_id, leg4_id, time_seconds) VALUES %s",
		s.tables.relays, sqlutil.Placeholders(6))
	res, err := s.q.ExecContext(ctx, query, string(r.Type), r.LegIDs[0], r.LegIDs[1], r.LegIDs[2], r.LegIDs[3], r.Time)
	if err != nil {
		return 0, storageError("store.InsertRelay", err)
	}
	return lastInsertID("store.InsertRelay", res)
}

// FindRelayLegs resolves the split performances making up a relay: for leg i
// the latest relay split at meetID by swimmerIDs[i] in the leg's event.
// A missing leg is reported as ErrNotFound naming the leg.
func (s *Store) FindRelayLegs(ctx context.Context, meetID int64, relayType types.RelayType, swimmerIDs [types.RelayLegs]int64) ([types.RelayLegs]int64, error) {
	var legs [types.RelayLegs]int64
	query := fmt.Sprintf(
		"SELECT id FROM %s WHERE meet_id = ? AND swimmer_id = ? AND event = ? AND swim_type = ? ORDER BY id DESC LIMIT 1",
		s.tables.performances)

	for i := range legs {
		event, ok := relayType.LegEvent(i + 1)
		if !ok {
			return legs, fmt.Errorf("unknown relay type %q", relayType)
		}
		err := s.q.QueryRowContext(ctx, query, meetID, swimmerIDs[i], string(event), string(types.SwimRelayLeg)).Scan(&legs[i])
		if errors.Is(err, sql.ErrNoRows) {
			return legs, fmt.Errorf("leg %d (%s): %w", i+1, event.Label(), ErrNotFound)
		}
		if err != nil {
			return legs, storageError("store.FindRelayLegs", err)
		}
	}
	return legs, nil
}

func lastInsertID(op string, res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError(op, err)
	}
	return id, nil
}

func storageError(op string, err error) error {
	return types.NewError(types.KindStorage, op, err)
}
