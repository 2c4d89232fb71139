// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package store persists settle runs in a SQLite database.
//
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/trace"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// Run outcomes.
const (
	Settled       = "settled"
	NonConvergent = "non-convergent"
	Failed        = "failed"
)

// ErrNotFound is returned by Get for unknown run ids.
//
var ErrNotFound = errors.New("run not found")

// Run is a recorded settle run.
//
type Run struct {
	ID       string
	Created  time.Time
	File     string
	Top      string
	Inputs   map[string]bool
	Steps    int
	Outcome  string
	Error    string
	Snapshot netsim.Snapshot
	Trace    *trace.Trace // optional
}

// Outcome returns the outcome of a run that ended with err.
//
func Outcome(err error) string {
	var ne *netsim.NonConvergentError
	switch {
	case err == nil:
		return Settled
	case errors.As(err, &ne):
		return NonConvergent
	}
	return Failed
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Store is a run database.
//
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path.
//
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connect to database")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, p := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err = db.Exec(p); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "execute %q", p)
		}
	}
	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "apply schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
//
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts r into the database. If r.ID is empty, a new time ordered id
// is assigned. If r.Created is zero, it is set to the current time.
//
func (s *Store) Save(ctx context.Context, r *Run) error {
	if r.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate run id")
		}
		r.ID = id.String()
	}
	if r.Created.IsZero() {
		r.Created = time.Now()
	}
	inputs, err := encMode.Marshal(r.Inputs)
	if err != nil {
		return errors.Wrap(err, "encode inputs")
	}
	snap, err := encMode.Marshal(r.Snapshot)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	var tr []byte
	if r.Trace != nil {
		if tr, err = encMode.Marshal(r.Trace); err != nil {
			return errors.Wrap(err, "encode trace")
		}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, file, top, steps, outcome, error, inputs, snapshot, trace)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Created.UnixNano(), r.File, r.Top, r.Steps, r.Outcome, r.Error, inputs, snap, tr)
	return errors.Wrap(err, "insert run")
}

const selectRun = `SELECT id, created_at, file, top, steps, outcome, error, inputs, snapshot, trace FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r                Run
		created          int64
		inputs, snap, tr []byte
	)
	if err := sc.Scan(&r.ID, &created, &r.File, &r.Top, &r.Steps, &r.Outcome, &r.Error, &inputs, &snap, &tr); err != nil {
		return nil, err
	}
	r.Created = time.Unix(0, created)
	if err := decMode.Unmarshal(inputs, &r.Inputs); err != nil {
		return nil, errors.Wrapf(err, "run %s: decode inputs", r.ID)
	}
	if err := decMode.Unmarshal(snap, &r.Snapshot); err != nil {
		return nil, errors.Wrapf(err, "run %s: decode snapshot", r.ID)
	}
	if len(tr) > 0 {
		if err := decMode.Unmarshal(tr, &r.Trace); err != nil {
			return nil, errors.Wrapf(err, "run %s: decode trace", r.ID)
		}
	}
	return &r, nil
}

// Get returns the run with the given id.
//
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(ErrNotFound, id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get run")
	}
	return r, nil
}

// List returns up to limit runs, most recent first. A limit <= 0 returns all
// runs.
//
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectRun+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var rs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, errors.Wrap(rows.Err(), "list runs")
}
