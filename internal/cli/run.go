// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"context"
	"path/filepath"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/repl"
	"github.com/db47h/netsim/internal/store"
	"github.com/db47h/netsim/internal/trace"
	"github.com/db47h/netsim/netlist"
)

// runOptions are the flags shared by commands that simulate a description.
//
type runOptions struct {
	*RootOptions
	Set      []string
	MaxSteps int
	Save     bool
}

// session is a circuit loaded from a description with inputs applied.
//
type session struct {
	file  string
	top   string
	c     *netsim.Circuit
	limit int
}

func (o *runOptions) load(path string) (*session, error) {
	f, err := netlist.Load(path)
	if err != nil {
		return nil, wrapExit(ExitCommandError, "load description", err)
	}
	c, err := f.Build(netsim.WithLogger(o.log))
	if err != nil {
		return nil, wrapExit(ExitCommandError, "build circuit", err)
	}
	for _, s := range o.Set {
		if err = repl.Assign(c, s); err != nil {
			return nil, wrapExit(ExitCommandError, "set input", err)
		}
	}
	limit := o.cfg.MaxSteps
	switch {
	case o.MaxSteps > 0:
		limit = o.MaxSteps
	case f.MaxSteps > 0:
		limit = f.MaxSteps
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &session{file: abs, top: f.Top, c: c, limit: limit}, nil
}

// inputs returns the state of every valid input pin.
//
func (s *session) inputs() map[string]bool {
	m := make(map[string]bool)
	for _, p := range s.c.ExternalPins() {
		if p.Dir != netsim.DirIn {
			continue
		}
		if sig, err := s.c.External(p.Name); err == nil && sig.Valid() {
			m[p.Name] = sig.State
		}
	}
	return m
}

// settle records a trace of the circuit settling. The returned error, if
// any, is the propagation error.
//
func (s *session) settle() (*store.Run, error) {
	r := &store.Run{File: s.file, Top: s.top, Inputs: s.inputs()}
	tr, err := trace.Record(s.c, s.limit)
	r.Steps = tr.Steps()
	r.Outcome = store.Outcome(err)
	if err != nil {
		r.Error = err.Error()
	}
	r.Snapshot = s.c.Snapshot()
	r.Trace = tr
	return r, err
}

func (o *runOptions) save(ctx context.Context, r *store.Run) error {
	st, err := store.Open(o.cfg.DB)
	if err != nil {
		return wrapExit(ExitCommandError, "open run database", err)
	}
	defer st.Close()
	if err = st.Save(ctx, r); err != nil {
		return wrapExit(ExitCommandError, "save run", err)
	}
	o.log.Info("run saved", "id", r.ID, "db", o.cfg.DB)
	return nil
}

// simulate loads path, settles the circuit and saves the run if requested.
// A propagation error is returned as an ExitFailure after the run is saved.
//
func (o *runOptions) simulate(ctx context.Context, path string) (*store.Run, error) {
	s, err := o.load(path)
	if err != nil {
		return nil, err
	}
	r, serr := s.settle()
	o.log.Debug("settle", "top", s.top, "steps", r.Steps, "outcome", r.Outcome)
	if o.Save {
		if err = o.save(ctx, r); err != nil {
			return r, err
		}
	}
	if serr != nil {
		return r, wrapExit(ExitFailure, "settle "+s.top, serr)
	}
	return r, nil
}
