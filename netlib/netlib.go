// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlib provides a library of composite circuits built from netsim
// primitives.
//
// Every constructor returns a new, independent circuit that can be used on
// its own or as a part of another circuit. Sequential circuits are returned in
// a settled, known state.
//
package netlib

import (
	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// common pin names
const (
	pA    = "a"
	pB    = "b"
	pSel  = "sel"
	pOut  = "out"
	pS    = "s"
	pC    = "c"
	pCin  = "cin"
	pCout = "cout"
)

// chip builds a circuit and wraps any error with the circuit's name.
func chip(name string, in, out string, parts netsim.Parts, nets ...string) (*netsim.Circuit, error) {
	pins := append(netsim.In(in), netsim.Out(out)...)
	ns := make(netsim.Nets, len(nets))
	for i, n := range nets {
		spec, err := netsim.ParseNet(n)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: net %d", name, i)
		}
		ns[i] = spec
	}
	c, err := netsim.NewCircuit(parts, pins, ns)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return c, nil
}

// preset drives the given inputs and settles c.
func preset(c *netsim.Circuit, name string, in map[string]bool) error {
	for k, v := range in {
		if err := c.SetExternalInput(k, v); err != nil {
			return errors.Wrap(err, name)
		}
	}
	if _, err := c.Settle(netsim.DefaultMaxSteps); err != nil {
		return errors.Wrapf(err, "%s: initial state", name)
	}
	return nil
}
