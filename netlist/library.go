// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"sort"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/netlib"
	"github.com/pkg/errors"
)

type newDeviceFn func(p PartDef) (netsim.Device, error)

func gate(fn func() *netsim.Gate) newDeviceFn {
	return func(PartDef) (netsim.Device, error) { return fn(), nil }
}

func circuit(fn func() (*netsim.Circuit, error)) newDeviceFn {
	return func(PartDef) (netsim.Device, error) { return fn() }
}

var library = map[string]newDeviceFn{
	"and":      gate(netsim.And),
	"nand":     gate(netsim.Nand),
	"or":       gate(netsim.Or),
	"nor":      gate(netsim.Nor),
	"xor":      gate(netsim.Xor),
	"xnor":     gate(netsim.Xnor),
	"not":      gate(netsim.Not),
	"buffer":   gate(netsim.Buffer),
	"tie0":     gate(func() *netsim.Gate { return netsim.Tie(false) }),
	"tie1":     gate(func() *netsim.Gate { return netsim.Tie(true) }),
	"dlatch":   gate(netsim.DLatch),
	"tristate": gate(netsim.TriState),

	"nor-latch":    circuit(netlib.NorLatch),
	"d-latch":      circuit(netlib.DLevelLatch),
	"edge-latch":   circuit(netlib.EdgeLatch),
	"mux":          circuit(netlib.Mux),
	"half-adder":   circuit(netlib.HalfAdder),
	"full-adder":   circuit(netlib.FullAdder),
	"ripple-adder": rippleAdder,
}

func rippleAdder(p PartDef) (netsim.Device, error) {
	if p.Width < 1 {
		return nil, errors.Errorf("ripple-adder: width must be at least 1, got %d", p.Width)
	}
	return netlib.RippleAdder(p.Width)
}

// Types returns the sorted list of built-in part types.
//
func Types() []string {
	ts := make([]string, 0, len(library))
	for k := range library {
		ts = append(ts, k)
	}
	sort.Strings(ts)
	return ts
}
