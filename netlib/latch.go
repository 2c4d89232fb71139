// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import "github.com/db47h/netsim"

// NorLatch returns a set/reset latch made of two cross-coupled NOR gates.
//
//	Inputs: S, R
//	Outputs: Q, Q#
//	Function: S=1, R=0 => Q=1, Q#=0
//	          S=0, R=1 => Q=0, Q#=1
//	          S=0, R=0 => hold
//
// The latch is returned in the set state.
//
func NorLatch() (*netsim.Circuit, error) {
	c, err := chip("NorLatch", "S, R", "Q, Q#",
		netsim.Parts{
			{Name: "nor0", Device: netsim.Nor()},
			{Name: "nor1", Device: netsim.Nor()},
		},
		"S, nor0.a",
		"R, nor1.b",
		"nor0.out, nor1.a, Q#",
		"nor1.out, nor0.b, Q",
	)
	if err != nil {
		return nil, err
	}
	if err = preset(c, "NorLatch", map[string]bool{"S": true, "R": false}); err != nil {
		return nil, err
	}
	return c, nil
}

// DLevelLatch returns a level sensitive data latch built around a NorLatch.
//
//	Inputs: D, CLK
//	Outputs: Q, Q#
//	Function: if CLK { Q = D; Q# = !D }
//
// The latch is returned with Q=0.
//
func DLevelLatch() (*netsim.Circuit, error) {
	ff, err := NorLatch()
	if err != nil {
		return nil, err
	}
	c, err := chip("DLevelLatch", "D, CLK", "Q, Q#",
		netsim.Parts{
			{Name: "ff", Device: ff},
			{Name: "not", Device: netsim.Not()},
			{Name: "set", Device: netsim.And()},
			{Name: "reset", Device: netsim.And()},
		},
		"D, set.a, not.in",
		"not.out, reset.b",
		"CLK, set.b, reset.a",
		"set.out, ff.S",
		"reset.out, ff.R",
		"ff.Q, Q",
		"ff.Q#, Q#",
	)
	if err != nil {
		return nil, err
	}
	if err = preset(c, "DLevelLatch", map[string]bool{"D": false, "CLK": true}); err != nil {
		return nil, err
	}
	return c, nil
}

// EdgeLatch returns a rising edge triggered data latch built from gates. It
// behaves like the netsim.DLatch primitive.
//
//	Inputs: D, CLK
//	Outputs: Q, Q#
//	Function: on a low to high transition of CLK, Q = D and Q# = !D
//
// An edge detector turns a rising CLK into a one step pulse that enables the
// inputs of a nested NorLatch. The latch is returned with Q=0 and CLK low.
//
func EdgeLatch() (*netsim.Circuit, error) {
	ff, err := NorLatch()
	if err != nil {
		return nil, err
	}
	c, err := chip("EdgeLatch", "D, CLK", "Q, Q#",
		netsim.Parts{
			{Name: "ff", Device: ff},
			{Name: "not", Device: netsim.Not()},
			{Name: "and0", Device: netsim.And()},
			{Name: "and1", Device: netsim.And()},
			{Name: "edge-not", Device: netsim.Not()},
			{Name: "edge-and", Device: netsim.And()},
		},
		"D, and1.b, not.in",
		"not.out, and0.a",
		"and0.out, ff.S",
		"and1.out, ff.R",
		"edge-and.out, and0.b, and1.a",
		"ff.Q#, Q",
		"ff.Q, Q#",
		"edge-not.out, edge-and.a",
		"CLK, edge-not.in, edge-and.b",
	)
	if err != nil {
		return nil, err
	}
	if err = preset(c, "EdgeLatch", map[string]bool{"D": false, "CLK": false}); err != nil {
		return nil, err
	}
	return c, nil
}
