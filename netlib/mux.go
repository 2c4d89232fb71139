// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import "github.com/db47h/netsim"

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux() (*netsim.Circuit, error) {
	return chip("Mux", "a, b, sel", "out",
		netsim.Parts{
			{Name: "not", Device: netsim.Not()},
			{Name: "and0", Device: netsim.And()},
			{Name: "and1", Device: netsim.And()},
			{Name: "or", Device: netsim.Or()},
		},
		"a, and0.a",
		"b, and1.a",
		"sel, not.in, and1.b",
		"not.out, and0.b",
		"and0.out, or.a",
		"and1.out, or.b",
		"or.out, out",
	)
}
