// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"strconv"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder() (*netsim.Circuit, error) {
	return chip("HalfAdder", "a, b", "s, c",
		netsim.Parts{
			{Name: "xor", Device: netsim.Xor()},
			{Name: "and", Device: netsim.And()},
		},
		"a, xor.a, and.a",
		"b, xor.b, and.b",
		"xor.out, s",
		"and.out, c",
	)
}

// FullAdder returns a 1 bit full adder made of two half adders.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder() (*netsim.Circuit, error) {
	ha0, err := HalfAdder()
	if err != nil {
		return nil, err
	}
	ha1, err := HalfAdder()
	if err != nil {
		return nil, err
	}
	return chip("FullAdder", "a, b, cin", "s, cout",
		netsim.Parts{
			{Name: "ha0", Device: ha0},
			{Name: "ha1", Device: ha1},
			{Name: "or", Device: netsim.Or()},
		},
		"a, ha0.a",
		"b, ha0.b",
		"ha0.s, ha1.a",
		"cin, ha1.b",
		"ha1.s, s",
		"ha0.c, or.a",
		"ha1.c, or.b",
		"or.out, cout",
	)
}

// RippleAdder returns a N-bits ripple carry adder made of N chained full
// adders.
//
//	Inputs: a[bits], b[bits], cin
//	Outputs: s[bits], cout
//	Function: s = (a + b + cin) mod 2^bits
//	          cout = (a + b + cin) >= 2^bits
//
// Once its inputs are set, the adder settles in at most bits+1 steps.
//
func RippleAdder(bits int) (*netsim.Circuit, error) {
	if bits < 1 {
		return nil, errors.Errorf("RippleAdder: invalid bus width %d", bits)
	}
	bs := strconv.Itoa(bits)
	name := "RippleAdder" + bs
	parts := make(netsim.Parts, bits)
	var nets []string
	for i := range parts {
		fa, err := FullAdder()
		if err != nil {
			return nil, err
		}
		fn := "fa" + strconv.Itoa(i)
		parts[i] = netsim.Part{Name: fn, Device: fa}
		a, b, s := netsim.BusPinName(pA, i), netsim.BusPinName(pB, i), netsim.BusPinName(pS, i)
		nets = append(nets, a+", "+fn+".a", b+", "+fn+".b", fn+".s, "+s)
		if i == 0 {
			nets = append(nets, "cin, "+fn+".cin")
		} else {
			nets = append(nets, "fa"+strconv.Itoa(i-1)+".cout, "+fn+".cin")
		}
	}
	nets = append(nets, "fa"+strconv.Itoa(bits-1)+".cout, cout")
	return chip(name, "a["+bs+"], b["+bs+"], cin", "s["+bs+"], cout", parts, nets...)
}
