// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package nettest provides utility functions for testing circuits.
//
package nettest

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/netsim"
)

// MaxSteps is the iteration cap used when settling circuits under test.
//
var MaxSteps = 100

// exhaustive testing is done for up to maxBits inputs.
const maxBits = 12

type pinout struct {
	in, out []int
}

func getPinout(d netsim.Device) pinout {
	var p pinout
	for i, pin := range d.Pins() {
		if pin.Role == netsim.Undriven {
			p.in = append(p.in, i)
		} else {
			p.out = append(p.out, i)
		}
	}
	return p
}

func inName(i int) string { return "in" + strconv.Itoa(i) }
func outName(d, i int) string { return "out" + strconv.Itoa(d) + "_" + strconv.Itoa(i) }

// harness wraps devices with the same pinout into a circuit where they share
// their inputs. Each output k of device d is exposed as "out<d>_<k>".
type harness struct {
	c    *netsim.Circuit
	in   []bool
	outs int
}

func newHarness(tb testing.TB, ds ...netsim.Device) *harness {
	tb.Helper()
	p := getPinout(ds[0])
	var (
		parts netsim.Parts
		pins  netsim.ExternalPins
		nets  = make(netsim.Nets, len(p.in))
	)
	for i := range p.in {
		pins = append(pins, netsim.ExternalPin{Name: inName(i), Dir: netsim.DirIn})
		nets[i].Conns = []netsim.Conn{netsim.Ext(inName(i))}
	}
	for d, dev := range ds {
		dp := getPinout(dev)
		if len(dp.in) != len(p.in) || len(dp.out) != len(p.out) {
			tb.Fatalf("device #%d has %d inputs and %d outputs, expected %d and %d", d, len(dp.in), len(dp.out), len(p.in), len(p.out))
		}
		parts = append(parts, netsim.Part{Device: dev})
		for i, pin := range dp.in {
			nets[i].Conns = append(nets[i].Conns, netsim.Connect(netsim.ByIndex(d), netsim.ByIndex(pin)))
		}
		for i, pin := range dp.out {
			pins = append(pins, netsim.ExternalPin{Name: outName(d, i), Dir: netsim.DirOut})
			nets = append(nets, netsim.NetSpec{Conns: []netsim.Conn{netsim.Connect(netsim.ByIndex(d), netsim.ByIndex(pin)), netsim.Ext(outName(d, i))}})
		}
	}
	c, err := netsim.NewCircuit(parts, pins, nets)
	if err != nil {
		tb.Fatal(err)
	}
	return &harness{c: c, in: make([]bool, len(p.in)), outs: len(p.out)}
}

func (h *harness) set(tb testing.TB) {
	tb.Helper()
	for i, v := range h.in {
		if err := h.c.SetExternalInput(inName(i), v); err != nil {
			tb.Fatal(err)
		}
	}
	if _, err := h.c.Settle(MaxSteps); err != nil {
		tb.Fatalf("%s: %v", h.inputString(), err)
	}
}

func (h *harness) output(tb testing.TB, d, i int) netsim.Signal {
	tb.Helper()
	s, err := h.c.External(outName(d, i))
	if err != nil {
		tb.Fatal(err)
	}
	return s
}

func (h *harness) inputString() string {
	var b strings.Builder
	for i, v := range h.in {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(inName(i))
		if v {
			b.WriteString("=1")
		} else {
			b.WriteString("=0")
		}
	}
	return b.String()
}

// inputs iterates over input vectors: all of them in ascending order if there
// are at most 12 inputs, random ones otherwise. f is called after h.in has been
// updated.
func (h *harness) inputs(tb testing.TB, f func()) {
	n := len(h.in)
	if n <= maxBits {
		for v := 0; v < 1<<uint(n); v++ {
			for i := range h.in {
				h.in[i] = v&(1<<uint(i)) != 0
			}
			f()
		}
		return
	}
	seed := time.Now().UnixNano()
	tb.Logf("random testing with seed %d", seed)
	r := rand.New(rand.NewSource(seed))
	for k := 0; k < 1<<maxBits; k++ {
		for i := range h.in {
			h.in[i] = r.Int63()&1 != 0
		}
		f()
	}
}

// Compare takes two devices and compares their outputs given the same inputs.
// Both devices must have the same number of input and output pins. Pins are
// matched by position, not by name.
//
// Sequential devices are compared along the same input sequence.
//
func Compare(tb testing.TB, d1, d2 netsim.Device) {
	tb.Helper()
	h := newHarness(tb, d1, d2)
	start := time.Now()
	count := 0
	h.inputs(tb, func() {
		h.set(tb)
		for o := 0; o < h.outs; o++ {
			s1, s2 := h.output(tb, 0, o), h.output(tb, 1, o)
			if s1 != s2 {
				tb.Fatalf("%s: output #%d: expected %v, got %v", h.inputString(), o, s1, s2)
			}
		}
		count++
	})
	tb.Logf("%d input vectors in %v", count, time.Since(start))
}

// Check compares the outputs of d with those of the reference function f. f
// receives the values of d's input pins in order and must return the expected
// output values.
//
func Check(tb testing.TB, d netsim.Device, f func(in []bool) []bool) {
	tb.Helper()
	h := newHarness(tb, d)
	h.inputs(tb, func() {
		h.set(tb)
		exp := f(h.in)
		if len(exp) != h.outs {
			tb.Fatalf("reference function returned %d values, expected %d", len(exp), h.outs)
		}
		for o, e := range exp {
			if s := h.output(tb, 0, o); s != (netsim.Signal{State: e}) {
				tb.Fatalf("%s: output #%d: expected %v, got %v", h.inputString(), o, e, s)
			}
		}
	})
}
