// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// common pin names
const (
	pinA   = "a"
	pinB   = "b"
	pinIn  = "in"
	pinOut = "out"
	pinEn  = "en"
	pinD   = "d"
	pinClk = "clk"
	pinQ   = "q"
	pinNQ  = "nq"
)

// Kind identifies the behavior of a primitive gate.
//
type Kind uint8

// Gate kinds.
//
const (
	KindAnd Kind = iota
	KindNand
	KindOr
	KindNor
	KindXor
	KindXnor
	KindNot
	KindBuffer
	KindTieLow
	KindTieHigh
	KindDLatch
	KindTriState
)

var kindNames = [...]string{"AND", "NAND", "OR", "NOR", "XOR", "XNOR", "NOT", "BUFFER", "TIE0", "TIE1", "DLATCH", "TRISTATE"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "GATE"
}

// A Gate is a primitive device. Input pins are Undriven and output pins are
// Driven, except for the output of a TriState buffer which is Undriven while
// disabled.
//
// All outputs start Driven and low.
//
type Gate struct {
	kind Kind
	pins []Pin
	nIn  int                  // pins[:nIn] are inputs
	fn   func(a, b bool) bool // two input gates

	prevClk bool // DLatch
}

func newGate(k Kind, in []string, out []string) *Gate {
	g := &Gate{kind: k, pins: make([]Pin, 0, len(in)+len(out)), nIn: len(in)}
	for _, n := range in {
		g.pins = append(g.pins, Pin{Name: n, Role: Undriven})
	}
	for _, n := range out {
		g.pins = append(g.pins, Pin{Name: n, Role: Driven})
	}
	return g
}

var (
	gateIn  = []string{pinA, pinB}
	gateOut = []string{pinOut}
)

func newGate2(k Kind, fn func(a, b bool) bool) *Gate {
	g := newGate(k, gateIn, gateOut)
	g.fn = fn
	return g
}

// And returns an AND gate.
//
//	Pins: a, b, out
//	Function: out = a && b
//
func And() *Gate { return newGate2(KindAnd, func(a, b bool) bool { return a && b }) }

// Nand returns a NAND gate.
//
//	Pins: a, b, out
//	Function: out = !(a && b)
//
func Nand() *Gate { return newGate2(KindNand, func(a, b bool) bool { return !(a && b) }) }

// Or returns an OR gate.
//
//	Pins: a, b, out
//	Function: out = a || b
//
func Or() *Gate { return newGate2(KindOr, func(a, b bool) bool { return a || b }) }

// Nor returns a NOR gate.
//
//	Pins: a, b, out
//	Function: out = !(a || b)
//
func Nor() *Gate { return newGate2(KindNor, func(a, b bool) bool { return !(a || b) }) }

// Xor returns a XOR gate.
//
//	Pins: a, b, out
//	Function: out = a != b
//
func Xor() *Gate { return newGate2(KindXor, func(a, b bool) bool { return a != b }) }

// Xnor returns a XNOR gate.
//
//	Pins: a, b, out
//	Function: out = a == b
//
func Xnor() *Gate { return newGate2(KindXnor, func(a, b bool) bool { return a == b }) }

// Not returns a NOT gate.
//
//	Pins: in, out
//	Function: out = !in
//
func Not() *Gate { return newGate(KindNot, []string{pinIn}, gateOut) }

// Buffer returns a non-inverting buffer.
//
//	Pins: in, out
//	Function: out = in
//
func Buffer() *Gate { return newGate(KindBuffer, []string{pinIn}, gateOut) }

// Tie returns a constant driver.
//
//	Pins: out
//	Function: out = v
//
func Tie(v bool) *Gate {
	if v {
		g := newGate(KindTieHigh, nil, gateOut)
		g.pins[0].State = true
		return g
	}
	return newGate(KindTieLow, nil, gateOut)
}

// DLatch returns a rising edge triggered data latch.
//
//	Pins: d, clk, q, nq
//	Function: on a low to high transition of clk, q = d and nq = !d
//
// The latch remembers the clock state seen on its previous update. Its initial
// output is q = 0, nq = 1.
//
func DLatch() *Gate {
	g := newGate(KindDLatch, []string{pinD, pinClk}, []string{pinQ, pinNQ})
	g.pins[3].State = true
	return g
}

// TriState returns a tri-state buffer for driving shared buses.
//
//	Pins: in, en, out
//	Function: if en { out = in } else { out is released (Undriven) }
//
// A released output neither drives nor reads its net, and keeps its last
// driven state.
//
func TriState() *Gate {
	return newGate(KindTriState, []string{pinIn, pinEn}, gateOut)
}

// Kind returns the gate's kind.
//
func (g *Gate) Kind() Kind { return g.kind }

// Pins implements Device.
//
func (g *Gate) Pins() []Pin { return g.pins }

// Update implements Device.
//
func (g *Gate) Update(in []bool) error {
	p := g.pins
	for i := 0; i < g.nIn && i < len(in); i++ {
		p[i].State = in[i]
	}
	switch g.kind {
	case KindAnd, KindNand, KindOr, KindNor, KindXor, KindXnor:
		p[2].State = g.fn(p[0].State, p[1].State)
	case KindNot:
		p[1].State = !p[0].State
	case KindBuffer:
		p[1].State = p[0].State
	case KindTieLow:
		p[0].State = false
	case KindTieHigh:
		p[0].State = true
	case KindDLatch:
		clk := p[1].State
		// raising edge?
		if clk && !g.prevClk {
			p[2].State = p[0].State
			p[3].State = !p[0].State
		}
		g.prevClk = clk
	case KindTriState:
		if p[1].State {
			p[2].Role = Driven
			p[2].State = p[0].State
		} else {
			p[2].Role = Undriven
		}
	}
	return nil
}

func (g *Gate) reads(i int) bool { return i < g.nIn }

func (g *Gate) save() deviceState {
	return deviceState{pins: append([]Pin(nil), g.pins...), clk: g.prevClk}
}

func (g *Gate) restore(s deviceState) {
	copy(g.pins, s.pins)
	g.prevClk = s.clk
}
