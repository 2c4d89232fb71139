// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

// DefaultMaxSteps is the default iteration cap used when a Circuit settles
// itself as a sub-device of another circuit.
//
const DefaultMaxSteps = 50

type pinRef struct {
	dev, pin int
}

type net struct {
	name string
	devs []pinRef // device pins
	ext  []int    // boundary pins
}

// A Circuit is a composite device made of sub-devices (parts) joined by nets
// and exposing external boundary pins.
//
// From the outside, input boundary pins are Undriven and output boundary pins
// are Driven, unless the internal net connected to an output floats, in which
// case the output is released (Undriven) until driven again.
//
// The topology of a circuit never changes after NewCircuit returns. All
// references are resolved to indices at construction.
//
type Circuit struct {
	parts []Device
	names *nameTable // part names
	ext   *nameTable // boundary pin names
	pins  []Pin      // boundary pins, device view
	dirs  []Direction
	set   []bool // input set by the host or parent circuit

	nets   []net
	pinNet [][]int // [part][pin] -> net index or -1
	extNet []int   // boundary pin -> net index or -1

	// step scratch
	memo   []Signal
	memoOK []bool
	inputs [][]bool
	outs   []Pin

	maxSteps int
	log      *slog.Logger
}

// An Option configures a Circuit.
//
type Option func(*Circuit)

// MaxSteps sets the iteration cap used by Update when the circuit is nested in
// another circuit. Values less than 1 are ignored.
//
func MaxSteps(n int) Option {
	return func(c *Circuit) {
		if n > 0 {
			c.maxSteps = n
		}
	}
}

// WithLogger sets the logger used to trace evaluation at debug level.
//
func WithLogger(l *slog.Logger) Option {
	return func(c *Circuit) {
		if l != nil {
			c.log = l
		}
	}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// NewCircuit builds a new circuit from the given parts, external boundary pins
// and net list. All references are validated eagerly and the first error
// found is returned (see the Error types in this package).
//
// Part names are optional. Unnamed parts can only be referenced by index.
// Pins that are not part of any net are left unconnected. Reading an
// unconnected pin is an evaluation error.
//
func NewCircuit(parts Parts, pins ExternalPins, nets Nets, opts ...Option) (*Circuit, error) {
	c := &Circuit{
		names:    newNameTable(len(parts)),
		ext:      newNameTable(len(pins)),
		maxSteps: DefaultMaxSteps,
		log:      discard,
	}
	for _, o := range opts {
		o(c)
	}

	for i, p := range parts {
		if p.Device == nil {
			return nil, errors.Errorf("part %s: nil device", netLabel(i, p.Name))
		}
		if !c.names.add(p.Name) {
			return nil, &DuplicateNameError{Kind: "part", Name: p.Name}
		}
		c.parts = append(c.parts, p.Device)
	}
	for i, p := range pins {
		if p.Name == "" {
			return nil, errors.Errorf("external pin #%d has no name", i)
		}
		if !c.ext.add(p.Name) {
			return nil, &DuplicateNameError{Kind: "external pin", Name: p.Name}
		}
		role := Undriven
		if p.Dir == DirOut {
			role = Driven
		}
		c.pins = append(c.pins, Pin{Name: p.Name, Role: role})
		c.dirs = append(c.dirs, p.Dir)
	}
	c.set = make([]bool, len(c.pins))

	if err := c.wire(nets); err != nil {
		return nil, err
	}

	c.memo = make([]Signal, len(c.nets))
	c.memoOK = make([]bool, len(c.nets))
	c.inputs = make([][]bool, len(c.parts))
	for i, d := range c.parts {
		c.inputs[i] = make([]bool, len(d.Pins()))
	}
	c.outs = make([]Pin, len(c.pins))
	return c, nil
}

func resolvePin(d Device, r Ref) (int, bool) {
	if r.Name != "" {
		return PinIndex(d, r.Name)
	}
	if r.Index < 0 || r.Index >= len(d.Pins()) {
		return -1, false
	}
	return r.Index, true
}

// wire resolves net specifications and builds the pin to net lookup tables.
func (c *Circuit) wire(specs Nets) error {
	c.pinNet = make([][]int, len(c.parts))
	for i, d := range c.parts {
		c.pinNet[i] = fill(make([]int, len(d.Pins())), -1)
	}
	c.extNet = fill(make([]int, len(c.pins)), -1)

	// resolve everything first so that unknown references are reported
	// before connection conflicts.
	c.nets = make([]net, len(specs))
	for n, s := range specs {
		label := netLabel(n, s.Name)
		nt := net{name: s.Name}
		for _, cn := range s.Conns {
			if cn.External != "" {
				x, ok := c.ext.lookup(ByName(cn.External))
				if !ok {
					return &UnknownExternalConnectionError{Net: label, Name: cn.External}
				}
				nt.ext = append(nt.ext, x)
				continue
			}
			d, ok := c.names.lookup(cn.Part)
			if !ok {
				return &UnknownComponentError{Net: label, Part: cn.Part}
			}
			p, ok := resolvePin(c.parts[d], cn.Pin)
			if !ok {
				return &UnknownPinError{Net: label, Part: c.names.label(d), Pin: cn.Pin}
			}
			nt.devs = append(nt.devs, pinRef{d, p})
		}
		c.nets[n] = nt
	}

	for n := range c.nets {
		nt := &c.nets[n]
		devs := nt.devs[:0]
		for _, r := range nt.devs {
			switch prev := c.pinNet[r.dev][r.pin]; prev {
			case -1:
				c.pinNet[r.dev][r.pin] = n
				devs = append(devs, r)
			case n:
				// listed twice in the same net
			default:
				return &DuplicateConnectionError{
					Pin:  c.names.label(r.dev) + "." + c.parts[r.dev].Pins()[r.pin].Name,
					Nets: [2]string{c.NetName(prev), c.NetName(n)},
				}
			}
		}
		nt.devs = devs
		ext := nt.ext[:0]
		for _, x := range nt.ext {
			switch prev := c.extNet[x]; prev {
			case -1:
				c.extNet[x] = n
				ext = append(ext, x)
			case n:
			default:
				return &DuplicateConnectionError{
					Pin:  c.pins[x].Name,
					Nets: [2]string{c.NetName(prev), c.NetName(n)},
				}
			}
		}
		nt.ext = ext
	}
	return nil
}

func fill(s []int, v int) []int {
	for i := range s {
		s[i] = v
	}
	return s
}

// Pins implements Device.
//
func (c *Circuit) Pins() []Pin { return c.pins }

// Update implements Device. It drives the input boundary pins from in, then
// settles the circuit. A circuit that fails to settle within its iteration cap
// (see MaxSteps) returns a *NonConvergentError.
//
func (c *Circuit) Update(in []bool) error {
	for i := range c.pins {
		if i >= len(in) {
			break
		}
		if c.dirs[i] == DirIn {
			c.pins[i].State = in[i]
			c.set[i] = true
		}
	}
	_, err := c.Settle(c.maxSteps)
	return err
}

func (c *Circuit) reads(i int) bool { return c.dirs[i] == DirIn }

func (c *Circuit) save() deviceState {
	s := deviceState{
		pins: append([]Pin(nil), c.pins...),
		set:  append([]bool(nil), c.set...),
		sub:  make([]deviceState, len(c.parts)),
	}
	for i, d := range c.parts {
		s.sub[i] = d.save()
	}
	return s
}

func (c *Circuit) restore(s deviceState) {
	copy(c.pins, s.pins)
	copy(c.set, s.set)
	for i, d := range c.parts {
		d.restore(s.sub[i])
	}
}

// SetExternalInput sets the state of the named input boundary pin. The pin then
// drives its net until the circuit is discarded.
//
func (c *Circuit) SetExternalInput(name string, v bool) error {
	i, ok := c.ext.lookup(ByName(name))
	if !ok {
		return &UnknownExternalConnectionError{Name: name}
	}
	if c.dirs[i] != DirIn {
		return &DirectionError{Name: name}
	}
	c.pins[i].State = v
	c.set[i] = true
	return nil
}
