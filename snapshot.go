// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// Queries in this file have no side effects and resolve nets from the current
// pin states.

// NetCount returns the number of nets in the circuit.
//
func (c *Circuit) NetCount() int { return len(c.nets) }

// NetName returns the name of net n, or "#n" if the net is unnamed.
//
func (c *Circuit) NetName(n int) string { return netLabel(n, c.nets[n].name) }

// NetIndex returns the index of the named net.
//
func (c *Circuit) NetIndex(name string) (int, bool) {
	for i := range c.nets {
		if c.nets[i].name == name {
			return i, true
		}
	}
	return -1, false
}

// NetState returns the resolved state of net n. It panics if n is not in the
// range [0, NetCount()).
//
func (c *Circuit) NetState(n int) Signal { return c.resolve(n) }

// PartCount returns the number of parts in the circuit.
//
func (c *Circuit) PartCount() int { return len(c.parts) }

// PartName returns the name of part i, or "#i" if the part is unnamed.
//
func (c *Circuit) PartName(i int) string { return c.names.label(i) }

// Part returns the part referenced by r.
//
func (c *Circuit) Part(r Ref) (Device, bool) {
	i, ok := c.names.lookup(r)
	if !ok {
		return nil, false
	}
	return c.parts[i], true
}

// PinNet returns the index of the net connected to pin p of part d, or -1 if
// the pin is unconnected. Like NetState, it panics if d or p is out of range.
//
func (c *Circuit) PinNet(d, p int) int { return c.pinNet[d][p] }

// PinState returns the state of a part's pin. For a connected pin, this is the
// state of its net. An unconnected pin is floating unless it is Driven, in
// which case its own state is returned.
//
func (c *Circuit) PinState(part, pin Ref) (Signal, error) {
	d, ok := c.names.lookup(part)
	if !ok {
		return Signal{}, &UnknownComponentError{Part: part}
	}
	p, ok := resolvePin(c.parts[d], pin)
	if !ok {
		return Signal{}, &UnknownPinError{Part: c.names.label(d), Pin: pin}
	}
	if n := c.pinNet[d][p]; n >= 0 {
		return c.resolve(n), nil
	}
	if pp := c.parts[d].Pins()[p]; pp.Role == Driven {
		return Signal{State: pp.State}, nil
	}
	return Signal{Validity: Floating}, nil
}

// External returns the state of the named boundary pin as seen from inside the
// circuit.
//
func (c *Circuit) External(name string) (Signal, error) {
	i, ok := c.ext.lookup(ByName(name))
	if !ok {
		return Signal{}, &UnknownExternalConnectionError{Name: name}
	}
	return c.external(i), nil
}

func (c *Circuit) external(i int) Signal {
	if n := c.extNet[i]; n >= 0 {
		return c.resolve(n)
	}
	if c.dirs[i] == DirIn && c.set[i] {
		return Signal{State: c.pins[i].State}
	}
	return Signal{Validity: Floating}
}

// ExternalPins returns the circuit's boundary pin declarations.
//
func (c *Circuit) ExternalPins() ExternalPins {
	ps := make(ExternalPins, len(c.pins))
	for i := range c.pins {
		ps[i] = ExternalPin{Name: c.pins[i].Name, Dir: c.dirs[i]}
	}
	return ps
}

// NetValue is the state of a net in a Snapshot.
//
type NetValue struct {
	Name   string `json:"name" yaml:"name"`
	Signal `yaml:",inline"`
}

// PinValue is the state of a boundary pin in a Snapshot.
//
type PinValue struct {
	Name   string    `json:"name" yaml:"name"`
	Dir    Direction `json:"dir" yaml:"dir"`
	Signal `yaml:",inline"`
}

// Snapshot is a copy of the state of every net and boundary pin of a circuit.
//
type Snapshot struct {
	Nets []NetValue `json:"nets" yaml:"nets"`
	Pins []PinValue `json:"pins" yaml:"pins"`
}

// Snapshot returns the current state of the circuit.
//
func (c *Circuit) Snapshot() Snapshot {
	s := Snapshot{
		Nets: make([]NetValue, len(c.nets)),
		Pins: make([]PinValue, len(c.pins)),
	}
	for n := range c.nets {
		s.Nets[n] = NetValue{Name: c.NetName(n), Signal: c.resolve(n)}
	}
	for i := range c.pins {
		s.Pins[i] = PinValue{Name: c.pins[i].Name, Dir: c.dirs[i], Signal: c.external(i)}
	}
	return s
}

// Equal returns true if s and o hold the same values.
//
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.Nets) != len(o.Nets) || len(s.Pins) != len(o.Pins) {
		return false
	}
	for i := range s.Nets {
		if s.Nets[i] != o.Nets[i] {
			return false
		}
	}
	for i := range s.Pins {
		if s.Pins[i] != o.Pins[i] {
			return false
		}
	}
	return true
}
