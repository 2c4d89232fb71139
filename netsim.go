// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "strconv"

// Role tells whether a pin writes to its net (Driven) or reads from it
// (Undriven). A device may change the role of its pins between steps.
//
type Role uint8

// Pin roles.
//
const (
	Undriven Role = iota
	Driven
)

func (r Role) String() string {
	if r == Driven {
		return "driven"
	}
	return "undriven"
}

// A Pin is a connection point on a device. Pins are owned by their device and
// identified by their index in the device's pin list. Name is only used to
// resolve pin references at circuit construction.
//
type Pin struct {
	Name  string
	State bool
	Role  Role
}

// Validity qualifies a resolved signal.
//
type Validity uint8

// Signal validity values.
//
const (
	Valid     Validity = iota
	Floating           // no driver
	Contested          // drivers disagree
)

var validityNames = [...]string{"valid", "floating", "contested"}

func (v Validity) String() string {
	if int(v) < len(validityNames) {
		return validityNames[v]
	}
	return "Validity(" + strconv.Itoa(int(v)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
//
func (v Validity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (v *Validity) UnmarshalText(b []byte) error {
	for i, n := range validityNames {
		if n == string(b) {
			*v = Validity(i)
			return nil
		}
	}
	return &parseError{in: string(b), pos: -1, msg: "invalid validity"}
}

// Signal is the resolved state of a net or pin. State is only meaningful if
// Validity is Valid, otherwise it is false.
//
type Signal struct {
	State    bool     `json:"state" yaml:"state"`
	Validity Validity `json:"validity" yaml:"validity"`
}

// Valid returns true if s can be consumed as an input.
//
func (s Signal) Valid() bool { return s.Validity == Valid }

// String returns "1" or "0" for valid signals, "Z" for floating signals and "X"
// for contested ones.
//
func (s Signal) String() string {
	switch s.Validity {
	case Valid:
		if s.State {
			return "1"
		}
		return "0"
	case Floating:
		return "Z"
	}
	return "X"
}

// Device is the unit of behavior in a circuit. The set of devices is closed:
// primitive gates (*Gate) and composite circuits (*Circuit).
//
type Device interface {
	// Pins returns the device's ordered pin list. The returned slice is owned
	// by the device and must not be modified.
	Pins() []Pin
	// Update performs one evaluation step. For every Undriven input pin i,
	// in[i] holds the resolved state of the net connected to it. Other entries
	// must be ignored.
	Update(in []bool) error

	// reads reports whether pin i is an input pin. Undriven output pins are
	// released: they neither drive nor read their net.
	reads(i int) bool
	save() deviceState
	restore(deviceState)
}

// deviceState is a deep copy of a device's mutable state.
type deviceState struct {
	pins []Pin
	clk  bool          // gates: previous clock
	set  []bool        // circuits: boundary inputs driven from outside
	sub  []deviceState // circuits: sub-devices
}

// PinIndex returns the index of the named pin in d's pin list.
//
func PinIndex(d Device, name string) (int, bool) {
	for i, p := range d.Pins() {
		if p.Name == name {
			return i, true
		}
	}
	return -1, false
}

// outputsChanged reports whether a pin changed role or a Driven pin changed
// state between a and b. Input pins only mirror their nets and are ignored.
func outputsChanged(a, b []Pin) bool {
	for i := range b {
		if a[i].Role != b[i].Role || b[i].Role == Driven && a[i].State != b[i].State {
			return true
		}
	}
	return false
}
