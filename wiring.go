// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"
	"strings"
)

// Ref references a part or a pin either by name or by index. Name takes
// precedence when not empty.
//
type Ref struct {
	Name  string
	Index int
}

// ByName returns a reference by name.
//
func ByName(name string) Ref { return Ref{Name: name} }

// ByIndex returns a reference by index.
//
func ByIndex(i int) Ref { return Ref{Index: i} }

func (r Ref) String() string {
	if r.Name != "" {
		return strconv.Quote(r.Name)
	}
	return "#" + strconv.Itoa(r.Index)
}

// A Conn is a net participant: either an external boundary pin of the circuit
// being built (External is set) or the pin of a part.
//
type Conn struct {
	External string
	Part     Ref
	Pin      Ref
}

// Ext returns a connection to an external boundary pin.
//
func Ext(name string) Conn { return Conn{External: name} }

// PartPin returns a connection to the named pin of the named part.
//
func PartPin(part, pin string) Conn { return Conn{Part: ByName(part), Pin: ByName(pin)} }

// Connect returns a connection to a part's pin.
//
func Connect(part, pin Ref) Conn { return Conn{Part: part, Pin: pin} }

// String returns c in the shorthand syntax accepted by ParseNet.
//
func (c Conn) String() string {
	if c.External != "" {
		return c.External
	}
	return refString(c.Part) + "." + refString(c.Pin)
}

func refString(r Ref) string {
	if r.Name != "" {
		return r.Name
	}
	return strconv.Itoa(r.Index)
}

// NetSpec describes a net: an optional name used in diagnostics and the set
// of pins it joins. The order of Conns does not change simulation results.
//
type NetSpec struct {
	Name  string
	Conns []Conn
}

// String returns s in the shorthand syntax accepted by ParseNet.
//
func (s NetSpec) String() string {
	var b strings.Builder
	for i, c := range s.Conns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// Nets is a net list.
//
type Nets []NetSpec

// A Part is a device and its optional unique name within a circuit.
//
type Part struct {
	Name   string
	Device Device
}

// Parts is an ordered list of parts.
//
type Parts []Part

// Direction is the direction of an external boundary pin as seen from inside
// the circuit.
//
type Direction uint8

// Directions.
//
const (
	DirIn Direction = iota
	DirOut
)

func (d Direction) String() string {
	if d == DirOut {
		return "out"
	}
	return "in"
}

// MarshalText implements encoding.TextMarshaler.
//
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "in":
		*d = DirIn
	case "out":
		*d = DirOut
	default:
		return &parseError{in: string(b), pos: -1, msg: "invalid pin direction"}
	}
	return nil
}

// ExternalPin declares an external boundary pin.
//
type ExternalPin struct {
	Name string
	Dir  Direction
}

// ExternalPins is an ordered list of boundary pins.
//
type ExternalPins []ExternalPin

// BusPinName returns the name of pin i of the named bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}
