// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"fmt"
	"strconv"
)

func netLabel(n int, name string) string {
	if name != "" {
		return name
	}
	return "#" + strconv.Itoa(n)
}

// Construction errors. These are authoring mistakes in a circuit description
// and are returned by NewCircuit before any evaluation takes place.

// DuplicateNameError reports a part or external pin name used twice.
//
type DuplicateNameError struct {
	Kind string // "part" or "external pin"
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s name %q is used more than once", e.Kind, e.Name)
}

// UnknownComponentError reports a net referencing a part that does not exist.
// Net is empty when the error is returned by a query.
//
type UnknownComponentError struct {
	Net  string
	Part Ref
}

func (e *UnknownComponentError) Error() string {
	if e.Net == "" {
		return fmt.Sprintf("unknown part %s", e.Part)
	}
	return fmt.Sprintf("net %s: unknown part %s", e.Net, e.Part)
}

// UnknownPinError reports a net referencing a pin that does not exist on an
// existing part.
//
type UnknownPinError struct {
	Net  string
	Part string
	Pin  Ref
}

func (e *UnknownPinError) Error() string {
	if e.Net == "" {
		return fmt.Sprintf("part %s has no pin %s", e.Part, e.Pin)
	}
	return fmt.Sprintf("net %s: part %s has no pin %s", e.Net, e.Part, e.Pin)
}

// UnknownExternalConnectionError reports a reference to an external boundary
// pin that does not exist. Net is empty when the error is returned by
// SetExternalInput.
//
type UnknownExternalConnectionError struct {
	Net  string
	Name string
}

func (e *UnknownExternalConnectionError) Error() string {
	if e.Net == "" {
		return fmt.Sprintf("unknown external pin %q", e.Name)
	}
	return fmt.Sprintf("net %s: unknown external pin %q", e.Net, e.Name)
}

// DuplicateConnectionError reports a pin that would join two different nets.
//
type DuplicateConnectionError struct {
	Pin  string
	Nets [2]string
}

func (e *DuplicateConnectionError) Error() string {
	return fmt.Sprintf("pin %s connected to both net %s and net %s", e.Pin, e.Nets[0], e.Nets[1])
}

// DirectionError is returned when setting the state of an external pin that is
// not an input.
//
type DirectionError struct {
	Name string
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("external pin %q is not an input", e.Name)
}

// Evaluation errors. Any of these aborts the current step without committing
// anything.

// UnconnectedPinError reports an Undriven pin with no net being read.
//
type UnconnectedPinError struct {
	Part string
	Pin  string
}

func (e *UnconnectedPinError) Error() string {
	return fmt.Sprintf("pin %s.%s is read but not connected to any net", e.Part, e.Pin)
}

// ContentionError reports a net whose drivers disagree.
//
type ContentionError struct {
	Net string
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("net %s is contested", e.Net)
}

// FloatingNetError reports a net with no driver being read.
//
type FloatingNetError struct {
	Net string
}

func (e *FloatingNetError) Error() string {
	return fmt.Sprintf("net %s is floating", e.Net)
}

// NonConvergentError is returned by Settle when the circuit did not reach a
// stable state within the allowed number of steps.
//
type NonConvergentError struct {
	Steps int
}

func (e *NonConvergentError) Error() string {
	return fmt.Sprintf("circuit did not settle after %d steps", e.Steps)
}
