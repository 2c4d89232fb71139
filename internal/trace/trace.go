// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package trace records the state of a circuit after every evaluation step.
//
package trace

import (
	"github.com/db47h/netsim"
)

// Frame is the state of a circuit after a given step. Step 0 is the state
// before the first step.
//
type Frame struct {
	Step    int  `json:"step" cbor:"1,keyasint"`
	Changed bool `json:"changed" cbor:"2,keyasint"`

	netsim.Snapshot `cbor:"3,keyasint"`
}

// Trace is a sequence of frames.
//
type Trace struct {
	Frames []Frame `json:"frames" cbor:"1,keyasint"`
}

// Record settles c like c.Settle(maxSteps) and returns every intermediate
// state. The returned trace always holds at least the initial state, and the
// state after each successful step.
//
func Record(c *netsim.Circuit, maxSteps int) (*Trace, error) {
	if maxSteps < 1 {
		maxSteps = 1
	}
	t := &Trace{Frames: []Frame{{Snapshot: c.Snapshot()}}}
	for i := 1; i <= maxSteps; i++ {
		changed, err := c.Step()
		if err != nil {
			return t, err
		}
		t.Frames = append(t.Frames, Frame{Step: i, Changed: changed, Snapshot: c.Snapshot()})
		if !changed {
			return t, nil
		}
	}
	return t, &netsim.NonConvergentError{Steps: maxSteps}
}

// Steps returns the number of steps recorded.
//
func (t *Trace) Steps() int { return len(t.Frames) - 1 }

// Last returns the last recorded frame.
//
func (t *Trace) Last() Frame { return t.Frames[len(t.Frames)-1] }

// Net returns the signal of the named net in every frame.
//
func (t *Trace) Net(name string) ([]netsim.Signal, bool) {
	if len(t.Frames) == 0 {
		return nil, false
	}
	idx := -1
	for i, n := range t.Frames[0].Nets {
		if n.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	s := make([]netsim.Signal, len(t.Frames))
	for i := range t.Frames {
		s[i] = t.Frames[i].Nets[idx].Signal
	}
	return s, true
}

// Pin returns the signal of the named boundary pin in every frame.
//
func (t *Trace) Pin(name string) ([]netsim.Signal, bool) {
	if len(t.Frames) == 0 {
		return nil, false
	}
	idx := -1
	for i, p := range t.Frames[0].Pins {
		if p.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	s := make([]netsim.Signal, len(t.Frames))
	for i := range t.Frames {
		s[i] = t.Frames[i].Pins[idx].Signal
	}
	return s, true
}
