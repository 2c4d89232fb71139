// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"log/slog"

	"github.com/pkg/errors"
)

// resolve computes the state of net n from the current pin states.
func (c *Circuit) resolve(n int) Signal {
	var (
		drivers int
		state   bool
	)
	drive := func(v bool) bool {
		if drivers > 0 && v != state {
			return false
		}
		drivers++
		state = v
		return true
	}
	nt := &c.nets[n]
	for _, r := range nt.devs {
		p := &c.parts[r.dev].Pins()[r.pin]
		if p.Role == Driven && !drive(p.State) {
			return Signal{Validity: Contested}
		}
	}
	for _, x := range nt.ext {
		if c.dirs[x] == DirIn && c.set[x] && !drive(c.pins[x].State) {
			return Signal{Validity: Contested}
		}
	}
	if drivers == 0 {
		return Signal{Validity: Floating}
	}
	return Signal{State: state}
}

// resolveMemo is resolve with per-step memoization.
func (c *Circuit) resolveMemo(n int) Signal {
	if !c.memoOK[n] {
		c.memo[n] = c.resolve(n)
		c.memoOK[n] = true
	}
	return c.memo[n]
}

// read returns the input value of pin p of part d for the current step.
func (c *Circuit) read(d, p int) (bool, error) {
	n := c.pinNet[d][p]
	if n < 0 {
		return false, &UnconnectedPinError{Part: c.names.label(d), Pin: c.parts[d].Pins()[p].Name}
	}
	switch s := c.resolveMemo(n); s.Validity {
	case Floating:
		return false, &FloatingNetError{Net: c.NetName(n)}
	case Contested:
		return false, &ContentionError{Net: c.NetName(n)}
	default:
		return s.State, nil
	}
}

// Step performs one evaluation step over the circuit's parts and reports
// whether any part changed the role of a pin or the state of a driven pin.
//
// All part inputs are resolved from the pin states as they were before the
// step, so the result does not depend on part order. Output boundary pins are
// likewise computed from pre-step net states.
//
// If an input cannot be resolved, or if a nested circuit fails to settle, Step
// returns an error and the circuit is left as it was before the call.
//
func (c *Circuit) Step() (changed bool, err error) {
	clear(c.memoOK)

	for d, dev := range c.parts {
		in := c.inputs[d]
		for p, pin := range dev.Pins() {
			in[p] = false
			if pin.Role != Undriven || !dev.reads(p) {
				continue
			}
			if in[p], err = c.read(d, p); err != nil {
				return false, err
			}
		}
	}

	copy(c.outs, c.pins)
	for x := range c.outs {
		if c.dirs[x] != DirOut {
			continue
		}
		o := &c.outs[x]
		n := c.extNet[x]
		if n < 0 {
			o.Role = Undriven
			continue
		}
		switch s := c.resolveMemo(n); s.Validity {
		case Contested:
			return false, &ContentionError{Net: c.NetName(n)}
		case Floating:
			o.Role = Undriven
		default:
			o.Role = Driven
			o.State = s.State
		}
	}

	saved := make([]deviceState, len(c.parts))
	for d, dev := range c.parts {
		saved[d] = dev.save()
	}
	for d, dev := range c.parts {
		if err = dev.Update(c.inputs[d]); err != nil {
			for i := 0; i <= d; i++ {
				c.parts[i].restore(saved[i])
			}
			return false, errors.Wrapf(err, "part %s", c.names.label(d))
		}
	}
	for d, dev := range c.parts {
		if outputsChanged(saved[d].pins, dev.Pins()) {
			changed = true
			break
		}
	}
	copy(c.pins, c.outs)
	return changed, nil
}

// Settle calls Step until it reports no change or until maxSteps steps have
// been performed. It returns the number of steps performed.
//
// If the circuit is still changing after maxSteps steps, Settle returns a
// *NonConvergentError. Other errors are those returned by Step, in which case
// the circuit is left in the state reached by the last successful step.
//
// Settle always performs at least one step: a maxSteps less than 1 is treated
// as 1.
//
func (c *Circuit) Settle(maxSteps int) (int, error) {
	if maxSteps < 1 {
		maxSteps = 1
	}
	for i := 0; i < maxSteps; i++ {
		changed, err := c.Step()
		if err != nil {
			c.log.Debug("step failed", slog.Int("step", i+1), slog.Any("err", err))
			return i, err
		}
		if !changed {
			c.log.Debug("settled", slog.Int("steps", i+1))
			return i + 1, nil
		}
	}
	c.log.Debug("not settled", slog.Int("steps", maxSteps))
	return maxSteps, &NonConvergentError{Steps: maxSteps}
}
