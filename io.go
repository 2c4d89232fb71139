// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "github.com/pkg/errors"

// SetBus sets the input pins bus[0] to bus[width-1] of c to the bits of v,
// least significant bit first.
//
func SetBus(c *Circuit, bus string, width int, v uint64) error {
	for i := 0; i < width; i++ {
		if err := c.SetExternalInput(BusPinName(bus, i), v&(1<<uint(i)) != 0); err != nil {
			return err
		}
	}
	return nil
}

// Bus returns the value of the boundary pins bus[0] to bus[width-1] of c, least
// significant bit first. All pins must be valid.
//
func Bus(c *Circuit, bus string, width int) (uint64, error) {
	var v uint64
	for i := 0; i < width; i++ {
		name := BusPinName(bus, i)
		s, err := c.External(name)
		if err != nil {
			return 0, err
		}
		if !s.Valid() {
			return 0, errors.Errorf("pin %s is %s", name, s.Validity)
		}
		if s.State {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

// BusWidth returns the number of consecutive boundary pins named bus[0],
// bus[1], etc. in c.
//
func BusWidth(c *Circuit, bus string) int {
	n := 0
	for {
		if _, ok := c.ext.lookup(ByName(BusPinName(bus, n))); !ok {
			return n
		}
		n++
	}
}
