// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/netlib"
	"github.com/db47h/netsim/nettest"
)

func set(t *testing.T, c *netsim.Circuit, vs map[string]bool) int {
	t.Helper()
	for k, v := range vs {
		if err := c.SetExternalInput(k, v); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Settle(netsim.DefaultMaxSteps)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func get(t *testing.T, c *netsim.Circuit, name string) bool {
	t.Helper()
	s, err := c.External(name)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Valid() {
		t.Fatalf("%s is %v", name, s.Validity)
	}
	return s.State
}

func TestNorLatch(t *testing.T) {
	c, err := netlib.NorLatch()
	if err != nil {
		t.Fatal(err)
	}
	if !get(t, c, "Q") || get(t, c, "Q#") {
		t.Fatal("latch should start in the set state")
	}
	td := []struct {
		s, r bool
		q    bool
	}{
		{false, false, true},
		{false, true, false},
		{false, false, false},
		{true, false, true},
		{false, false, true},
	}
	for i, d := range td {
		if n := set(t, c, map[string]bool{"S": d.s, "R": d.r}); n > 3 {
			t.Errorf("#%d: settled in %d steps", i, n)
		}
		if q, nq := get(t, c, "Q"), get(t, c, "Q#"); q != d.q || nq != !d.q {
			t.Errorf("#%d S=%v R=%v: expected Q=%v, got Q=%v Q#=%v", i, d.s, d.r, d.q, q, nq)
		}
	}
}

func TestDLevelLatch(t *testing.T) {
	c, err := netlib.DLevelLatch()
	if err != nil {
		t.Fatal(err)
	}
	td := []struct {
		d, clk bool
		q      bool
	}{
		{false, true, false},
		{true, true, true}, // transparent
		{false, true, false},
		{true, true, true},
		{true, false, true}, // hold
		{false, false, true},
		{false, true, false},
	}
	for i, d := range td {
		set(t, c, map[string]bool{"D": d.d, "CLK": d.clk})
		if q, nq := get(t, c, "Q"), get(t, c, "Q#"); q != d.q || nq != !d.q {
			t.Errorf("#%d D=%v CLK=%v: expected Q=%v, got Q=%v Q#=%v", i, d.d, d.clk, d.q, q, nq)
		}
	}
}

func TestEdgeLatch(t *testing.T) {
	c, err := netlib.EdgeLatch()
	if err != nil {
		t.Fatal(err)
	}
	nettest.Compare(t, netsim.DLatch(), c)
}

func TestEdgeLatch_random(t *testing.T) {
	c, err := netlib.EdgeLatch()
	if err != nil {
		t.Fatal(err)
	}
	var q, clk bool
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		d, nclk := r.Intn(2) == 1, r.Intn(2) == 1
		if nclk && !clk {
			q = d
		}
		clk = nclk
		set(t, c, map[string]bool{"D": d, "CLK": clk})
		if got := get(t, c, "Q"); got != q {
			t.Fatalf("#%d D=%v CLK=%v: expected Q=%v, got %v", i, d, clk, q, got)
		}
		if get(t, c, "Q#") == q {
			t.Fatalf("#%d: Q# == Q", i)
		}
	}
}

func TestMux(t *testing.T) {
	c, err := netlib.Mux()
	if err != nil {
		t.Fatal(err)
	}
	nettest.Check(t, c, func(in []bool) []bool {
		if in[2] {
			return []bool{in[1]}
		}
		return []bool{in[0]}
	})
}

func TestHalfAdder(t *testing.T) {
	h, err := netlib.HalfAdder()
	if err != nil {
		t.Fatal(err)
	}
	nettest.Check(t, h, func(in []bool) []bool {
		return []bool{in[0] != in[1], in[0] && in[1]}
	})
}

func TestFullAdder(t *testing.T) {
	fa, err := netlib.FullAdder()
	if err != nil {
		t.Fatal(err)
	}
	nettest.Check(t, fa, func(in []bool) []bool {
		n := 0
		for _, v := range in {
			if v {
				n++
			}
		}
		return []bool{n&1 != 0, n >= 2}
	})
}

func TestRippleAdder(t *testing.T) {
	for bits := 1; bits <= 4; bits++ {
		t.Run(strconv.Itoa(bits), func(t *testing.T) {
			c, err := netlib.RippleAdder(bits)
			if err != nil {
				t.Fatal(err)
			}
			lim := uint64(1) << uint(bits)
			for a := uint64(0); a < lim; a++ {
				for b := uint64(0); b < lim; b++ {
					for cin := uint64(0); cin < 2; cin++ {
						if err = netsim.SetBus(c, "a", bits, a); err != nil {
							t.Fatal(err)
						}
						if err = netsim.SetBus(c, "b", bits, b); err != nil {
							t.Fatal(err)
						}
						n := set(t, c, map[string]bool{"cin": cin != 0})
						if n > bits+1 {
							t.Fatalf("%d+%d+%d: settled in %d steps", a, b, cin, n)
						}
						s, err := netsim.Bus(c, "s", bits)
						if err != nil {
							t.Fatal(err)
						}
						if get(t, c, "cout") {
							s |= lim
						}
						if s != a+b+cin {
							t.Fatalf("%d+%d+%d: expected %d, got %d", a, b, cin, a+b+cin, s)
						}
					}
				}
			}
		})
	}
	if _, err := netlib.RippleAdder(0); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestRippleAdder_compare(t *testing.T) {
	// a 2 bits adder built by hand from netlib full adders
	fa0, err := netlib.FullAdder()
	if err != nil {
		t.Fatal(err)
	}
	fa1, err := netlib.FullAdder()
	if err != nil {
		t.Fatal(err)
	}
	add2, err := netsim.NewCircuit(
		netsim.Parts{{Name: "fa0", Device: fa0}, {Name: "fa1", Device: fa1}},
		append(netsim.In("a[2], b[2], cin"), netsim.Out("s[2], cout")...),
		netsim.MustNets(
			"a[0], fa0.a", "b[0], fa0.b", "cin, fa0.cin", "fa0.s, s[0]",
			"a[1], fa1.a", "b[1], fa1.b", "fa0.cout, fa1.cin", "fa1.s, s[1]",
			"fa1.cout, cout",
		))
	if err != nil {
		t.Fatal(err)
	}
	ra, err := netlib.RippleAdder(2)
	if err != nil {
		t.Fatal(err)
	}
	nettest.Compare(t, ra, add2)
}
