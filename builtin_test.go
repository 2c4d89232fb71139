// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim_test

import (
	"errors"
	"testing"
	"testing/quick"

	"github.com/db47h/netsim"
)

// wrap returns a circuit with one boundary pin per pin of g, named after
// them. Undriven pins become inputs.
func wrap(t *testing.T, g netsim.Device) *netsim.Circuit {
	t.Helper()
	var (
		pins netsim.ExternalPins
		nets netsim.Nets
	)
	for _, p := range g.Pins() {
		dir := netsim.DirOut
		if p.Role == netsim.Undriven {
			dir = netsim.DirIn
		}
		pins = append(pins, netsim.ExternalPin{Name: p.Name, Dir: dir})
		nets = append(nets, netsim.NetSpec{Name: p.Name, Conns: []netsim.Conn{netsim.Ext(p.Name), netsim.PartPin("g", p.Name)}})
	}
	c, err := netsim.NewCircuit(netsim.Parts{{Name: "g", Device: g}}, pins, nets)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func Test_gate_builtin(t *testing.T) {
	td := []struct {
		name   string
		gate   func() *netsim.Gate
		result []bool // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{"NOT", netsim.Not, []bool{true, false}},
		{"BUFFER", netsim.Buffer, []bool{false, true}},
		{"AND", netsim.And, []bool{false, false, false, true}},
		{"NAND", netsim.Nand, []bool{true, true, true, false}},
		{"OR", netsim.Or, []bool{false, true, true, true}},
		{"NOR", netsim.Nor, []bool{true, false, false, false}},
		{"XOR", netsim.Xor, []bool{false, true, true, false}},
		{"XNOR", netsim.Xnor, []bool{true, false, false, true}},
	}

	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			g := d.gate()
			if g.Kind().String() != d.name {
				t.Fatalf("expected kind %s, got %s", d.name, g.Kind())
			}
			c := wrap(t, g)
			ins := c.ExternalPins()[:len(g.Pins())-1]
			for i, exp := range d.result {
				for bit, p := range ins {
					if err := c.SetExternalInput(p.Name, i&(1<<uint(len(ins)-bit-1)) != 0); err != nil {
						t.Fatal(err)
					}
				}
				if _, err := c.Settle(10); err != nil {
					t.Fatal(err)
				}
				out, err := c.External("out")
				if err != nil {
					t.Fatal(err)
				}
				if !out.Valid() || out.State != exp {
					t.Errorf("%s input #%d: expected %v, got %v", d.name, i, exp, out)
				}
			}
		})
	}
}

func Test_gate_tie(t *testing.T) {
	for _, v := range []bool{false, true} {
		c := wrap(t, netsim.Tie(v))
		if _, err := c.Settle(10); err != nil {
			t.Fatal(err)
		}
		out, _ := c.External("out")
		if out != (netsim.Signal{State: v}) {
			t.Errorf("Tie(%v): got %v", v, out)
		}
	}
}

func Test_gate_quick(t *testing.T) {
	c := wrap(t, netsim.Xor())
	f := func(a, b bool) bool {
		if err := c.SetExternalInput("a", a); err != nil {
			t.Fatal(err)
		}
		if err := c.SetExternalInput("b", b); err != nil {
			t.Fatal(err)
		}
		if _, err := c.Settle(10); err != nil {
			t.Fatal(err)
		}
		out, _ := c.External("out")
		return out.State == (a != b)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestDLatch(t *testing.T) {
	c := wrap(t, netsim.DLatch())
	td := []struct {
		d, clk bool
		q      bool
	}{
		{false, false, false},
		{true, false, false},
		{true, true, true}, // raising edge
		{false, true, true},
		{false, false, true},
		{false, true, false}, // raising edge
		{true, false, false},
		{true, true, true},
	}
	for i, d := range td {
		if err := c.SetExternalInput("d", d.d); err != nil {
			t.Fatal(err)
		}
		if err := c.SetExternalInput("clk", d.clk); err != nil {
			t.Fatal(err)
		}
		if _, err := c.Settle(10); err != nil {
			t.Fatal(err)
		}
		q, _ := c.External("q")
		nq, _ := c.External("nq")
		if q.State != d.q || nq.State == d.q {
			t.Errorf("step %d: d=%v clk=%v: expected q=%v, got q=%v nq=%v", i, d.d, d.clk, d.q, q, nq)
		}
	}
}

func TestTriState(t *testing.T) {
	// two tri-state buffers driving a shared bus
	nets := netsim.MustNets("a, t0.in", "b, t1.in", "ea, t0.en", "eb, t1.en", "t0.out, t1.out, bus")
	nets[4].Name = "bus"
	c, err := netsim.NewCircuit(
		netsim.Parts{{Name: "t0", Device: netsim.TriState()}, {Name: "t1", Device: netsim.TriState()}},
		append(netsim.In("a, b, ea, eb"), netsim.Out("bus")...),
		nets)
	if err != nil {
		t.Fatal(err)
	}
	set := func(vs map[string]bool) {
		t.Helper()
		for k, v := range vs {
			if err := c.SetExternalInput(k, v); err != nil {
				t.Fatal(err)
			}
		}
	}

	set(map[string]bool{"a": true, "b": false, "ea": true, "eb": false})
	if _, err = c.Settle(10); err != nil {
		t.Fatal(err)
	}
	if s, _ := c.External("bus"); s != (netsim.Signal{State: true}) {
		t.Fatalf("expected bus = 1, got %v", s)
	}
	if p, _ := c.Part(netsim.ByName("t1")); p.Pins()[2].Role != netsim.Undriven {
		t.Fatal("t1 output should be released")
	}

	set(map[string]bool{"ea": false, "eb": true})
	if _, err = c.Settle(10); err != nil {
		t.Fatal(err)
	}
	if s, _ := c.External("bus"); s != (netsim.Signal{State: false}) {
		t.Fatalf("expected bus = 0, got %v", s)
	}

	// both enabled with different values
	set(map[string]bool{"ea": true})
	_, err = c.Settle(10)
	var ce *netsim.ContentionError
	if !errors.As(err, &ce) || ce.Net != "bus" {
		t.Fatalf("expected contention on bus, got %v", err)
	}
	if s, _ := c.External("bus"); s.Validity != netsim.Contested {
		t.Fatalf("expected contested bus, got %v", s)
	}
}

func TestTriState_released(t *testing.T) {
	td := []struct {
		name string
		nets netsim.Nets
	}{
		{"floating net", netsim.MustNets("a, t.in", "en, t.en", "t.out, y")},
		{"unconnected", netsim.MustNets("a, t.in", "en, t.en")},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			c, err := netsim.NewCircuit(
				netsim.Parts{{Name: "t", Device: netsim.TriState()}},
				append(netsim.In("a, en"), netsim.Out("y")...),
				d.nets)
			if err != nil {
				t.Fatal(err)
			}
			_ = c.SetExternalInput("a", true)
			_ = c.SetExternalInput("en", true)
			if _, err = c.Settle(10); err != nil {
				t.Fatal(err)
			}
			_ = c.SetExternalInput("en", false)
			// the released output must not be read by the next steps
			for i := 0; i < 3; i++ {
				if _, err = c.Step(); err != nil {
					t.Fatalf("step %d: %v", i+1, err)
				}
			}
			if _, err = c.Settle(10); err != nil {
				t.Fatal(err)
			}
			if y, _ := c.External("y"); y.Validity != netsim.Floating {
				t.Fatalf("expected y to float, got %v", y)
			}
		})
	}
}
