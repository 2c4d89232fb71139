// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim_test

import (
	"fmt"
	"strings"

	"github.com/db47h/netsim"
)

func ExampleNewCircuit() {
	latch, err := netsim.NewCircuit(
		netsim.Parts{
			{Name: "nor0", Device: netsim.Nor()},
			{Name: "nor1", Device: netsim.Nor()},
		},
		append(netsim.In("S, R"), netsim.Out("Q, Q#")...),
		netsim.MustNets(
			"S, nor0.a",
			"R, nor1.b",
			"nor0.out, nor1.a, Q#",
			"nor1.out, nor0.b, Q",
		))
	if err != nil {
		panic(err)
	}

	for _, in := range [][2]bool{{true, false}, {false, false}, {false, true}, {false, false}} {
		if err = latch.SetExternalInput("S", in[0]); err != nil {
			panic(err)
		}
		if err = latch.SetExternalInput("R", in[1]); err != nil {
			panic(err)
		}
		steps, err := latch.Settle(10)
		if err != nil {
			panic(err)
		}
		q, _ := latch.External("Q")
		nq, _ := latch.External("Q#")
		fmt.Printf("S=%v R=%v => Q=%v Q#=%v (%d steps)\n", in[0], in[1], q, nq, steps)
	}

	// Output:
	// S=true R=false => Q=1 Q#=0 (2 steps)
	// S=false R=false => Q=1 Q#=0 (1 steps)
	// S=false R=true => Q=0 Q#=1 (3 steps)
	// S=false R=false => Q=0 Q#=1 (1 steps)
}

func ExampleCircuit_Snapshot() {
	c, err := netsim.NewCircuit(
		netsim.Parts{{Name: "and", Device: netsim.And()}},
		append(netsim.In("a, b"), netsim.Out("out")...),
		netsim.Nets{
			{Name: "A", Conns: []netsim.Conn{netsim.Ext("a"), netsim.PartPin("and", "a")}},
			{Name: "B", Conns: []netsim.Conn{netsim.Ext("b"), netsim.PartPin("and", "b")}},
			{Name: "OUT", Conns: []netsim.Conn{netsim.PartPin("and", "out"), netsim.Ext("out")}},
		})
	if err != nil {
		panic(err)
	}
	_ = c.SetExternalInput("a", true)
	var vs []string
	for _, n := range c.Snapshot().Nets {
		vs = append(vs, fmt.Sprintf("%s=%v", n.Name, n.Signal))
	}
	fmt.Println(strings.Join(vs, " "))

	_ = c.SetExternalInput("b", true)
	if _, err = c.Settle(10); err != nil {
		panic(err)
	}
	vs = vs[:0]
	for _, p := range c.Snapshot().Pins {
		vs = append(vs, fmt.Sprintf("%s(%v)=%v", p.Name, p.Dir, p.Signal))
	}
	fmt.Println(strings.Join(vs, " "))

	// Output:
	// A=1 B=Z OUT=0
	// a(in)=1 b(in)=1 out(out)=1
}
