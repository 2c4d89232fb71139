// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist_test

import (
	"errors"
	"testing"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/netlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_adder(t *testing.T) {
	f, err := netlist.Load("testdata/adder2.yaml")
	require.NoError(t, err)
	assert.Equal(t, "adder2", f.Top)
	assert.Equal(t, 64, f.MaxSteps)
	assert.Equal(t, []string{"adder2", "my-full-adder"}, f.Names())

	c, err := f.Build()
	require.NoError(t, err)
	require.Equal(t, 9, c.NetCount())
	n, ok := c.NetIndex("carry0")
	require.True(t, ok)
	assert.Equal(t, 6, n)

	for a := uint64(0); a < 4; a++ {
		for b := uint64(0); b < 4; b++ {
			for cin := 0; cin < 2; cin++ {
				require.NoError(t, netsim.SetBus(c, "a", 2, a))
				require.NoError(t, netsim.SetBus(c, "b", 2, b))
				require.NoError(t, c.SetExternalInput("cin", cin == 1))
				steps, err := c.Settle(f.MaxSteps)
				require.NoError(t, err)
				assert.LessOrEqual(t, steps, 3)

				s, err := netsim.Bus(c, "s", 2)
				require.NoError(t, err)
				cout, err := c.External("cout")
				require.NoError(t, err)
				if cout.State {
					s |= 4
				}
				assert.Equal(t, a+b+uint64(cin), s, "%d+%d+%d", a, b, cin)
			}
		}
	}
}

func TestLoad_latch(t *testing.T) {
	f, err := netlist.Load("testdata/latch.yaml")
	require.NoError(t, err)
	assert.Equal(t, "latch", f.Top)

	c, err := f.Build()
	require.NoError(t, err)
	require.NoError(t, c.SetExternalInput("S", true))
	require.NoError(t, c.SetExternalInput("R", false))
	_, err = c.Settle(10)
	require.NoError(t, err)

	n, ok := c.NetIndex("q")
	require.True(t, ok)
	assert.Equal(t, netsim.Signal{State: true}, c.NetState(n))
}

func TestLoad_missing(t *testing.T) {
	_, err := netlist.Load("testdata/nonexistent.yaml")
	assert.Error(t, err)
}

func TestParse_errors(t *testing.T) {
	data := []struct {
		name string
		src  string
		err  string
	}{
		{"empty", ``, "empty description"},
		{"no_circuit", `top: x`, "no circuit defined"},
		{"no_top", "circuits:\n  a: {}\n  b: {}\n", "top level circuit not specified"},
		{"bad_top", "top: c\ncircuits:\n  a: {}\n", `top level circuit "c" not defined`},
		{"unknown_field", "circuits:\n  a: {inputz: x}\n", "field inputz not found"},
		{"bad_net", "circuits:\n  a:\n    nets:\n      - a..b\n", "line 4"},
		{"bad_conn", "circuits:\n  a:\n    nets:\n      - [a, 0]\n", "expected '.' after part index"},
		{"nested_conn", "circuits:\n  a:\n    nets:\n      - [[a]]\n", "expected a pin reference"},
		{"no_conns", "circuits:\n  a:\n    nets:\n      - {name: x}\n", `net "x" has no connections`},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := netlist.ParseBytes([]byte(d.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), d.err)
		})
	}
}

func TestBuild_errors(t *testing.T) {
	data := []struct {
		name string
		src  string
		err  string
	}{
		{"recursive", "top: a\ncircuits:\n  a: {parts: [{name: x, type: b}]}\n  b: {parts: [{name: y, type: a}]}\n",
			`circuit "a": recursive definition`},
		{"unknown_type", "circuits:\n  a: {parts: [{name: x, type: flux-capacitor}]}\n", `unknown part type "flux-capacitor"`},
		{"no_type", "circuits:\n  a: {parts: [{name: x}]}\n", "missing part type"},
		{"bad_width", "circuits:\n  a: {parts: [{name: x, type: ripple-adder}]}\n", "width must be at least 1"},
		{"bad_inputs", "circuits:\n  a: {inputs: 'a[2'}\n", "circuit a: inputs"},
		{"unknown_part", "circuits:\n  a: {inputs: i, nets: [i, y.in]}\n", `unknown part "y"`},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			f, err := netlist.ParseBytes([]byte(d.src))
			require.NoError(t, err)
			_, err = f.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), d.err)
		})
	}
}

func TestBuild_unknownComponent(t *testing.T) {
	f, err := netlist.ParseBytes([]byte("circuits:\n  a: {inputs: i, nets: [\"i, y.in\"]}\n"))
	require.NoError(t, err)
	_, err = f.Build()
	var ue *netsim.UnknownComponentError
	require.True(t, errors.As(err, &ue), "got %v", err)
	assert.Equal(t, netsim.ByName("y"), ue.Part)
}

func TestLibrary(t *testing.T) {
	for _, typ := range netlist.Types() {
		t.Run(typ, func(t *testing.T) {
			src := "circuits:\n  top:\n    parts:\n      - {name: p, type: " + typ + ", width: 2}\n"
			f, err := netlist.ParseBytes([]byte(src))
			require.NoError(t, err)
			c, err := f.Build()
			require.NoError(t, err)
			d, ok := c.Part(netsim.ByName("p"))
			require.True(t, ok)
			assert.NotEmpty(t, d.Pins())
		})
	}
}
