// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace_test

import (
	"errors"
	"testing"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latch(t *testing.T) *netsim.Circuit {
	t.Helper()
	c, err := netsim.NewCircuit(
		netsim.Parts{
			{Name: "nor0", Device: netsim.Nor()},
			{Name: "nor1", Device: netsim.Nor()},
		},
		append(netsim.In("S, R"), netsim.Out("Q, Q#")...),
		netsim.Nets{
			{Name: "S", Conns: []netsim.Conn{netsim.Ext("S"), netsim.PartPin("nor0", "a")}},
			{Name: "R", Conns: []netsim.Conn{netsim.Ext("R"), netsim.PartPin("nor1", "b")}},
			{Name: "nq", Conns: []netsim.Conn{netsim.PartPin("nor0", "out"), netsim.PartPin("nor1", "a"), netsim.Ext("Q#")}},
			{Name: "q", Conns: []netsim.Conn{netsim.PartPin("nor1", "out"), netsim.PartPin("nor0", "b"), netsim.Ext("Q")}},
		})
	require.NoError(t, err)
	return c
}

func TestRecord(t *testing.T) {
	c := latch(t)
	require.NoError(t, c.SetExternalInput("S", false))
	require.NoError(t, c.SetExternalInput("R", true))

	tr, err := trace.Record(c, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Steps())
	assert.False(t, tr.Last().Changed)
	assert.True(t, tr.Frames[1].Changed)

	q, ok := tr.Net("q")
	require.True(t, ok)
	assert.Equal(t, []netsim.Signal{{}, {}, {}}, q)
	nq, ok := tr.Net("nq")
	require.True(t, ok)
	assert.Equal(t, []netsim.Signal{{}, {State: true}, {State: true}}, nq)

	pq, ok := tr.Pin("Q#")
	require.True(t, ok)
	assert.Equal(t, nq, pq)

	_, ok = tr.Net("nope")
	assert.False(t, ok)
	_, ok = tr.Pin("nope")
	assert.False(t, ok)
}

func TestRecord_nonConvergent(t *testing.T) {
	c, err := netsim.NewCircuit(netsim.Parts{{Name: "n", Device: netsim.Not()}}, nil, netsim.MustNets("n.in, n.out"))
	require.NoError(t, err)

	tr, err := trace.Record(c, 4)
	var ne *netsim.NonConvergentError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, 4, ne.Steps)
	require.Len(t, tr.Frames, 5)

	s, ok := tr.Net("#0")
	require.True(t, ok)
	assert.Equal(t, []netsim.Signal{{}, {State: true}, {}, {State: true}, {}}, s)

	tr, err = trace.Record(c, 0)
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, 1, ne.Steps)
	assert.Equal(t, 1, tr.Steps())
}

func TestRecord_error(t *testing.T) {
	c := latch(t)
	// inputs not set
	tr, err := trace.Record(c, 10)
	var fe *netsim.FloatingNetError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "S", fe.Net)
	assert.Equal(t, 0, tr.Steps())
}
