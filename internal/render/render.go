// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package render formats circuit snapshots and traces for terminals.
//
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/trace"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
)

// Signal colors.
var (
	ColorHigh    = lipgloss.Color("#00FF00")
	ColorLow     = lipgloss.Color("#888888")
	ColorInvalid = lipgloss.Color("#AA0000")
)

// SignalColor returns the display color of s.
//
func SignalColor(s netsim.Signal) lipgloss.Color {
	switch {
	case !s.Valid():
		return ColorInvalid
	case s.State:
		return ColorHigh
	}
	return ColorLow
}

// Renderer writes snapshots and traces. The zero value renders plain text.
//
type Renderer struct {
	color  bool
	header lipgloss.Style
}

// New returns a new Renderer. If color is true, signal values are colored.
//
func New(color bool) *Renderer {
	r := &Renderer{color: color}
	if color {
		r.header = lipgloss.NewStyle().Bold(true)
	}
	return r
}

func (r *Renderer) signal(s netsim.Signal, text string) string {
	if !r.color {
		return text
	}
	return lipgloss.NewStyle().Foreground(SignalColor(s)).Render(text)
}

func (r *Renderer) head(text string) string {
	if !r.color {
		return text
	}
	return r.header.Render(text)
}

func width(w int, names []string) int {
	for _, n := range names {
		if len(n) > w {
			w = len(n)
		}
	}
	return w
}

// Snapshot writes s as two tables: nets then boundary pins.
//
func (r *Renderer) Snapshot(w io.Writer, s netsim.Snapshot) error {
	var b strings.Builder
	names := make([]string, len(s.Nets))
	for i, n := range s.Nets {
		names[i] = n.Name
	}
	nw := width(3, names)
	fmt.Fprintf(&b, "%s  %s\n", r.head(pad("NET", nw)), r.head("VALUE"))
	for _, n := range s.Nets {
		fmt.Fprintf(&b, "%s  %s\n", pad(n.Name, nw), r.signal(n.Signal, n.Signal.String()))
	}
	if len(s.Pins) > 0 {
		names = names[:0]
		for _, p := range s.Pins {
			names = append(names, p.Name)
		}
		pw := width(3, names)
		fmt.Fprintf(&b, "\n%s  %s  %s\n", r.head(pad("PIN", pw)), r.head("DIR"), r.head("VALUE"))
		for _, p := range s.Pins {
			fmt.Fprintf(&b, "%s  %s  %s\n", pad(p.Name, pw), pad(p.Dir.String(), 3), r.signal(p.Signal, p.Signal.String()))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func waveChar(s netsim.Signal) string {
	switch s.Validity {
	case netsim.Floating:
		return "Z"
	case netsim.Contested:
		return "X"
	}
	if s.State {
		return "‾"
	}
	return "_"
}

// Waveform writes one line per net showing its value at every step of t. The
// first line holds step numbers modulo 10.
//
func (r *Renderer) Waveform(w io.Writer, t *trace.Trace) error {
	if len(t.Frames) == 0 {
		return nil
	}
	nets := t.Frames[0].Nets
	names := make([]string, len(nets))
	for i, n := range nets {
		names[i] = n.Name
	}
	nw := width(4, names)
	var b strings.Builder
	b.WriteString(r.head(pad("STEP", nw)))
	b.WriteString("  ")
	for i := range t.Frames {
		b.WriteString(strconv.Itoa(t.Frames[i].Step % 10))
	}
	b.WriteByte('\n')
	for i, n := range nets {
		b.WriteString(pad(n.Name, nw))
		b.WriteString("  ")
		for _, f := range t.Frames {
			s := f.Nets[i].Signal
			b.WriteString(r.signal(s, waveChar(s)))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Plot returns an ASCII plot of the named net or boundary pin over the steps
// of t. Invalid values are plotted half way between low and high.
//
func Plot(t *trace.Trace, net string, height int) (string, error) {
	ss, ok := t.Net(net)
	if !ok {
		ss, ok = t.Pin(net)
	}
	if !ok {
		return "", errors.Errorf("no net or pin named %q", net)
	}
	data := make([]float64, len(ss))
	for i, s := range ss {
		switch {
		case !s.Valid():
			data[i] = 0.5
		case s.State:
			data[i] = 1
		}
	}
	if height < 2 {
		height = 2
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(0),
		asciigraph.Caption(net),
	), nil
}

// Toggles returns the number of value changes in ss.
//
func Toggles(ss []netsim.Signal) int {
	n := 0
	for i := 1; i < len(ss); i++ {
		if ss[i] != ss[i-1] {
			n++
		}
	}
	return n
}

