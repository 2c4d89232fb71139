// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist builds circuits from YAML descriptions.
//
// A description lists named circuits, each with its boundary pins, parts and
// nets, and selects the top level circuit:
//
//	top: adder2
//	max_steps: 64
//	circuits:
//	  adder2:
//	    inputs: a[2], b[2], cin
//	    outputs: s[2], cout
//	    parts:
//	      - {name: fa0, type: full-adder}
//	      - {name: fa1, type: full-adder}
//	    nets:
//	      - a[0], fa0.a
//	      - ["b[0]", fa0.b]
//	      - {name: carry0, conns: "fa0.cout, fa1.cin", route: [[0, 1], [2, 1]]}
//
// A net is either a shorthand string (see netsim.ParseNet), a list of
// participants, or a mapping with an optional name, its participants and
// routing data. Routing data is accepted and ignored. Bus pin names must be
// quoted inside YAML flow sequences.
//
// Part types are primitive gates, library circuits (see Types) and any
// circuit defined in the same description. Each part is a new instance.
//
package netlist

import (
	"bytes"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is a parsed description.
//
type File struct {
	Top      string                 `yaml:"top"`
	MaxSteps int                    `yaml:"max_steps"`
	Circuits map[string]*CircuitDef `yaml:"circuits"`
}

// CircuitDef describes a circuit.
//
type CircuitDef struct {
	Inputs  string    `yaml:"inputs"`
	Outputs string    `yaml:"outputs"`
	Parts   []PartDef `yaml:"parts"`
	Nets    []NetDef  `yaml:"nets"`
}

// PartDef describes a part. Width is only used by bus parameterized library
// circuits.
//
type PartDef struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Width int    `yaml:"width,omitempty"`
}

// NetDef describes a net.
//
type NetDef struct {
	netsim.NetSpec
}

type netMapping struct {
	Name  string    `yaml:"name"`
	Conns yaml.Node `yaml:"conns"`
	Route yaml.Node `yaml:"route"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
//
func (n *NetDef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var m netMapping
		if err := value.Decode(&m); err != nil {
			return err
		}
		if m.Conns.Kind == 0 {
			return errors.Errorf("line %d: net %q has no connections", value.Line, m.Name)
		}
		cs, err := decodeConns(&m.Conns)
		if err != nil {
			return err
		}
		n.Name, n.Conns = m.Name, cs
		return nil
	default:
		cs, err := decodeConns(value)
		if err != nil {
			return err
		}
		n.Conns = cs
		return nil
	}
}

func decodeConns(value *yaml.Node) ([]netsim.Conn, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		spec, err := netsim.ParseNet(value.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", value.Line)
		}
		return spec.Conns, nil
	case yaml.SequenceNode:
		cs := make([]netsim.Conn, 0, len(value.Content))
		for _, v := range value.Content {
			if v.Kind != yaml.ScalarNode {
				return nil, errors.Errorf("line %d: expected a pin reference", v.Line)
			}
			c, err := netsim.ParseConn(v.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", v.Line)
			}
			cs = append(cs, c)
		}
		return cs, nil
	}
	return nil, errors.Errorf("line %d: invalid net", value.Line)
}

// Parse parses a description. Unknown fields are an error.
//
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, errors.New("empty description")
		}
		return nil, errors.Wrap(err, "parse")
	}
	if len(f.Circuits) == 0 {
		return nil, errors.New("no circuit defined")
	}
	if f.Top == "" {
		if len(f.Circuits) > 1 {
			return nil, errors.New("top level circuit not specified")
		}
		for k := range f.Circuits {
			f.Top = k
		}
	}
	if _, ok := f.Circuits[f.Top]; !ok {
		return nil, errors.Errorf("top level circuit %q not defined", f.Top)
	}
	return &f, nil
}

// ParseBytes parses a description from a byte slice.
//
func ParseBytes(data []byte) (*File, error) { return Parse(bytes.NewReader(data)) }

// Load parses the description in the named file.
//
func Load(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return f, nil
}

// Build builds the top level circuit. Options apply to the top level circuit
// only.
//
func (f *File) Build(opts ...netsim.Option) (*netsim.Circuit, error) {
	return f.BuildCircuit(f.Top, opts...)
}

// BuildCircuit builds the named circuit. Options apply to that circuit only.
//
func (f *File) BuildCircuit(name string, opts ...netsim.Option) (*netsim.Circuit, error) {
	b := &builder{f: f, visiting: make(map[string]bool)}
	return b.circuit(name, opts)
}

// Names returns the sorted names of the circuits defined in f.
//
func (f *File) Names() []string {
	ns := make([]string, 0, len(f.Circuits))
	for k := range f.Circuits {
		ns = append(ns, k)
	}
	sort.Strings(ns)
	return ns
}

type builder struct {
	f        *File
	visiting map[string]bool
}

func (b *builder) circuit(name string, opts []netsim.Option) (*netsim.Circuit, error) {
	def, ok := b.f.Circuits[name]
	if !ok {
		return nil, errors.Errorf("circuit %q not defined", name)
	}
	if b.visiting[name] {
		return nil, errors.Errorf("circuit %q: recursive definition", name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	in, err := netsim.IO(def.Inputs)
	if err != nil {
		return nil, errors.Wrapf(err, "circuit %s: inputs", name)
	}
	out, err := netsim.IO(def.Outputs)
	if err != nil {
		return nil, errors.Wrapf(err, "circuit %s: outputs", name)
	}
	pins := make(netsim.ExternalPins, 0, len(in)+len(out))
	for _, n := range in {
		pins = append(pins, netsim.ExternalPin{Name: n, Dir: netsim.DirIn})
	}
	for _, n := range out {
		pins = append(pins, netsim.ExternalPin{Name: n, Dir: netsim.DirOut})
	}

	parts := make(netsim.Parts, len(def.Parts))
	for i, p := range def.Parts {
		d, err := b.device(p)
		if err != nil {
			return nil, errors.Wrapf(err, "circuit %s: part %s", name, partLabel(i, p.Name))
		}
		parts[i] = netsim.Part{Name: p.Name, Device: d}
	}
	nets := make(netsim.Nets, len(def.Nets))
	for i := range def.Nets {
		nets[i] = def.Nets[i].NetSpec
	}
	if b.f.MaxSteps > 0 {
		opts = append([]netsim.Option{netsim.MaxSteps(b.f.MaxSteps)}, opts...)
	}
	c, err := netsim.NewCircuit(parts, pins, nets, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "circuit %s", name)
	}
	return c, nil
}

func partLabel(i int, name string) string {
	if name != "" {
		return name
	}
	return "#" + strconv.Itoa(i)
}

func (b *builder) device(p PartDef) (netsim.Device, error) {
	t := strings.ToLower(p.Type)
	if t == "" {
		return nil, errors.New("missing part type")
	}
	// local definitions shadow library types
	if _, ok := b.f.Circuits[p.Type]; ok {
		return b.circuit(p.Type, nil)
	}
	if fn, ok := library[t]; ok {
		return fn(p)
	}
	return nil, errors.Errorf("unknown part type %q", p.Type)
}
