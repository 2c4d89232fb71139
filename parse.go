// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"fmt"

	"github.com/db47h/netsim/internal/lexer"
	"github.com/pkg/errors"
)

type parseError struct {
	in  string
	pos int
	msg string
}

func (e *parseError) Error() string {
	if e.pos < 0 {
		return fmt.Sprintf("%q: %s", e.in, e.msg)
	}
	return fmt.Sprintf("in %q at pos %d: %s", e.in, e.pos+1, e.msg)
}

func errAt(in string, tok lexer.Token, msg string) error {
	return &parseError{in: in, pos: tok.Pos, msg: msg + ", got " + tok.Type.String()}
}

// IO parses a pin list specification and returns individual pin names,
// expanding bus declarations. For example:
//
//	IO("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func IO(spec string) ([]string, error) {
	var out []string

	l := lexer.New(spec)
	t := l.Lex()
	if t.Type == lexer.EOF {
		return nil, nil
	}
	for {
		if t.Type != lexer.Ident {
			return nil, errAt(spec, t, "expected pin name")
		}
		name := t.Value
		t = l.Lex()
		if t.Type == lexer.BracketOpen {
			t = l.Lex()
			if t.Type != lexer.Int {
				return nil, errAt(spec, t, "expected bus size")
			}
			for i := 0; i < t.Int; i++ {
				out = append(out, BusPinName(name, i))
			}
			if t = l.Lex(); t.Type != lexer.BracketClose {
				return nil, errAt(spec, t, "expected ']'")
			}
			t = l.Lex()
		} else {
			out = append(out, name)
		}
		switch t.Type {
		case lexer.EOF:
			return out, nil
		case lexer.Comma:
			t = l.Lex()
		default:
			return nil, errAt(spec, t, "expected comma or end of input")
		}
	}
}

func pins(spec string, dir Direction) ExternalPins {
	names, err := IO(spec)
	if err != nil {
		panic(err)
	}
	ps := make(ExternalPins, len(names))
	for i, n := range names {
		ps[i] = ExternalPin{Name: n, Dir: dir}
	}
	return ps
}

// In returns input boundary pins from a pin list specification (see IO).
// It panics if spec is malformed.
//
func In(spec string) ExternalPins { return pins(spec, DirIn) }

// Out returns output boundary pins from a pin list specification (see IO).
// It panics if spec is malformed.
//
func Out(spec string) ExternalPins { return pins(spec, DirOut) }

// ParseConn parses a single net participant:
//
//	Q          external pin "Q"
//	a[2]       external pin "a[2]"
//	nor0.out   pin "out" of part "nor0"
//	fa1.a[0]   pin "a[0]" of part "fa1"
//	0.2        pin #2 of part #0
//
func ParseConn(s string) (Conn, error) {
	l := lexer.New(s)
	c, t, err := parseConn(s, l, l.Lex())
	if err != nil {
		return Conn{}, err
	}
	if t.Type != lexer.EOF {
		return Conn{}, errAt(s, t, "expected end of input")
	}
	return c, nil
}

// ParseNet parses a comma separated list of participants (see ParseConn).
//
//	ParseNet("nor0.out, nor1.a, Q#")
//
func ParseNet(s string) (NetSpec, error) {
	var n NetSpec
	l := lexer.New(s)
	t := l.Lex()
	if t.Type == lexer.EOF {
		return n, nil
	}
	for {
		var (
			c   Conn
			err error
		)
		c, t, err = parseConn(s, l, t)
		if err != nil {
			return NetSpec{}, err
		}
		n.Conns = append(n.Conns, c)
		switch t.Type {
		case lexer.EOF:
			return n, nil
		case lexer.Comma:
			t = l.Lex()
		default:
			return NetSpec{}, errAt(s, t, "expected comma or end of input")
		}
	}
}

// MustNets parses each string with ParseNet and returns the resulting net list.
// It panics on the first malformed string.
//
func MustNets(specs ...string) Nets {
	nets := make(Nets, len(specs))
	for i, s := range specs {
		n, err := ParseNet(s)
		if err != nil {
			panic(errors.Wrapf(err, "net %d", i))
		}
		nets[i] = n
	}
	return nets
}

// parseRef parses a name with an optional bus index, or a number.
// It returns the next token.
func parseRef(in string, l *lexer.Lexer, t lexer.Token) (Ref, lexer.Token, error) {
	switch t.Type {
	case lexer.Int:
		return ByIndex(t.Int), l.Lex(), nil
	case lexer.Ident:
		name := t.Value
		t = l.Lex()
		if t.Type != lexer.BracketOpen {
			return ByName(name), t, nil
		}
		t = l.Lex()
		if t.Type != lexer.Int {
			return Ref{}, t, errAt(in, t, "expected bus index")
		}
		idx := t.Int
		if t = l.Lex(); t.Type != lexer.BracketClose {
			return Ref{}, t, errAt(in, t, "expected ']'")
		}
		return ByName(BusPinName(name, idx)), l.Lex(), nil
	}
	return Ref{}, t, errAt(in, t, "expected name or index")
}

func parseConn(in string, l *lexer.Lexer, t lexer.Token) (Conn, lexer.Token, error) {
	first, t, err := parseRef(in, l, t)
	if err != nil {
		return Conn{}, t, err
	}
	if t.Type != lexer.Dot {
		if first.Name == "" {
			return Conn{}, t, errAt(in, t, "expected '.' after part index")
		}
		return Ext(first.Name), t, nil
	}
	pin, t, err := parseRef(in, l, l.Lex())
	if err != nil {
		return Conn{}, t, err
	}
	return Connect(first, pin), t, nil
}
