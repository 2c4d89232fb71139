// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package repl implements an interactive shell to drive a circuit one step at
// a time.
//
package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/render"
	"github.com/db47h/netsim/internal/trace"
	"github.com/pkg/errors"
)

// Session holds the state of an interactive session.
//
type Session struct {
	c        *netsim.Circuit
	out      io.Writer
	r        *render.Renderer
	maxSteps int
	log      *slog.Logger
	tr       *trace.Trace
	step     int
}

// NewSession returns a new session driving c. Output is written to out.
//
func NewSession(c *netsim.Circuit, out io.Writer, r *render.Renderer, maxSteps int, log *slog.Logger) *Session {
	if r == nil {
		r = render.New(false)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{c: c, out: out, r: r, maxSteps: maxSteps, log: log}
}

// Assign parses an assignment of the form NAME=VALUE and applies it to c.
// If NAME is a boundary input pin, VALUE must be a boolean (0, 1, true,
// false). Otherwise, if NAME is the name of a bus of input pins NAME[0],
// NAME[1], etc., VALUE is an unsigned integer in any base accepted by
// strconv.ParseUint.
//
func Assign(c *netsim.Circuit, s string) error {
	name, val, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	val = strings.TrimSpace(val)
	if !ok || name == "" || val == "" {
		return errors.Errorf("invalid assignment %q, expected NAME=VALUE", s)
	}
	if _, err := c.External(name); err == nil {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return errors.Errorf("invalid value %q for pin %s", val, name)
		}
		return c.SetExternalInput(name, b)
	}
	w := netsim.BusWidth(c, name)
	if w == 0 {
		return &netsim.UnknownExternalConnectionError{Name: name}
	}
	v, err := strconv.ParseUint(val, 0, 64)
	if err != nil {
		return errors.Errorf("invalid value %q for bus %s", val, name)
	}
	if w < 64 && v>>uint(w) != 0 {
		return errors.Errorf("value %d overflows %d bit bus %s", v, w, name)
	}
	return netsim.SetBus(c, name, w, v)
}

// Exec executes a single command line. It returns true if the session should
// end.
//
func (s *Session) Exec(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "help", "?":
		s.help()
	case "set", "s":
		return false, s.set(args)
	case "get", "g":
		return false, s.get(args)
	case "step":
		return false, s.doStep()
	case "settle":
		return false, s.settle(args)
	case "show":
		return false, s.r.Snapshot(s.out, s.c.Snapshot())
	case "wave", "w":
		if s.tr == nil {
			return false, errors.New("no trace recorded, run settle first")
		}
		return false, s.r.Waveform(s.out, s.tr)
	case "plot":
		return false, s.plot(args)
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, errors.Errorf("unknown command %s (type 'help' for commands)", cmd)
	}
	return false, nil
}

func (s *Session) set(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: set NAME=VALUE...")
	}
	for _, a := range args {
		if err := Assign(s.c, a); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) get(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: get PIN...")
	}
	for _, a := range args {
		cn, err := netsim.ParseConn(a)
		if err != nil {
			return err
		}
		var sig netsim.Signal
		if cn.External != "" {
			if w := netsim.BusWidth(s.c, cn.External); w > 0 {
				v, err := netsim.Bus(s.c, cn.External, w)
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "%s = %d\n", a, v)
				continue
			}
			sig, err = s.c.External(cn.External)
		} else {
			sig, err = s.c.PinState(cn.Part, cn.Pin)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s = %s\n", a, sig)
	}
	return nil
}

func (s *Session) doStep() error {
	changed, err := s.c.Step()
	if err != nil {
		return err
	}
	s.step++
	s.log.Debug("step", "n", s.step, "changed", changed)
	if changed {
		fmt.Fprintf(s.out, "step %d: changed\n", s.step)
	} else {
		fmt.Fprintf(s.out, "step %d: stable\n", s.step)
	}
	return nil
}

func (s *Session) settle(args []string) error {
	n := s.maxSteps
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return errors.Errorf("invalid step count %q", args[0])
		}
		n = v
	}
	tr, err := trace.Record(s.c, n)
	s.tr = tr
	s.step += tr.Steps()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "settled after %d steps\n", tr.Steps())
	return nil
}

func (s *Session) plot(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: plot NET [HEIGHT]")
	}
	if s.tr == nil {
		return errors.New("no trace recorded, run settle first")
	}
	h := 5
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			return errors.Errorf("invalid height %q", args[1])
		}
		h = v
	}
	p, err := render.Plot(s.tr, args[0], h)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, p)
	return nil
}

func (s *Session) help() {
	fmt.Fprint(s.out, `Commands:
  set NAME=VALUE...  set boundary inputs (or a whole input bus)
  get PIN...         show a boundary pin, a bus or a part pin (part.pin)
  step               run a single evaluation step
  settle [N]         step until stable, at most N steps
  show               show all nets and boundary pins
  wave               show the waveform of the last settle
  plot NET [HEIGHT]  plot a net over the last settle
  help               show this help
  quit               exit
`)
}

// Run reads commands from a readline prompt and executes them until the user
// quits, input ends or ctx is done.
//
func Run(ctx context.Context, s *Session, prompt string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return errors.Wrap(err, "create readline")
	}
	defer rl.Close()
	s.out = rl.Stdout()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}
		quit, err := s.Exec(line)
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}
