// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// result is the machine readable output of settle.
//
type result struct {
	ID       string          `json:"id,omitempty" yaml:"id,omitempty"`
	File     string          `json:"file" yaml:"file"`
	Top      string          `json:"top" yaml:"top"`
	Inputs   map[string]bool `json:"inputs" yaml:"inputs"`
	Steps    int             `json:"steps" yaml:"steps"`
	Outcome  string          `json:"outcome" yaml:"outcome"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
	Snapshot netsim.Snapshot `json:"snapshot" yaml:"snapshot"`
}

func newResult(r *store.Run) *result {
	return &result{
		ID:       r.ID,
		File:     r.File,
		Top:      r.Top,
		Inputs:   r.Inputs,
		Steps:    r.Steps,
		Outcome:  r.Outcome,
		Error:    r.Error,
		Snapshot: r.Snapshot,
	}
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.Errorf("unsupported format %q", format)
}

func newSettleCommand(root *RootOptions) *cobra.Command {
	opts := &runOptions{RootOptions: root}
	var format string

	cmd := &cobra.Command{
		Use:   "settle FILE",
		Short: "Settle a circuit and show its final state",
		Long: `Build the top level circuit of a description, set its inputs and
step it until no pin changes.

Examples:
  netsim settle adder.yaml --set a=3 --set b=1 --set cin=0
  netsim settle latch.yaml --set S=1 --set R=0 --format json --save`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return checkFormat(format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.simulate(cmd.Context(), args[0])
			if r == nil {
				return err
			}
			w := cmd.OutOrStdout()
			if format != "text" {
				if werr := writeStructured(w, format, newResult(r)); werr != nil {
					return wrapExit(ExitCommandError, "write output", werr)
				}
				return err
			}
			if werr := opts.renderer().Snapshot(w, r.Snapshot); werr != nil {
				return wrapExit(ExitCommandError, "write output", werr)
			}
			if err == nil {
				fmt.Fprintf(w, "\nsettled after %d steps\n", r.Steps)
			}
			if r.ID != "" {
				fmt.Fprintf(w, "run %s\n", r.ID)
			}
			return err
		},
	}

	addRunFlags(cmd, opts)
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json|yaml)")
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	fs := cmd.Flags()
	fs.StringArrayVar(&opts.Set, "set", nil, "set an input pin or bus (NAME=VALUE), repeatable")
	fs.IntVar(&opts.MaxSteps, "max-steps", 0, "step limit (default from description or configuration)")
	fs.BoolVar(&opts.Save, "save", false, "save the run to the run database")
}
