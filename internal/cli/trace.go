// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/db47h/netsim/internal/render"
	"github.com/spf13/cobra"
)

func newTraceCommand(root *RootOptions) *cobra.Command {
	opts := &runOptions{RootOptions: root}
	var (
		plots  []string
		height int
	)

	cmd := &cobra.Command{
		Use:   "trace FILE",
		Short: "Settle a circuit and show every step",
		Long: `Settle the top level circuit of a description and print the waveform
of every net and boundary pin, one column per step.

Examples:
  netsim trace latch.yaml --set S=0 --set R=1
  netsim trace latch.yaml --set S=0 --set R=1 --plot Q`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.simulate(cmd.Context(), args[0])
			if r == nil {
				return err
			}
			w := cmd.OutOrStdout()
			if werr := opts.renderer().Waveform(w, r.Trace); werr != nil {
				return wrapExit(ExitCommandError, "write output", werr)
			}
			for _, name := range plots {
				p, perr := render.Plot(r.Trace, name, height)
				if perr != nil {
					return wrapExit(ExitCommandError, "plot", perr)
				}
				fmt.Fprintf(w, "\n%s\n", p)
			}
			if r.ID != "" {
				fmt.Fprintf(w, "run %s\n", r.ID)
			}
			return err
		},
	}

	addRunFlags(cmd, opts)
	cmd.Flags().StringArrayVar(&plots, "plot", nil, "plot a net or pin over the steps, repeatable")
	cmd.Flags().IntVar(&height, "height", 4, "plot height")
	return cmd
}
