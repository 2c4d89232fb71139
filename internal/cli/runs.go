// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/db47h/netsim/internal/store"
	"github.com/spf13/cobra"
)

func newRunsCommand(root *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved runs",
	}
	cmd.AddCommand(newRunsListCommand(root))
	cmd.AddCommand(newRunsShowCommand(root))
	return cmd
}

func (o *RootOptions) openStore() (*store.Store, error) {
	st, err := store.Open(o.cfg.DB)
	if err != nil {
		return nil, wrapExit(ExitCommandError, "open run database", err)
	}
	return st, nil
}

func newRunsListCommand(root *RootOptions) *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, most recent first",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return checkFormat(format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := root.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			rs, err := st.List(cmd.Context(), limit)
			if err != nil {
				return wrapExit(ExitCommandError, "list runs", err)
			}
			w := cmd.OutOrStdout()
			if format != "text" {
				out := make([]*result, len(rs))
				for i, r := range rs {
					out[i] = newResult(r)
				}
				return writeStructured(w, format, out)
			}
			listRuns(w, rs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs (0 for all)")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json|yaml)")
	return cmd
}

func listRuns(w io.Writer, rs []*store.Run) {
	if len(rs) == 0 {
		fmt.Fprintln(w, "no runs")
		return
	}
	fmt.Fprintf(w, "%-36s  %-19s  %-12s  %5s  %s\n", "ID", "CREATED", "TOP", "STEPS", "OUTCOME")
	for _, r := range rs {
		fmt.Fprintf(w, "%-36s  %-19s  %-12s  %5d  %s\n",
			r.ID, r.Created.Local().Format(time.DateTime), r.Top, r.Steps, r.Outcome)
	}
}

func newRunsShowCommand(root *RootOptions) *cobra.Command {
	var wave bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := root.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			r, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return wrapExit(ExitCommandError, "show run", err)
			}
			w := cmd.OutOrStdout()
			showRun(w, r)
			rd := root.renderer()
			if wave && r.Trace != nil {
				return rd.Waveform(w, r.Trace)
			}
			return rd.Snapshot(w, r.Snapshot)
		},
	}
	cmd.Flags().BoolVar(&wave, "wave", false, "show the recorded waveform instead of the final state")
	return cmd
}

func showRun(w io.Writer, r *store.Run) {
	names := make([]string, 0, len(r.Inputs))
	for k := range r.Inputs {
		names = append(names, k)
	}
	sort.Strings(names)
	in := make([]string, len(names))
	for i, n := range names {
		v := "0"
		if r.Inputs[n] {
			v = "1"
		}
		in[i] = n + "=" + v
	}
	fmt.Fprintf(w, "id:      %s\n", r.ID)
	fmt.Fprintf(w, "created: %s\n", r.Created.Local().Format(time.DateTime))
	fmt.Fprintf(w, "file:    %s\n", r.File)
	fmt.Fprintf(w, "top:     %s\n", r.Top)
	fmt.Fprintf(w, "inputs:  %s\n", strings.Join(in, " "))
	fmt.Fprintf(w, "steps:   %d\n", r.Steps)
	fmt.Fprintf(w, "outcome: %s\n", r.Outcome)
	if r.Error != "" {
		fmt.Fprintf(w, "error:   %s\n", r.Error)
	}
	fmt.Fprintln(w)
}
