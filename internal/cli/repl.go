// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"github.com/db47h/netsim/internal/repl"
	"github.com/spf13/cobra"
)

func newReplCommand(root *RootOptions) *cobra.Command {
	opts := &runOptions{RootOptions: root}

	cmd := &cobra.Command{
		Use:   "repl FILE",
		Short: "Drive a circuit interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(args[0])
			if err != nil {
				return err
			}
			sess := repl.NewSession(s.c, cmd.OutOrStdout(), opts.renderer(), s.limit, opts.log)
			return repl.Run(cmd.Context(), sess, s.top+"> ")
		},
	}

	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "set an input pin or bus (NAME=VALUE), repeatable")
	return cmd
}
