// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command netsim simulates digital logic circuits described in YAML.
//
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/db47h/netsim/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "netsim:", err)
	}
	os.Exit(cli.ExitCode(err))
}
