// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cli implements the netsim command line.
//
package cli

import (
	"io"
	"log/slog"

	"github.com/db47h/netsim/internal/config"
	"github.com/db47h/netsim/internal/render"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the loaded configuration.
//
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	DB         string
	Color      bool

	cfg *config.Config
	log *slog.Logger
}

func (o *RootOptions) renderer() *render.Renderer { return render.New(o.cfg.Color) }

// NewRootCommand creates the root command.
//
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "netsim",
		Short: "digital logic net simulator",
		Long: `netsim builds circuits of logic gates from YAML descriptions and
propagates signals through them until they settle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.ConfigFile, "config", "", "configuration file")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	fs.StringVar(&opts.DB, "db", config.DefaultDB, "run database")
	fs.BoolVar(&opts.Color, "color", true, "colored output")

	cmd.AddCommand(newSettleCommand(opts))
	cmd.AddCommand(newTraceCommand(opts))
	cmd.AddCommand(newReplCommand(opts))
	cmd.AddCommand(newRunsCommand(opts))
	cmd.AddCommand(newTypesCommand())

	return cmd
}

// setup loads the configuration, applies flag overrides and creates the
// logger.
//
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return wrapExit(ExitCommandError, "load configuration", err)
	}
	fs := cmd.Flags()
	if fs.Changed("db") {
		cfg.DB = o.DB
	}
	if fs.Changed("color") {
		cfg.Color = o.Color
	}
	level, err := cfg.Level()
	if err != nil {
		return wrapExit(ExitCommandError, "load configuration", err)
	}
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.cfg = cfg
	o.log = newLogger(cmd.ErrOrStderr(), level)
	o.log.Debug("configuration", "db", cfg.DB, "max_steps", cfg.MaxSteps, "color", cfg.Color)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func checkFormat(f string) error {
	switch f {
	case "text", "json", "yaml":
		return nil
	}
	return wrapExit(ExitCommandError, "invalid flag", errors.Errorf("invalid format %q: must be one of text, json, yaml", f))
}
