package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/tokenremap/cmd/tokenremap/commands"
	"github.com/walteh/tokenremap/cmd/tokenremap/opts"
	"github.com/walteh/tokenremap/pkg/log"
)

// newRootCmd wires flags, logging and subcommands
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "tokenremap [path]",
		Short: "Bump Tailwind font-size tokens in a source file",
		Long: `tokenremap rewrites text-xs to text-base and text-[10px] to text-sm
in a single file, in place. Without a subcommand it behaves like apply.

A target file named like a subcommand must follow "--":

  tokenremap -- check`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd, rootOpts.Debug)
			if err := rootOpts.LoadConfig(cmd.Context(), args); err != nil {
				return err
			}
			// the config can only turn debug on
			if rootOpts.Config.Debug && !rootOpts.Debug {
				setupLogging(cmd, true)
			}
			zerolog.Ctx(cmd.Context()).Debug().Str("config", rootOpts.Config.String()).Msg("resolved config")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunApply(cmd, rootOpts, args)
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: discover .tokenremap.{yaml,yml,hcl,json} when no path is given)")
	cmd.PersistentFlags().StringVarP(&o.Strategy, "strategy", "s", "", "replacement strategy: simultaneous or sequential")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging puts a zerolog logger on stderr and a console logger on stdout into the command context
func setupLogging(cmd *cobra.Command, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).With().Timestamp().Logger()

	ctx := zlog.WithContext(cmd.Context())
	ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), zlog))
	cmd.SetContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// no config or logging needed
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
			return nil
		},
	}
}
