package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/tokenremap/cmd/tokenremap/opts"
	"github.com/walteh/tokenremap/pkg/log"
	"github.com/walteh/tokenremap/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [path]",
		Short: "Rewrite font-size tokens in a file",
		Long: `Apply rewrites the Tailwind font-size tokens of one file in place.
It will:
1. Read the whole file as UTF-8
2. Rename text-xs to text-base and text-[10px] to text-sm
3. Write the result back to the same path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunApply(cmd, opts, args)
		},
	}

	return cmd
}

// RunApply is shared with the root command, which applies by default
func RunApply(cmd *cobra.Command, opts *opts.RootOpts, args []string) error {
	ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

	target, err := opts.Target(args)
	if err != nil {
		return err
	}

	remapper, err := opts.NewRemapper()
	if err != nil {
		return err
	}

	if _, err := remapper.Remap(ctx, target); err != nil {
		return errors.Errorf("remapping %s: %w", target, err)
	}

	log.FromContext(ctx).Summary(text.SummaryLines()...)
	return nil
}
