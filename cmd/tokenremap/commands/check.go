package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/tokenremap/cmd/tokenremap/opts"
	"github.com/walteh/tokenremap/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Report which font-size tokens would be rewritten",
		Long: `Check runs the same rewrite as apply but never writes the file.
It prints one row per rule with the number of matches found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "check").Logger().WithContext(cmd.Context())
			logger := log.FromContext(ctx)

			target, err := opts.Target(args)
			if err != nil {
				return err
			}

			remapper, err := opts.NewRemapper()
			if err != nil {
				return err
			}

			report, err := remapper.Check(ctx, target)
			if err != nil {
				return errors.Errorf("checking %s: %w", target, err)
			}

			logger.Header(fmt.Sprintf("checking %s (%s)", target, opts.EffectiveStrategy()))

			data := pterm.TableData{{"from", "to", "matches"}}
			for _, c := range report.Counts {
				data = append(data, []string{c.Rule.From, c.Rule.To, strconv.Itoa(c.Count)})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering table: %w", err)
			}
			fmt.Fprintln(logger.Console(), table)

			status := "no change"
			if report.Modified {
				status = "would change"
			}
			logger.LogFileOperation(ctx, log.FileOperation{
				Path:         report.Path,
				Status:       status,
				Replacements: report.Replacements,
				IsModified:   report.Modified,
			})

			switch {
			case report.SizeBefore == 0:
				logger.Warning("file is empty")
			case report.Modified:
				logger.Infof("%d tokens would be rewritten", report.Replacements)
			default:
				logger.Success("already up to date")
			}

			return nil
		},
	}

	return cmd
}
