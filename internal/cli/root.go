// Package cli implements the foamcalc command line tool.
package cli

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/foamquote/internal/logger"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	noColor bool
	verbose bool
	log     *zap.Logger
}

// NewRootCmd builds the foamcalc command tree writing to out.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "foamcalc",
		Short:         "foamcalc prices spray foam insulation estimates",
		Long:          `foamcalc reads estimate documents, prices them and exports CRM line items.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			if opts.verbose {
				opts.log = logger.NewStderr("debug")
			}
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	root.AddCommand(
		newCalcCmd(opts),
		newLineItemsCmd(opts),
		newMigrateCmd(opts),
		newNewCmd(),
	)
	return root
}

// Execute runs foamcalc against the process streams.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
