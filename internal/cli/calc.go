package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/foamquote/internal/money"
	"github.com/Simplici0/foamquote/internal/pricing"
)

func newCalcCmd(opts *options) *cobra.Command {
	var settingsPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc <file>",
		Short: "Price an estimate document",
		Long:  `Price an estimate document and print a summary. Use "-" to read from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, opts, args[0], settingsPath)
			if err != nil {
				return err
			}

			report := pricing.Calculate(state)
			for _, a := range report.Areas {
				if a.PitchError != "" {
					opts.log.Warn("invalid roof pitch", zap.String("area", a.Name), zap.String("error", a.PitchError))
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printSummary(cmd.OutOrStdout(), state.Metadata.Name, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Business settings YAML file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	return cmd
}

func usd(v float64) string {
	v = money.Round2(v)
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func pct(v float64) string {
	return humanize.FormatFloat("#,###.#", v) + "%"
}

func printSummary(w io.Writer, name string, r pricing.Report) {
	bold := color.New(color.Bold).SprintFunc()
	warn := color.New(color.FgYellow)
	e := r.Estimate

	if name == "" {
		name = "Untitled estimate"
	}
	fmt.Fprintln(w, bold(name))

	for _, a := range r.Areas {
		fmt.Fprintf(w, "  %-24s %10s sqft  %12s\n", a.Name, humanize.Commaf(money.Round2(a.SqFt)), usd(a.TotalCost))
		if a.PitchError != "" {
			warn.Fprintf(w, "    pitch ignored: %s\n", a.PitchError)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Total area        %s sqft\n", humanize.Commaf(money.Round2(e.TotalSqFt)))
	fmt.Fprintf(w, "  Sets              open %s / closed %s\n", humanize.Ftoa(money.Round2(e.TotalSets.Open)), humanize.Ftoa(money.Round2(e.TotalSets.Closed)))
	fmt.Fprintf(w, "  Material          %s (+%s markup)\n", usd(e.BaseMaterialCost), usd(e.MaterialMarkupAmount))
	fmt.Fprintf(w, "  Labor & logistics %s at %s/hr\n", usd(e.LaborTotal), usd(e.ChargedLaborRate))
	fmt.Fprintf(w, "  %s     %s\n", bold("Customer cost"), bold(usd(e.CustomerCost)))
	fmt.Fprintf(w, "  Commission        %s (%s)\n", usd(e.Commission), pct(e.CommissionRate*100))
	fmt.Fprintf(w, "  Job overhead      %s\n", usd(e.JobOverhead))

	profit := color.New(color.FgGreen)
	if e.TrueNetProfit < 0 {
		profit = color.New(color.FgRed)
	}
	profit.Fprintf(w, "  True net profit   %s (%s final margin)\n", usd(e.TrueNetProfit), pct(e.FinalMargin))
}
