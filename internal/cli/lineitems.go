package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/foamquote/internal/crm"
	"github.com/Simplici0/foamquote/internal/pricing"
)

func newLineItemsCmd(opts *options) *cobra.Command {
	var settingsPath string

	cmd := &cobra.Command{
		Use:   "line-items <file>",
		Short: "Print CRM quote line items as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, opts, args[0], settingsPath)
			if err != nil {
				return err
			}
			items := crm.LineItems(pricing.Calculate(state))
			opts.log.Debug("line items built", zap.Int("count", len(items)), zap.Float64("total", crm.Total(items)))
			return writeJSON(cmd.OutOrStdout(), items)
		},
	}

	cmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Business settings YAML file")
	return cmd
}
