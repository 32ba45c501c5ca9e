package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/foamquote/internal/document"
)

func newMigrateCmd(opts *options) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "migrate <file>",
		Short: "Upgrade an estimate document to the current version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := document.Migrate(raw)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}
			if err := os.WriteFile(outPath, append(out, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			opts.log.Info("document migrated", zap.String("from", args[0]), zap.String("to", outPath), zap.Int("version", document.SchemaVersion))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the upgraded document to this file")
	return cmd
}
