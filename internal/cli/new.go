package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simplici0/foamquote/internal/document"
	"github.com/Simplici0/foamquote/internal/estimate"
)

var areaTypes = []estimate.AreaType{
	estimate.AreaGeneral,
	estimate.AreaExteriorWalls,
	estimate.AreaRoofDeck,
	estimate.AreaGable,
}

func parseAreaType(raw string) (estimate.AreaType, error) {
	for _, t := range areaTypes {
		if strings.EqualFold(raw, string(t)) || strings.EqualFold(strings.ReplaceAll(raw, "-", " "), string(t)) {
			return t, nil
		}
	}
	names := make([]string, 0, len(areaTypes))
	for _, t := range areaTypes {
		names = append(names, fmt.Sprintf("%q", t))
	}
	return "", fmt.Errorf("unknown area type %q (want one of %s)", raw, strings.Join(names, ", "))
}

func newNewCmd() *cobra.Command {
	var areaType string
	var name string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Print a fresh estimate document with one default area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseAreaType(areaType)
			if err != nil {
				return err
			}

			state := estimate.NewState()
			state.Metadata.Name = name
			state, err = estimate.SetAreaType(state, state.Areas[0].ID, t)
			if err != nil {
				return err
			}

			out, err := document.Encode(document.FromState(estimate.NewID(), state))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&areaType, "area-type", string(estimate.AreaGeneral), "Type of the first area (General, Exterior Walls, Roof Deck, Gable)")
	cmd.Flags().StringVar(&name, "name", "", "Estimate name")
	return cmd
}
