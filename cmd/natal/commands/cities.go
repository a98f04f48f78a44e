package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCitiesCmd(build appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the cities the location resolver knows",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CITY\tCOUNTRY\tLAT\tLON")
			for _, c := range a.Engine.Locations().Cities() {
				fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\n", c.Name, c.Country, c.Coordinate.Lat, c.Coordinate.Lon)
			}
			return tw.Flush()
		},
	}
}
