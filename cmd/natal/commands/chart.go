package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"natal-chart-service/internal/api/dto"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/services"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type chartOptions struct {
	date    string
	time    string
	city    string
	country string
	lat     float64
	lon     float64
	asJSON  bool
}

func newChartCmd(build appBuilder) *cobra.Command {
	var opts chartOptions

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a natal chart",
		Long: `Compute a natal chart for a birth date, clock time and place.

The place is either a city/country pair looked up in the city table
(unknown places fall back to Greenwich) or explicit --lat/--lon.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			coordsSet := cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon")
			if coordsSet && !(cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon")) {
				return errors.New("--lat and --lon must be given together")
			}
			if !coordsSet && (opts.city == "" || opts.country == "") {
				return errors.New("either --city and --country, or --lat and --lon, are required")
			}

			a, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var chart *domain.ChartResult
			if coordsSet {
				moment, err := services.ParseBirthMoment(opts.date, opts.time)
				if err != nil {
					return err
				}
				chart, err = a.Engine.Compute(cmd.Context(), moment, domain.GeoCoordinate{Lat: opts.lat, Lon: opts.lon})
				if err != nil {
					return err
				}
			} else {
				chart, err = a.Engine.ComputeChart(cmd.Context(), domain.BirthInput{
					Date:    opts.date,
					Time:    opts.time,
					Country: opts.country,
					City:    opts.city,
				})
				if err != nil {
					return err
				}
			}

			res := dto.FromChart(chart, a.Engine.HouseSystem())
			if opts.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printChart(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.time, "time", "", "birth clock time (HH:MM or HH:MM:SS)")
	cmd.Flags().StringVar(&opts.city, "city", "", "birth city")
	cmd.Flags().StringVar(&opts.country, "country", "", "birth country")
	cmd.Flags().Float64Var(&opts.lat, "lat", 0, "latitude in degrees, north positive")
	cmd.Flags().Float64Var(&opts.lon, "lon", 0, "longitude in degrees, east positive")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the chart as JSON")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func printChart(out io.Writer, res dto.ChartResponse) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "BODY\tSIGN\tPOSITION\tHOUSE")
	for _, p := range res.Planets {
		fmt.Fprintf(tw, "%s\t%s\t%02d°%02d'\t%d\n", p.Name, p.Sign, p.Degree, p.Minute, p.House)
	}
	fmt.Fprintln(tw, "\t\t\t")

	fmt.Fprintln(tw, "POINT\tSIGN\tPOSITION\t")
	for _, p := range res.Points {
		fmt.Fprintf(tw, "%s\t%s\t%02d°%02d'\t\n", p.Name, p.Sign, p.Degree, p.Minute)
	}
	fmt.Fprintln(tw, "\t\t\t")

	fmt.Fprintf(tw, "HOUSE (%s)\tSIGN\tCUSP\t\n", res.HouseSystem)
	for _, h := range res.Houses {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t\n", h.HouseNumber, h.Sign, h.Degrees)
	}
	fmt.Fprintln(tw, "\t\t\t")

	fmt.Fprintln(tw, "ASPECT\tBETWEEN\tORB\t")
	for _, a := range res.Aspects {
		fmt.Fprintf(tw, "%s\t%s - %s\t%.2f\t\n", a.AspectType, a.Planet1, a.Planet2, a.Orb)
	}

	return tw.Flush()
}
