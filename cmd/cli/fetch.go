package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/data"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// fetchCmd pulls per-site hourly profiles from renewables.ninja for every
// site in a sites file and writes them as one archive export. Site profiles
// of the same technology are averaged into a single series.
func fetchCmd() *cobra.Command {
	var sitesPath string
	var outPath string
	var year int
	var token string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch renewables.ninja profiles into an archive export",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv("NINJA_TOKEN")
			}
			list, err := data.LoadSites(sitesPath)
			if err != nil {
				return err
			}
			client := data.NewNinjaClient(token, "")

			from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

			perTech := map[string][]siteSeries{}
			for _, site := range list.Sites {
				rows, err := client.FetchProfile(cmd.Context(), data.FetchParams{
					Dataset:   site.Dataset,
					Latitude:  site.Latitude,
					Longitude: site.Longitude,
					From:      from,
					To:        to,
				})
				if err != nil {
					return fmt.Errorf("site %s: %w", site.ID, err)
				}
				log.Info().Str("site", site.ID).Int("rows", len(rows)).Msg("fetched profile")
				perTech[site.Technology] = append(perTech[site.Technology], siteSeries{site: site.ID, rows: rows})
			}

			export := archive.ArchiveFile{Region: list.Region}
			for tech, series := range perTech {
				for _, row := range averageSeries(series) {
					export.Rows = append(export.Rows, archive.ArchiveRow{
						Technology: tech,
						Timestamp:  row.Timestamp.Format(time.RFC3339),
						Value:      row.Value,
					})
				}
			}

			raw, err := json.MarshalIndent(&export, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, raw, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d rows for %d technologies to %s\n",
				len(export.Rows), len(perTech), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&sitesPath, "sites", data.GetDefaultSitesPath(), "Path to sites JSON")
	cmd.Flags().StringVar(&outPath, "out", "data/archive.json", "Output archive path")
	cmd.Flags().IntVar(&year, "year", 2015, "Observation year to fetch")
	cmd.Flags().StringVar(&token, "token", "", "renewables.ninja API token (or NINJA_TOKEN)")
	return cmd
}

type siteSeries struct {
	site string
	rows []model.Observation
}

// averageSeries averages aligned site profiles into one technology series.
// Timestamps missing from a site are simply absent from its contribution.
func averageSeries(series []siteSeries) []model.Observation {
	sum := map[time.Time]float64{}
	count := map[time.Time]int{}
	for _, s := range series {
		for _, row := range s.rows {
			sum[row.Timestamp] += row.Value
			count[row.Timestamp]++
		}
	}
	out := make([]model.Observation, 0, len(sum))
	for ts, total := range sum {
		out = append(out, model.Observation{Timestamp: ts, Value: total / float64(count[ts])})
	}
	model.SortObservations(out)
	return out
}
