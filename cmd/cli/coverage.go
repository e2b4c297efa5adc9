package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sentinel-energy/uncertainty-cascade/internal/analysis"
	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

func coverageCmd() *cobra.Command {
	var archivePath string
	var year int

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Rank technologies by archive coverage for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			arch, err := archive.LoadJSON(archivePath)
			if err != nil {
				return err
			}
			ranked := analysis.RankByCompleteness(arch, model.ModelYear(year))

			fmt.Printf("%-28s %-8s %-12s %-10s %-10s\n", "technology", "rows", "completeness", "mean", "first")
			for _, c := range ranked {
				first := ""
				if !c.First.IsZero() {
					first = c.First.Format("2006-01-02")
				}
				fmt.Printf("%-28s %-8d %-12.3f %-10.4f %-10s\n",
					c.Technology, c.Rows, c.Completeness, c.MeanValue, first)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&archivePath, "archive", "", "Path to archive JSON")
	cmd.Flags().IntVar(&year, "year", 2015, "Analysis year")
	_ = cmd.MarkFlagRequired("archive")
	return cmd
}
