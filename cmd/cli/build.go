package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/build"
	"github.com/sentinel-energy/uncertainty-cascade/internal/config"
)

func buildCmd() *cobra.Command {
	var cfgPath string
	var archivePath string
	var outDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a resolved dataset from a run config and an archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if archivePath == "" {
				archivePath = cfg.ArchiveFile
			}
			if archivePath == "" {
				return fmt.Errorf("--archive or archive_file in config is required")
			}
			arch, err := archive.LoadJSON(archivePath)
			if err != nil {
				return err
			}

			ds, err := build.New().Run(cfg, arch)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			factorsPath := filepath.Join(outDir, "factors.csv")
			seriesPath := filepath.Join(outDir, "series.csv")
			if err := build.WriteFactorsCSV(factorsPath, ds); err != nil {
				return err
			}
			if err := build.WriteSeriesCSV(seriesPath, ds); err != nil {
				return err
			}

			fmt.Printf("run %s: %d timestamps, %d technologies bound, %d fallbacks, %d failures\n",
				ds.RunID, ds.Window.Len(), len(ds.Factors), len(ds.Fallbacks), len(ds.Failures))
			fmt.Printf("wrote %s and %s\n", factorsPath, seriesPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to YAML run config")
	cmd.Flags().StringVar(&archivePath, "archive", "", "Path to archive JSON (overrides config archive_file)")
	cmd.Flags().StringVar(&outDir, "out", "results", "Output directory for CSVs")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
