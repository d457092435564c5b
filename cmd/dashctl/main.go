// Command dashctl prints dashboard views in the terminal and manages the
// postgres copy of the dataset.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"studentdash/internal/analytics"
	"studentdash/internal/config"
	"studentdash/internal/dataset"
	"studentdash/internal/db"
	"studentdash/internal/report"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "dashctl",
		Short:        "Student activity dashboard tools",
		SilenceUsage: true,
	}
	root.AddCommand(newReportCmd(cfg), newImportCmd(cfg), newDeriveCmd())
	return root
}

func newReportCmd(cfg *config.Config) *cobra.Command {
	var (
		file        string
		source      string
		databaseURL string
		configFile  string
		activities  []string
		intensities []string
		noTrend     bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard for a filter selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := config.LoadYAMLConfig(configFile)
			if err != nil {
				return fmt.Errorf("read %s: %w", configFile, err)
			}

			ds, err := loadDataset(cmd.Context(), source, file, databaseURL)
			if err != nil {
				return err
			}

			sel := ds.Options(ui.Filters.ExcludedDefaultActivities).Default
			if cmd.Flags().Changed("activity") {
				sel.Activities = activities
			}
			if cmd.Flags().Changed("intensity") {
				sel.Intensities = intensities
			}

			opts := analytics.Options{TopN: ui.Filters.TopN}
			if !noTrend {
				opts.Fitter = analytics.OLSFitter{}
			}

			d, err := analytics.Build(ds.Records, sel, opts)
			if errors.Is(err, analytics.ErrNoData) {
				return report.WriteNoData(cmd.OutOrStdout())
			}
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), d, ui.Sections)
		},
	}

	f := cmd.Flags()
	f.StringVar(&file, "file", cfg.DatasetPath, "CSV dataset path")
	f.StringVar(&source, "source", cfg.DatasetSource, "dataset source: csv or postgres")
	f.StringVar(&databaseURL, "database-url", cfg.DatabaseURL, "postgres connection string")
	f.StringVar(&configFile, "config", cfg.ConfigFile, "dashboard.yaml path")
	f.StringArrayVar(&activities, "activity", nil, "activity to include (repeatable)")
	f.StringArrayVar(&intensities, "intensity", nil, "intensity level to include (repeatable)")
	f.BoolVar(&noTrend, "no-trendline", !cfg.EnableTrendline, "skip trendline fitting")
	return cmd
}

func newImportCmd(cfg *config.Config) *cobra.Command {
	var (
		file        string
		databaseURL string
		replace     bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a CSV dataset into postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.LoadCSVFile(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			database, err := db.New(ctx, databaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer database.Close()

			if err := database.RunMigrations(databaseURL); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			n, err := database.ImportStudentRows(ctx, dataset.ToRows(ds.Records), replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records from %s\n", n, file)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&file, "file", cfg.DatasetPath, "CSV dataset path")
	f.StringVar(&databaseURL, "database-url", cfg.DatabaseURL, "postgres connection string")
	f.BoolVar(&replace, "replace", false, "delete existing records first")
	return cmd
}

func newDeriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive [activity...]",
		Short: "Show the intensity level derived from activity names",
		Long:  "Show the intensity level derived from each argument, or from each line of stdin when no arguments are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, a := range args {
					fmt.Fprintf(out, "%s\t%s\n", a, analytics.DeriveIntensity(a))
				}
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimRight(scanner.Text(), "\r")
				fmt.Fprintf(out, "%s\t%s\n", line, analytics.DeriveIntensity(line))
			}
			return scanner.Err()
		},
	}
}

func loadDataset(ctx context.Context, source, file, databaseURL string) (*dataset.Dataset, error) {
	switch strings.ToLower(source) {
	case config.SourceCSV:
		return dataset.LoadCSVFile(file)
	case config.SourcePostgres:
		database, err := db.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		defer database.Close()
		return database.LoadDataset(ctx)
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}
