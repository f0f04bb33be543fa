package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"guardias/feature/health"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixSnapshots bool

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the database, its schema and the snapshot storage",
	Long:  `Runs the same checks as GET /api/v1/health and exits non-zero when the service is unhealthy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := healthService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		report := svc.Check(commandContext(cmd))
		printHealth(os.Stdout, report)
		if report.Status != health.Healthy {
			return fmt.Errorf("service is %s", report.Status)
		}
		return nil
	},
}

// snapshotsCmd represents the health snapshots command
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Check and seed the fallback snapshots in storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := healthService()
		if err != nil {
			return err
		}
		defer logg.Sync()
		ctx := commandContext(cmd)

		missing, err := svc.MissingSnapshots(ctx)
		if err != nil {
			return fmt.Errorf("snapshot check failed: %w", err)
		}
		if len(missing) == 0 {
			logg.Info("All snapshots present")
			return nil
		}

		logg.Warn("Missing snapshots detected", zap.Strings("missing", missing))
		if !fixSnapshots {
			logg.Info("Use --fix to upload the local fallback files.")
			return nil
		}
		if err := svc.FixSnapshots(ctx, missing); err != nil {
			return fmt.Errorf("failed to seed snapshots: %w", err)
		}
		logg.Info("Snapshots seeded", zap.Int("count", len(missing)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
	healthCmd.AddCommand(snapshotsCmd)

	snapshotsCmd.Flags().BoolVar(&fixSnapshots, "fix", false, "Upload local fallback files for missing snapshots")
}

func healthService() (*health.Service, *zap.Logger, error) {
	d, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}
	return health.NewService(d.db, d.store, d.cfg.Storage.Bucket, d.snapshots(), d.logger), d.logger, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printHealth writes the component states and any schema problems.
func printHealth(w io.Writer, r *health.Report) {
	state := func(s string) string {
		switch s {
		case health.StatusOK, health.Healthy:
			return color.New(color.FgGreen).Sprint(s)
		case health.StatusDisabled:
			return color.New(color.FgHiBlack).Sprint(s)
		default:
			return color.New(color.FgRed).Sprint(s)
		}
	}

	fmt.Fprintf(w, "Status:   %s\n", state(r.Status))
	fmt.Fprintf(w, "Database: %s %s\n", state(r.Database.Status), r.Database.Error)
	fmt.Fprintf(w, "Storage:  %s %s\n", state(r.Storage.Status), r.Storage.Error)

	for _, m := range r.Snapshots {
		fmt.Fprintf(w, "  missing snapshot: %s\n", m)
	}

	if r.Schema == nil {
		return
	}
	tables := make([]string, 0, len(r.Schema.Tables))
	for name := range r.Schema.Tables {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	for _, name := range tables {
		tbl := r.Schema.Tables[name]
		fmt.Fprintf(w, "Table %s: %s\n", name, state(tbl.Status))
		for _, c := range tbl.MissingColumns {
			fmt.Fprintf(w, "  missing column: %s\n", c)
		}
		for _, m := range tbl.TypeMismatches {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
	for _, e := range r.Schema.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}
