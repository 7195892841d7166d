package cmd

import (
	"context"
	"fmt"

	"triprecord/core/config"
	"triprecord/core/database"
	"triprecord/core/logger"
	"triprecord/feature/trips"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// analyzeCmd is the parent command for diagnostic passes.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Read-only diagnostics over the charge and trip stores",
}

// orphansAnalyzeCmd reports unmatched charges without writing anything.
var orphansAnalyzeCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Classify and count charges with no matching trip",
	Long: `Analyze runs the same matching as reconciliation but performs no writes.
Every unmatched charge is classified by reason and aggregated by year,
year-month and reason.`,
	RunE: runOrphansAnalyze,
}

func init() {
	analyzeCmd.AddCommand(orphansAnalyzeCmd)
	RootCmd.AddCommand(analyzeCmd)
}

func runOrphansAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// CLI analysis never archives; the report goes to the terminal.
	svc := trips.NewService(db, nil, "", l, cfg.Server.DefaultPort)

	report, err := svc.Analyze(ctx)
	if err != nil {
		return fmt.Errorf("failed to analyze orphans: %w", err)
	}

	l.Info("Orphan analysis",
		zap.Int("total_charges", report.TotalCharges),
		zap.Int("total_trips", report.TotalTrips),
		zap.Int("total_orphans", report.TotalOrphans),
		zap.Timep("oldest_orphan", report.OldestOrphan),
		zap.Timep("newest_orphan", report.NewestOrphan),
	)
	for _, r := range report.ReasonBreakdown {
		l.Info("Orphans by reason", zap.String("reason", r.Reason), zap.Int("count", r.Count))
	}
	for _, y := range report.YearlyBreakdown {
		l.Info("Orphans by year", zap.String("year", y.Year), zap.Int("count", y.Count))
	}
	for _, s := range report.SampleOrphans {
		l.Info("Sample orphan",
			zap.String("charge_id", s.ChargeID),
			zap.String("ship", s.Ship),
			zap.String("type_trip", s.TypeTrip),
			zap.String("reason", s.Reason),
		)
	}

	return nil
}
