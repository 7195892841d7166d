package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"triprecord/core/config"
	"triprecord/core/database"
	"triprecord/core/logger"
	"triprecord/core/storage"
	"triprecord/feature/trips"
	"triprecord/feature/trips/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile charges command
	dryRunCharges bool
	yesConfirm    bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile legacy charges into the trip store",
	Long: `Reconcile merges the legacy charge stream into the normalized trip store
using visit-reference and ship/date matching, then commits the planned
updates and creations in chunked batches.`,
}

// chargesReconcileCmd runs one full charge-to-trip reconciliation.
var chargesReconcileCmd = &cobra.Command{
	Use:   "charges",
	Short: "Run a charge-to-trip reconciliation (plan + commit)",
	Long: `Run a full charge-to-trip reconciliation.

Plans updates for matched unconfirmed trips and creations for orphan charges,
prints the plan summary, and commits it in 500-operation chunks after
confirmation.

A run that fails mid-batch leaves its committed chunks applied. Simply run
the command again: replanning classifies the committed work as already
synced and the new plan contains only the remaining operations.

Examples:
  # Plan only, commit nothing
  triprecord reconcile charges --dry-run

  # Plan and commit with interactive confirmation
  triprecord reconcile charges

  # Non-interactive commit
  triprecord reconcile charges --yes`,
	RunE: runChargesReconcile,
}

func init() {
	reconcileCmd.AddCommand(chargesReconcileCmd)

	chargesReconcileCmd.Flags().BoolVar(&dryRunCharges, "dry-run", false, "Plan only, commit nothing")
	chargesReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the commit (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runChargesReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting charge reconciliation")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Storage is optional; without it the run report is simply not archived.
	var store storage.Client
	if client, err := storage.NewClient(cfg.Storage); err != nil {
		l.Warn("Storage client unavailable, report archival disabled", zap.Error(err))
	} else {
		store = client
	}

	svc := trips.NewService(db, store, cfg.Storage.Bucket, l, cfg.Server.DefaultPort)

	l.Info("Planning reconciliation...")
	plan, err := svc.Plan(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	printPlanSummary(l, plan)

	if dryRunCharges {
		l.Info("Dry-run mode: no changes were made.")
		return nil
	}

	if len(plan.Ops) == 0 {
		l.Info("Nothing to commit; every charge is already synced or skipped.")
		return nil
	}

	if !confirmCommit() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Committing plan...", zap.Int("operations", len(plan.Ops)))
	res, err := svc.ApplyPlan(ctx, plan)
	if err != nil {
		l.Error("Commit aborted mid-batch; committed chunks stand",
			zap.Int("chunks_committed", res.ChunksCommitted),
			zap.Int("ops_applied", res.OpsApplied),
		)
		return fmt.Errorf("failed to commit plan (re-run to commit the remaining operations): %w", err)
	}

	l.Info("Reconciliation committed",
		zap.Int("chunks_committed", res.ChunksCommitted),
		zap.Int("ops_applied", res.OpsApplied),
	)
	return nil
}

// printPlanSummary prints the plan counters using the logger.
func printPlanSummary(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation plan",
		zap.Int("total_charges", s.TotalCharges),
		zap.Int("trips_to_update", s.TripsUpdated),
		zap.Int("trips_to_create", s.TripsCreated),
		zap.Int("already_synced", s.AlreadySynced),
		zap.Int("no_boarding_time", s.NoBoarding),
		zap.Int("by_visit_reference", s.Matches.ByVisitReference),
		zap.Int("by_ship_and_boarding", s.Matches.ByShipAndBoarding),
	)
}

// confirmCommit prompts the user for confirmation or uses the --yes flag.
func confirmCommit() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to commit the planned writes: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
