package trips

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"triprecord/core/batch"
	"triprecord/core/storage"
	"triprecord/feature/trips/models"
	"triprecord/feature/trips/reconcile"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reportPrefix = "reports/"

// Service orchestrates reconciliation runs over the charge and trip stores.
type Service struct {
	db          *gorm.DB
	store       storage.Client
	bucket      string
	logger      *zap.Logger
	defaultPort string
}

// NewService creates a new trips service. store may be nil, in which case
// report archival is skipped.
func NewService(db *gorm.DB, store storage.Client, bucket string, logger *zap.Logger, defaultPort string) *Service {
	return &Service{
		db:          db,
		store:       store,
		bucket:      bucket,
		logger:      logger,
		defaultPort: defaultPort,
	}
}

// Plan loads both collections, builds the indexes and plans one run's write
// operations without committing anything.
func (s *Service) Plan(ctx context.Context) (*reconcile.Plan, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is not configured")
	}

	recs, err := LoadRecords(ctx, s.db)
	if err != nil {
		return nil, err
	}

	ix := reconcile.BuildIndexes(recs.Trips)
	plan := reconcile.BuildPlan(recs.Charges, ix, reconcile.PlanOptions{
		Now:         time.Now().UTC(),
		DefaultPort: s.defaultPort,
	})

	return plan, nil
}

// ApplyPlan commits a previously built plan from its first chunk. Chunk
// cursors are only meaningful against the plan they were computed from, so
// recovering from a partial run means replanning, not resuming: the committed
// work classifies as already-synced and only the pending operations remain.
func (s *Service) ApplyPlan(ctx context.Context, plan *reconcile.Plan) (batch.Result, error) {
	return reconcile.Apply(ctx, s.db, plan.Ops, reconcile.ApplyOptions{})
}

// Reconcile executes one full reconciliation run: plan, commit, report.
func (s *Service) Reconcile(ctx context.Context) (*models.ReconcileReport, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.ApplyPlan(ctx, plan)
	if err != nil {
		// Chunks committed before the failure stand. A re-invocation replans
		// and picks up only the remaining work.
		s.logger.Error("reconciliation aborted mid-batch",
			zap.Int("chunks_committed", res.ChunksCommitted),
			zap.Int("ops_applied", res.OpsApplied),
			zap.Error(err),
		)
		return nil, err
	}

	report := buildReconcileReport(plan.Summary)

	s.logger.Info("reconciliation run complete",
		zap.Int("total_charges", report.TotalCharges),
		zap.Int("trips_updated", report.TripsUpdated),
		zap.Int("trips_created", report.TripsCreated),
		zap.Int("already_synced", report.AlreadySynced),
		zap.Int("by_visit_reference", report.MatchBreakdown.ByVisitReference),
		zap.Int("by_ship_and_boarding", report.MatchBreakdown.ByShipAndBoarding),
	)

	s.archiveReport(ctx, "reconcile", report)
	return report, nil
}

// Analyze runs the read-only orphan diagnostic over both collections.
func (s *Service) Analyze(ctx context.Context) (*models.AnalysisReport, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is not configured")
	}

	recs, err := LoadRecords(ctx, s.db)
	if err != nil {
		return nil, err
	}

	ix := reconcile.BuildIndexes(recs.Trips)
	report := reconcile.Analyze(recs.Charges, len(recs.Trips), ix)

	s.logger.Info("orphan analysis complete",
		zap.Int("total_charges", report.TotalCharges),
		zap.Int("total_trips", report.TotalTrips),
		zap.Int("total_orphans", report.TotalOrphans),
	)

	s.archiveReport(ctx, "analysis", report)
	return report, nil
}

// ListReports lists archived run reports, newest storage order first being
// whatever the backend returns for the prefix.
func (s *Service) ListReports(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}

	var names []string
	for obj := range s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    reportPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}

	return names, nil
}

// GetReport fetches one archived report by object name.
func (s *Service) GetReport(ctx context.Context, name string) ([]byte, error) {
	if s.store == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	if !strings.HasPrefix(name, reportPrefix) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid report name %q", name)
	}

	reader, err := s.store.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", name, err)
	}
	return data, nil
}

// archiveReport uploads a run report to object storage. Archival is
// best-effort: a run's outcome never depends on the archive succeeding.
func (s *Service) archiveReport(ctx context.Context, kind string, report any) {
	if s.store == nil {
		return
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		s.logger.Warn("failed to marshal run report", zap.String("kind", kind), zap.Error(err))
		return
	}

	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Warn("report archive unavailable", zap.Error(err))
		return
	}
	if !exists {
		if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			s.logger.Warn("failed to create report bucket", zap.Error(err))
			return
		}
	}

	name := fmt.Sprintf("%s%s/%s-%s.json",
		reportPrefix, kind,
		time.Now().UTC().Format("20060102T150405Z"),
		uuid.NewString()[:8],
	)

	_, err = s.store.PutObject(ctx, s.bucket, name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		s.logger.Warn("failed to archive run report", zap.String("object", name), zap.Error(err))
		return
	}

	s.logger.Info("archived run report", zap.String("object", name))
}

// buildReconcileReport converts a plan summary into the API response shape.
func buildReconcileReport(sum reconcile.Summary) *models.ReconcileReport {
	return &models.ReconcileReport{
		TotalCharges:   sum.TotalCharges,
		TripsUpdated:   sum.TripsUpdated,
		TripsCreated:   sum.TripsCreated,
		AlreadySynced:  sum.AlreadySynced,
		MatchBreakdown: sum.Matches,
		Message: fmt.Sprintf(
			"Processed %d charges: %d trips updated, %d trips created, %d already synced, %d skipped without boarding time",
			sum.TotalCharges, sum.TripsUpdated, sum.TripsCreated, sum.AlreadySynced, sum.NoBoarding,
		),
	}
}
