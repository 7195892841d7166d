package reconcile

import (
	"time"

	"triprecord/feature/trips/models"

	"github.com/google/uuid"
)

// OpKind is the type of a planned write operation.
type OpKind string

const (
	// OpUpdate confirms an existing trip with the charge's billing fields.
	OpUpdate OpKind = "update"
	// OpCreate creates a new confirmed trip for an orphan charge.
	OpCreate OpKind = "create"
)

// Operation is one planned write against the trip store.
type Operation struct {
	Kind OpKind

	// TripID and Fields describe an update.
	TripID string
	Fields map[string]any

	// Trip is the full document for a create.
	Trip *models.Trip
}

// Summary accumulates per-charge classification counters during the planning
// scan. It is carried through the scan by reference; there is no global state.
type Summary struct {
	TotalCharges  int
	TripsUpdated  int
	TripsCreated  int
	AlreadySynced int
	// NoBoarding counts charges skipped for an unparseable boarding value.
	// They are reported by the analyzer, never written.
	NoBoarding int
	Matches    models.MatchBreakdown
}

// Plan is the flat operation list and counters for one reconciliation run.
type Plan struct {
	Ops     []Operation
	Summary Summary
}

// PlanOptions carries planning-time context.
type PlanOptions struct {
	// Now stamps confirmedAt when the charge has no update time.
	Now time.Time
	// DefaultPort backfills trips created from charges without a port.
	DefaultPort string
	// NewID generates ids for created trips; defaults to uuid.NewString.
	NewID func() string
}

// BuildPlan classifies every charge against the indexes and emits the write
// operations a run must commit. Confirmed trips that already carry a ship
// name are never touched again; orphan charges already covered by an earlier
// migration (via the migratedFromChargeID index) are skipped instead of
// duplicated.
func BuildPlan(charges []models.Charge, ix *Indexes, opts PlanOptions) *Plan {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	plan := &Plan{}
	plan.Summary.TotalCharges = len(charges)

	for i := range charges {
		c := &charges[i]

		boarding, ok := c.BoardingTime()
		if !ok {
			plan.Summary.NoBoarding++
			continue
		}

		trip, tier := ix.Match(c, boarding)
		switch tier {
		case TierVisit:
			plan.Summary.Matches.ByVisitReference++
		case TierShipDay:
			plan.Summary.Matches.ByShipAndBoarding++
		}

		if trip != nil {
			if trip.IsConfirmed && trip.Ship != "" {
				plan.Summary.AlreadySynced++
				continue
			}
			plan.Ops = append(plan.Ops, updateOp(trip, c, opts.Now))
			plan.Summary.TripsUpdated++
			continue
		}

		if _, migrated := ix.ByChargeID[c.ID]; migrated {
			plan.Summary.AlreadySynced++
			continue
		}

		plan.Ops = append(plan.Ops, createOp(c, boarding, opts))
		plan.Summary.TripsCreated++
	}

	return plan
}

// updateOp confirms a matched trip from its charge. The charge's notes are
// deliberately not copied: the existing trip's pilot-entered notes take
// precedence over the legacy billing text.
func updateOp(trip *models.Trip, c *models.Charge, now time.Time) Operation {
	return Operation{
		Kind:   OpUpdate,
		TripID: trip.ID,
		Fields: map[string]any{
			"ship":            c.Ship,
			"gt":              c.GT,
			"is_confirmed":    true,
			"confirmed_by":    c.CreatedBy,
			"confirmed_by_id": c.CreatedByID,
			"confirmed_at":    confirmedAt(c, now),
		},
	}
}

// createOp builds a new confirmed trip for an orphan charge. The trip stands
// alone outside any visit workflow, so its visit reference stays null.
func createOp(c *models.Charge, boarding time.Time, opts PlanOptions) Operation {
	port := c.Port
	if port == "" {
		port = opts.DefaultPort
	}

	chargeID := c.ID
	at := confirmedAt(c, opts.Now)

	return Operation{
		Kind: OpCreate,
		Trip: &models.Trip{
			ID:                   opts.NewID(),
			VisitID:              nil,
			TypeTrip:             c.TypeTrip,
			Boarding:             &boarding,
			Port:                 port,
			Pilot:                c.Pilot,
			Ship:                 c.Ship,
			GT:                   c.GT,
			IsConfirmed:          true,
			ConfirmedBy:          c.CreatedBy,
			ConfirmedByID:        c.CreatedByID,
			ConfirmedAt:          &at,
			Note:                 c.SailingNote,
			ExtraNote:            c.ExtraNote,
			Source:               models.SourceMigration,
			MigratedFromChargeID: &chargeID,
		},
	}
}

func confirmedAt(c *models.Charge, now time.Time) time.Time {
	if c.UpdatedAt != nil && !c.UpdatedAt.IsZero() {
		return *c.UpdatedAt
	}
	return now
}
