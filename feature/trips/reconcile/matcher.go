package reconcile

import (
	"strings"
	"time"

	"triprecord/feature/trips/models"
)

// Tier identifies which lookup resolved a match.
type Tier int

const (
	// TierNone means no trip matched the charge.
	TierNone Tier = iota
	// TierVisit is a tier-1 match via (visitid, typeTrip).
	TierVisit
	// TierShipDay is a tier-2 match via (ship, typeTrip, calendar date).
	TierShipDay
)

// Match finds the best trip for a charge whose boarding value parsed to
// boarding. Tier 1 (visit reference) is preferred; tier 2 falls back to the
// charge's calendar date, then date-1, then date+1, stopping at the first
// non-empty bucket.
func (ix *Indexes) Match(c *models.Charge, boarding time.Time) (*models.Trip, Tier) {
	if c.HasVisitRef() {
		key := visitKey{VisitID: strings.TrimSpace(*c.VisitID), TypeTrip: c.TypeTrip}
		if bucket := ix.ByVisit[key]; len(bucket) > 0 {
			return pickCandidate(bucket, boarding), TierVisit
		}
	}

	ship := models.NormalizeShip(c.Ship)
	day := boarding.UTC()
	for _, d := range []time.Time{day, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1)} {
		key := shipDayKey{Ship: ship, TypeTrip: c.TypeTrip, Day: d.Format(dayLayout)}
		if bucket := ix.ByShipDay[key]; len(bucket) > 0 {
			return pickCandidate(bucket, boarding), TierShipDay
		}
	}

	return nil, TierNone
}

// pickCandidate resolves ties within a non-empty bucket:
// a single candidate wins outright; a single unconfirmed candidate wins over
// confirmed siblings; otherwise the pool (unconfirmed candidates if any exist,
// else the whole bucket) is scanned for the smallest absolute boarding-time
// difference, first-encountered order breaking ties. When no candidate offers
// a comparable boarding time the pool head is returned, which is
// deterministic because buckets preserve trip load order.
func pickCandidate(bucket []*models.Trip, boarding time.Time) *models.Trip {
	if len(bucket) == 1 {
		return bucket[0]
	}

	var unconfirmed []*models.Trip
	for _, t := range bucket {
		if !t.IsConfirmed {
			unconfirmed = append(unconfirmed, t)
		}
	}
	if len(unconfirmed) == 1 {
		return unconfirmed[0]
	}

	pool := bucket
	if len(unconfirmed) > 0 {
		pool = unconfirmed
	}

	best := pool[0]
	bestDiff := time.Duration(-1)
	for _, t := range pool {
		if t.Boarding == nil {
			continue
		}
		diff := t.Boarding.Sub(boarding)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = t
			bestDiff = diff
		}
	}

	return best
}
