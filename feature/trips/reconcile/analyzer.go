package reconcile

import (
	"sort"
	"time"

	"triprecord/feature/trips/models"
)

// Orphan classification reasons reported by the analyzer.
const (
	ReasonNoBoarding       = "No boarding time"
	ReasonNoVisitRef       = "No visit reference"
	ReasonVisitNotFound    = "Visit reference not found in trips"
	ReasonShipDateNotFound = "Ship/type/date not found"
)

// sampleLimit bounds the orphan sample included in an analysis report.
const sampleLimit = 20

// Analyze is the read-only diagnostic pass. It runs the same matching as the
// planner but classifies every unmatched charge by reason and aggregates
// counts by year, year-month and reason. It performs no writes and never
// marks a charge for creation.
func Analyze(charges []models.Charge, totalTrips int, ix *Indexes) *models.AnalysisReport {
	report := &models.AnalysisReport{
		TotalCharges:     len(charges),
		TotalTrips:       totalTrips,
		YearlyBreakdown:  []models.YearCount{},
		MonthlyBreakdown: []models.MonthCount{},
		ReasonBreakdown:  []models.ReasonCount{},
		SampleOrphans:    []models.OrphanSample{},
	}

	years := make(map[string]int)
	months := make(map[string]int)
	reasons := make(map[string]int)

	for i := range charges {
		c := &charges[i]

		boarding, parsed := c.BoardingTime()
		if parsed {
			if trip, _ := ix.Match(c, boarding); trip != nil {
				continue
			}
			if _, migrated := ix.ByChargeID[c.ID]; migrated {
				continue
			}
		}

		reason := orphanReason(c, parsed)
		report.TotalOrphans++
		reasons[reason]++

		var boardingPtr *time.Time
		if parsed {
			b := boarding
			boardingPtr = &b
			years[boarding.UTC().Format("2006")]++
			months[boarding.UTC().Format("2006-01")]++
			if report.OldestOrphan == nil || boarding.Before(*report.OldestOrphan) {
				report.OldestOrphan = &b
			}
			if report.NewestOrphan == nil || boarding.After(*report.NewestOrphan) {
				report.NewestOrphan = &b
			}
		}

		if len(report.SampleOrphans) < sampleLimit {
			report.SampleOrphans = append(report.SampleOrphans, models.OrphanSample{
				ChargeID: c.ID,
				Ship:     c.Ship,
				TypeTrip: c.TypeTrip,
				Port:     c.Port,
				Boarding: boardingPtr,
				Reason:   reason,
			})
		}
	}

	for year, count := range years {
		report.YearlyBreakdown = append(report.YearlyBreakdown, models.YearCount{Year: year, Count: count})
	}
	sort.Slice(report.YearlyBreakdown, func(i, j int) bool {
		return report.YearlyBreakdown[i].Year < report.YearlyBreakdown[j].Year
	})

	for month, count := range months {
		report.MonthlyBreakdown = append(report.MonthlyBreakdown, models.MonthCount{Month: month, Count: count})
	}
	sort.Slice(report.MonthlyBreakdown, func(i, j int) bool {
		return report.MonthlyBreakdown[i].Month < report.MonthlyBreakdown[j].Month
	})

	for reason, count := range reasons {
		report.ReasonBreakdown = append(report.ReasonBreakdown, models.ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(report.ReasonBreakdown, func(i, j int) bool {
		a, b := report.ReasonBreakdown[i], report.ReasonBreakdown[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Reason < b.Reason
	})

	return report
}

// orphanReason resolves the most specific reason an unmatched charge failed:
// unparseable boarding beats everything; a present visit reference means the
// reference itself is stale; otherwise the ship/type/date probe came up empty,
// unless the charge lacks even a ship name to probe with.
func orphanReason(c *models.Charge, boardingParsed bool) string {
	if !boardingParsed {
		return ReasonNoBoarding
	}
	if c.HasVisitRef() {
		return ReasonVisitNotFound
	}
	if models.NormalizeShip(c.Ship) != "" {
		return ReasonShipDateNotFound
	}
	return ReasonNoVisitRef
}
