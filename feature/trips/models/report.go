package models

import "time"

// MatchBreakdown splits matched charges by the tier that resolved them.
type MatchBreakdown struct {
	// ByVisitReference counts tier-1 matches via (visitid, typeTrip).
	ByVisitReference int `json:"byVisitReference"`
	// ByShipAndBoarding counts tier-2 matches via (ship, typeTrip, date).
	ByShipAndBoarding int `json:"byShipAndBoarding"`
}

// ReconcileReport is the response of the Reconcile operation.
type ReconcileReport struct {
	TotalCharges   int            `json:"totalCharges"`
	TripsUpdated   int            `json:"tripsUpdated"`
	TripsCreated   int            `json:"tripsCreated"`
	AlreadySynced  int            `json:"alreadySynced"`
	MatchBreakdown MatchBreakdown `json:"matchBreakdown"`
	Message        string         `json:"message"`
}

// YearCount is one row of the yearly orphan breakdown.
type YearCount struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// MonthCount is one row of the year-month orphan breakdown.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ReasonCount is one row of the per-reason orphan breakdown.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// OrphanSample is one sampled orphan charge with its resolved reason.
type OrphanSample struct {
	ChargeID string     `json:"chargeId"`
	Ship     string     `json:"ship"`
	TypeTrip string     `json:"typeTrip"`
	Port     string     `json:"port"`
	Boarding *time.Time `json:"boarding"`
	Reason   string     `json:"reason"`
}

// AnalysisReport is the response of the read-only Analyze operation.
type AnalysisReport struct {
	TotalCharges     int            `json:"totalCharges"`
	TotalTrips       int            `json:"totalTrips"`
	TotalOrphans     int            `json:"totalOrphans"`
	OldestOrphan     *time.Time     `json:"oldestOrphan"`
	NewestOrphan     *time.Time     `json:"newestOrphan"`
	YearlyBreakdown  []YearCount    `json:"yearlyBreakdown"`
	MonthlyBreakdown []MonthCount   `json:"monthlyBreakdown"`
	ReasonBreakdown  []ReasonCount  `json:"reasonBreakdown"`
	SampleOrphans    []OrphanSample `json:"sampleOrphans"`
}
