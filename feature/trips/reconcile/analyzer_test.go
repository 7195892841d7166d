package reconcile

import (
	"fmt"
	"testing"
	"time"

	"triprecord/feature/trips/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_ReasonClassification(t *testing.T) {
	boarding := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	trips := []models.Trip{
		{ID: "t1", VisitID: strPtr("V1"), TypeTrip: models.TripIn, Ship: "MV Foo", Boarding: &boarding},
	}
	charges := []models.Charge{
		// Matched via visit reference: not an orphan.
		{ID: "c0", Ship: "MV Foo", TypeTrip: models.TripIn, Boarding: "2024-03-01T08:00:00Z", VisitID: strPtr("V1")},
		// Unparseable boarding.
		{ID: "c1", Ship: "MV Foo", TypeTrip: models.TripIn, Boarding: ""},
		// Visit reference pointing nowhere, and no ship/date match either.
		{ID: "c2", Ship: "MV Ghost", TypeTrip: models.TripOut, Boarding: "2022-05-10", VisitID: strPtr("V404")},
		// No visit reference, ship/type/date probe comes up empty.
		{ID: "c3", Ship: "MV Ghost", TypeTrip: models.TripOut, Boarding: "2023-08-01"},
		// No visit reference and no ship name to probe with.
		{ID: "c4", Ship: "  ", TypeTrip: models.TripOut, Boarding: "2023-08-02"},
	}

	report := Analyze(charges, len(trips), BuildIndexes(trips))

	assert.Equal(t, 5, report.TotalCharges)
	assert.Equal(t, 1, report.TotalTrips)
	assert.Equal(t, 4, report.TotalOrphans)

	byReason := make(map[string]int)
	for _, r := range report.ReasonBreakdown {
		byReason[r.Reason] = r.Count
	}
	assert.Equal(t, 1, byReason[ReasonNoBoarding])
	assert.Equal(t, 1, byReason[ReasonVisitNotFound])
	assert.Equal(t, 1, byReason[ReasonShipDateNotFound])
	assert.Equal(t, 1, byReason[ReasonNoVisitRef])
}

func TestAnalyze_Aggregations(t *testing.T) {
	charges := []models.Charge{
		{ID: "c1", Ship: "A", TypeTrip: models.TripIn, Boarding: "2022-01-15"},
		{ID: "c2", Ship: "B", TypeTrip: models.TripIn, Boarding: "2022-03-02"},
		{ID: "c3", Ship: "C", TypeTrip: models.TripIn, Boarding: "2023-03-20"},
		{ID: "c4", Ship: "D", TypeTrip: models.TripIn, Boarding: "nonsense"},
	}

	report := Analyze(charges, 0, BuildIndexes(nil))

	assert.Equal(t, 4, report.TotalOrphans)

	require.Len(t, report.YearlyBreakdown, 2)
	assert.Equal(t, models.YearCount{Year: "2022", Count: 2}, report.YearlyBreakdown[0])
	assert.Equal(t, models.YearCount{Year: "2023", Count: 1}, report.YearlyBreakdown[1])

	require.Len(t, report.MonthlyBreakdown, 3)
	assert.Equal(t, models.MonthCount{Month: "2022-01", Count: 1}, report.MonthlyBreakdown[0])
	assert.Equal(t, models.MonthCount{Month: "2022-03", Count: 1}, report.MonthlyBreakdown[1])
	assert.Equal(t, models.MonthCount{Month: "2023-03", Count: 1}, report.MonthlyBreakdown[2])

	// Oldest/newest come only from parseable boarding values.
	require.NotNil(t, report.OldestOrphan)
	require.NotNil(t, report.NewestOrphan)
	assert.Equal(t, "2022-01-15", report.OldestOrphan.UTC().Format("2006-01-02"))
	assert.Equal(t, "2023-03-20", report.NewestOrphan.UTC().Format("2006-01-02"))
}

func TestAnalyze_SampleIsBounded(t *testing.T) {
	var charges []models.Charge
	for i := 0; i < 35; i++ {
		charges = append(charges, models.Charge{
			ID:       fmt.Sprintf("c%02d", i),
			Ship:     "MV Ghost",
			TypeTrip: models.TripIn,
			Boarding: "2024-01-01",
		})
	}

	report := Analyze(charges, 0, BuildIndexes(nil))

	assert.Equal(t, 35, report.TotalOrphans)
	require.Len(t, report.SampleOrphans, 20)
	// The sample keeps scan order: the first twenty charges.
	assert.Equal(t, "c00", report.SampleOrphans[0].ChargeID)
	assert.Equal(t, "c19", report.SampleOrphans[19].ChargeID)
	assert.Equal(t, ReasonShipDateNotFound, report.SampleOrphans[0].Reason)
}

func TestAnalyze_MatchedChargesAreNotOrphans(t *testing.T) {
	boarding := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	trips := []models.Trip{
		{ID: "t1", TypeTrip: models.TripOut, Ship: "MV Bar", Boarding: &boarding},
		{ID: "t2", TypeTrip: models.TripIn, Source: models.SourceMigration, MigratedFromChargeID: strPtr("c2")},
	}
	charges := []models.Charge{
		{ID: "c1", Ship: "MV Bar", TypeTrip: models.TripOut, Boarding: "2024-03-05"},
		// Covered by a previous migration run, so not reported again.
		{ID: "c2", Ship: "MV Done", TypeTrip: models.TripIn, Boarding: "2024-03-06"},
	}

	report := Analyze(charges, len(trips), BuildIndexes(trips))

	assert.Equal(t, 0, report.TotalOrphans)
	assert.Empty(t, report.SampleOrphans)
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	report := Analyze(nil, 0, BuildIndexes(nil))

	assert.Equal(t, 0, report.TotalCharges)
	assert.Equal(t, 0, report.TotalOrphans)
	assert.Nil(t, report.OldestOrphan)
	assert.Nil(t, report.NewestOrphan)
	assert.NotNil(t, report.YearlyBreakdown)
	assert.NotNil(t, report.SampleOrphans)
}
